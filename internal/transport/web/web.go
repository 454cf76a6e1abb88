package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/avstrong/stayquote/internal/booking"
	"github.com/avstrong/stayquote/internal/logger"
)

type Server struct {
	srv      *http.Server
	router   *mux.Router
	l        *logger.Logger
	conf     Conf
	bManager *booking.Manager
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	AllowedOrigins    []string
}

func New(ctx context.Context, conf Conf, bookingManager *booking.Manager) (*Server, error) {
	router := mux.NewRouter()

	server := &Server{
		router:   router,
		l:        conf.L,
		conf:     conf,
		bManager: bookingManager,
	}

	server.addRoutes(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins(conf.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", idempotencyKeyHeader, requestIDHeader}),
	)

	handler := server.applyMiddlewares(
		router,
		cors,
		server.recoverMiddleware,
		server.loggerMiddleware,
		server.requestIDMiddleware,
	)

	//nolint:exhaustruct
	server.srv = &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           handler,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
