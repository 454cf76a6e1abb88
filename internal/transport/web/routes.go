package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/avstrong/stayquote/internal/booking"
	"github.com/avstrong/stayquote/internal/pricing"
)

const idempotencyKeyHeader = "Idempotency-Key"

var validate = validator.New()

type errorResponse struct {
	Message string               `json:"message"`
	Errors  []booking.FieldError `json:"errors,omitempty"`
}

type statusInput struct {
	Status booking.Status `json:"status" validate:"required"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if inputErr := booking.IsInputError(err); inputErr != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: inputErr.Errors()})

		return
	}

	switch {
	case errors.Is(err, ErrMalformBody):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()}) //nolint:exhaustruct
	case errors.Is(err, booking.ErrRecordNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Message: "booking not found"}) //nolint:exhaustruct
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, booking.ErrStatusChanged):
		s.writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()}) //nolint:exhaustruct
	default:
		s.l.LogErrorf("Request failed: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformBody, err.Error())
	}

	return nil
}

// structErrors turns validator failures into the field errors the booking form renders.
func structErrors(err error, code booking.Code) []booking.FieldError {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []booking.FieldError{{Field: "body", Code: code, Message: err.Error()}}
	}

	result := make([]booking.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		result = append(result, booking.FieldError{
			Field:   fe.Field(),
			Code:    code,
			Message: fmt.Sprintf("failed on '%s' rule", fe.Tag()),
		})
	}

	return result
}

func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	req := booking.NewStayRequest()
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)

		return
	}

	quote, err := s.bManager.Quote(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, quote)
}

func (s *Server) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	idempotencyKey := r.Header.Get(idempotencyKeyHeader)
	if idempotencyKey == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Idempotency-Key header is missing"}) //nolint:exhaustruct

		return
	}

	//nolint:exhaustruct
	input := booking.BookInput{Stay: booking.NewStayRequest()}
	if err := decode(r, &input); err != nil {
		s.writeError(w, err)

		return
	}

	ctx := booking.WithIdempotencyKey(r.Context(), idempotencyKey)

	record, replayed, err := s.bManager.CreateBooking(ctx, &input)
	if err != nil {
		s.writeError(w, err)

		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}

	s.writeJSON(w, status, record)
}

func (s *Server) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	filter := booking.Filter{
		Status: booking.Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("q"),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors: []booking.FieldError{{
				Field:   "status",
				Code:    booking.CodeInvalidStatus,
				Message: fmt.Sprintf("unknown status %q", filter.Status),
			}},
		})

		return
	}

	records, err := s.bManager.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	record, err := s.bManager.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	var input statusInput
	if err := decode(r, &input); err != nil {
		s.writeError(w, err)

		return
	}

	if err := validate.Struct(input); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors:  structErrors(err, booking.CodeInvalidStatus),
		})

		return
	}

	record, err := s.bManager.UpdateStatus(r.Context(), mux.Vars(r)["id"], input.Status)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) getPricingHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.bManager.Pricing(r.Context())
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) putPricingHandler(w http.ResponseWriter, r *http.Request) {
	var cfg pricing.Config
	if err := decode(r, &cfg); err != nil {
		s.writeError(w, err)

		return
	}

	if err := validate.Struct(cfg); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors:  structErrors(err, booking.CodeInvalidPricing),
		})

		return
	}

	if err := s.bManager.UpdatePricing(r.Context(), cfg); err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) roomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.bManager.Rooms(r.Context())
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/quotes/v1", s.quoteHandler).Methods(http.MethodPost)
	api.HandleFunc("/bookings/v1", s.createBookingHandler).Methods(http.MethodPost)
	api.HandleFunc("/bookings/v1", s.listBookingsHandler).Methods(http.MethodGet)
	api.HandleFunc("/bookings/v1/{id}", s.getBookingHandler).Methods(http.MethodGet)
	api.HandleFunc("/bookings/v1/{id}/status", s.updateStatusHandler).Methods(http.MethodPatch)
	api.HandleFunc("/pricing/v1", s.getPricingHandler).Methods(http.MethodGet)
	api.HandleFunc("/pricing/v1", s.putPricingHandler).Methods(http.MethodPut)
	api.HandleFunc("/rooms/v1", s.roomsHandler).Methods(http.MethodGet)

	r.HandleFunc(s.conf.LivenessEndpoint, s.livenessHandler).Methods(http.MethodGet)
}
