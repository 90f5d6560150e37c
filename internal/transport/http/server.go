// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/service"
	"github.com/YusovID/bloodbank-service/internal/validation"
	"github.com/YusovID/bloodbank-service/pkg/api"
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/YusovID/bloodbank-service/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ api.ServerInterface = (*Server)(nil)

// Services groups the domain services the handlers call into.
type Services struct {
	Eligibility   service.EligibilityService
	Hospitals     service.HospitalService
	Inventory     service.InventoryService
	Requests      service.RequestService
	Matching      service.MatchingService
	Allocation    service.AllocationService
	Broadcasts    service.BroadcastService
	Reports       service.ReportService
	Appointments  service.AppointmentService
	Notifications service.NotificationService
}

// Server holds the dependencies for the HTTP server, including the logger and services.
type Server struct {
	log *slog.Logger
	svc Services
	now func() time.Time
}

// NewServer creates a new instance of the HTTP server.
func NewServer(log *slog.Logger, svc Services) *Server {
	return &Server{
		log: log,
		svc: svc,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())

	return api.HandlerWithOptions(s, api.ChiServerOptions{
		BaseRouter:       mux,
		Middlewares:      []api.MiddlewareFunc{s.actor},
		ErrorHandlerFunc: s.handleParamError,
	})
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondAPIError is a helper to send a structured error response conforming to the API spec.
func (s *Server) respondAPIError(w http.ResponseWriter, code int, apiCode api.ErrorResponseErrorCode, message string) {
	errResp := api.ErrorResponse{
		Error: struct {
			Code    api.ErrorResponseErrorCode `json:"code"`
			Message string                     `json:"message"`
		}{
			Code:    apiCode,
			Message: message,
		},
	}

	s.respond(w, code, errResp)
}

// handleParamError reports path and query parameters the router could not bind.
func (s *Server) handleParamError(w http.ResponseWriter, r *http.Request, err error) {
	const op = "internal.transport.http.handleParamError"

	s.handleServiceError(w, r, op, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decodeOptional is decodeAndValidate for endpoints whose body may be omitted.
func (s *Server) decodeOptional(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return validation.ValidateStruct(v)
	}

	return s.decodeAndValidate(r, v)
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var (
		validationErr *validation.ValidationError
		transitionErr *apperrors.TransitionError
		unitErr       *apperrors.UnitUnavailableError
		existsErr     *apperrors.AlreadyExistsError
	)

	switch {
	case errors.As(err, &validationErr):
		s.respondAPIError(w, http.StatusBadRequest, api.ErrorResponseErrorCodeVALIDATIONFAILED, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondAPIError(w, http.StatusBadRequest, api.ErrorResponseErrorCodeINVALIDREQUEST, publicMessage(err))
	case errors.Is(err, apperrors.ErrUnauthorized):
		s.respondAPIError(w, http.StatusUnauthorized, api.ErrorResponseErrorCodeUNAUTHORIZED, apperrors.ErrUnauthorized.Error())
	case errors.Is(err, apperrors.ErrNotMatched):
		s.respondAPIError(w, http.StatusForbidden, api.ErrorResponseErrorCodeNOTMATCHED, apperrors.ErrNotMatched.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		s.respondAPIError(w, http.StatusForbidden, api.ErrorResponseErrorCodeFORBIDDEN, publicMessage(err))
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondAPIError(w, http.StatusNotFound, api.ErrorResponseErrorCodeNOTFOUND, "resource not found")
	case errors.As(err, &transitionErr):
		s.respondAPIError(w, http.StatusConflict, api.ErrorResponseErrorCodeINVALIDTRANSITION, transitionErr.Error())
	case errors.Is(err, apperrors.ErrAlreadyResponded):
		s.respondAPIError(w, http.StatusConflict, api.ErrorResponseErrorCodeALREADYRESPONDED, apperrors.ErrAlreadyResponded.Error())
	case errors.Is(err, apperrors.ErrDonationLogged):
		s.respondAPIError(w, http.StatusConflict, api.ErrorResponseErrorCodeDONATIONLOGGED, apperrors.ErrDonationLogged.Error())
	case errors.Is(err, apperrors.ErrOverAllocation):
		s.respondAPIError(w, http.StatusConflict, api.ErrorResponseErrorCodeOVERALLOCATION, publicMessage(err))
	case errors.As(err, &unitErr):
		s.respondAPIError(w, http.StatusConflict, api.ErrorResponseErrorCodeUNITUNAVAILABLE, unitErr.Error())
	case errors.As(err, &existsErr):
		s.respondAPIError(w, http.StatusConflict, api.ErrorResponseErrorCodeALREADYEXISTS, existsErr.Error())
	case errors.Is(err, apperrors.ErrConflict):
		s.respondAPIError(w, http.StatusConflict, api.ErrorResponseErrorCodeCONFLICT, publicMessage(err))
	case errors.Is(err, apperrors.ErrHospitalNotApproved):
		s.respondAPIError(w, http.StatusUnprocessableEntity, api.ErrorResponseErrorCodeHOSPITALNOTAPPROVED, publicMessage(err))
	case errors.Is(err, apperrors.ErrValidation):
		s.respondAPIError(w, http.StatusUnprocessableEntity, api.ErrorResponseErrorCodeVALIDATIONFAILED, publicMessage(err))
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondAPIError(w, http.StatusInternalServerError, api.ErrorResponseErrorCodeINTERNAL, "internal server error")

		return
	}

	log.Info("request failed", sl.Err(err))
}

// queryUint converts an optional integer query parameter to the unsigned form filters use.
func queryUint(name string, v *int) (uint64, error) {
	if v == nil {
		return 0, nil
	}

	if *v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", apperrors.ErrInvalidRequest, name)
	}

	return uint64(*v), nil
}

// value returns the pointed-to value, or the zero value for nil.
func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}

// publicMessage strips the "internal.<layer>..." operation prefixes from an error chain.
func publicMessage(err error) string {
	msg := err.Error()

	for strings.HasPrefix(msg, "internal.") {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}

		msg = msg[i+2:]
	}

	return msg
}
