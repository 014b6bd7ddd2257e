package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/copapymes/league-system/services"
)

// envelope is the uniform response shape: data is null on failure, message
// carries the human-readable outcome.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	js, err := json.Marshal(env)
	if err != nil {
		slog.Error("failed to marshal response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		slog.Error("failed to write response", slog.Any("error", err))
	}
}

func successResponse(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Data: nil, Message: message})
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusNotFound, err.Error())
}

func conflictResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusConflict, err.Error())
}

func unauthorizedResponse(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusForbidden, message)
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	// The real error is logged; the client gets an opaque message.
	slog.Error("internal server error", slog.Any("error", err))
	errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid positive integer %q", s)
	}
	return n, nil
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s URL parameter", param)
	}
	return id, nil
}

// mapServiceErrorToHTTP turns business errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrRegistrationNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrVenueNotFound),
		errors.Is(err, services.ErrDivisionNotFound),
		errors.Is(err, services.ErrPrizeNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrUserNotFound):
		notFoundResponse(w, err)

	case errors.Is(err, services.ErrTournamentNameConflict),
		errors.Is(err, services.ErrTournamentInUse),
		errors.Is(err, services.ErrRegistrationConflict),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrTeamInUse),
		errors.Is(err, services.ErrVenueConflict),
		errors.Is(err, services.ErrVenueInUse),
		errors.Is(err, services.ErrDivisionNameConflict),
		errors.Is(err, services.ErrPrizeConflict),
		errors.Is(err, services.ErrUserEmailConflict):
		conflictResponse(w, err)

	case errors.Is(err, services.ErrTournamentNameRequired),
		errors.Is(err, services.ErrTournamentInvalidType),
		errors.Is(err, services.ErrTournamentInvalidGameFormat),
		errors.Is(err, services.ErrTournamentInvalidDateRange),
		errors.Is(err, services.ErrTournamentDivisionCountNotAllowed),
		errors.Is(err, services.ErrTournamentInvalidStatusTransition),
		errors.Is(err, services.ErrRegistrationClosed),
		errors.Is(err, services.ErrRegistrationInvalidStatus),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrTeamInactive),
		errors.Is(err, services.ErrVenueNameRequired),
		errors.Is(err, services.ErrDivisionNameRequired),
		errors.Is(err, services.ErrPrizeNameRequired),
		errors.Is(err, services.ErrMatchSameTeam),
		errors.Is(err, services.ErrMatchInvalidStatus),
		errors.Is(err, services.ErrMatchTeamInvalid),
		errors.Is(err, services.ErrMatchVenueInvalid),
		errors.Is(err, services.ErrMatchRefereeInvalid),
		errors.Is(err, services.ErrUserEmailRequired),
		errors.Is(err, services.ErrUserInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrUnsupportedMediaType):
		badRequestResponse(w, err)

	case errors.Is(err, services.ErrAuthInvalidCredentials):
		unauthorizedResponse(w, err.Error())
	case errors.Is(err, services.ErrUserInactive),
		errors.Is(err, services.ErrForbiddenOperation):
		forbiddenResponse(w, err.Error())

	case errors.Is(err, services.ErrMediaStorageDisabled):
		errorResponse(w, http.StatusServiceUnavailable, err.Error())

	default:
		serverErrorResponse(w, err)
	}
}
