package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/accurateastro/astro-backend/internal/auth"
	"github.com/accurateastro/astro-backend/internal/booking"
	"github.com/accurateastro/astro-backend/internal/content"
	"go.uber.org/zap"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{"success": false, "message": msg})
}

// writeErr maps domain sentinels to the HTTP taxonomy in one place so no
// handler invents its own status codes.
func writeErr(w http.ResponseWriter, log *zap.Logger, err error) {
	var fe booking.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, envelope{
			"success": false,
			"message": "validation failed",
			"errors":  fe,
		})
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, booking.ErrUnknownKind),
		errors.Is(err, auth.ErrNotFound),
		errors.Is(err, content.ErrNotFound):
		fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrSlotTaken):
		fail(w, http.StatusConflict, "This time slot is already booked. Please choose another time.")
	case errors.Is(err, booking.ErrInvalidStatus):
		fail(w, http.StatusBadRequest, "Valid status is required")
	case errors.Is(err, booking.ErrForbiddenTransition):
		fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrSignatureMismatch):
		fail(w, http.StatusBadRequest, "Invalid payment signature")
	case errors.Is(err, booking.ErrUpstream):
		log.Error("upstream failure", zap.Error(err))
		fail(w, http.StatusBadGateway, "Payment gateway unavailable, please try again")
	case errors.Is(err, auth.ErrInvalidCredentials):
		fail(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		fail(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	case errors.Is(err, auth.ErrForbidden):
		fail(w, http.StatusForbidden, "Admin access required")
	case errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrTaken),
		errors.Is(err, auth.ErrInvalidProfile),
		errors.Is(err, content.ErrValidation):
		fail(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("internal error", zap.Error(err))
		fail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
