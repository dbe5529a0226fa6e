package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// RespondError maps domain errors to HTTP responses with a {"message": ...} body.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Msg(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate):
		Msg(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrValidation):
		Msg(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		Msg(w, http.StatusUnauthorized, err.Error())
	default:
		Msg(w, http.StatusInternalServerError, "internal server error")
	}
}
