package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/madad/app/services"
	"github.com/shashiranjanraj/madad/internal/store"
	"github.com/shashiranjanraj/madad/pkg/logger"
	"github.com/shashiranjanraj/madad/pkg/response"
)

// writeError translates a domain error into the HTTP response once, here,
// so controllers never hand-pick status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		response.Unavailable(w)
	case errors.Is(err, services.ErrEmailOrPhoneRequired):
		response.BadRequest(w, "Email or phone is required")
	case errors.Is(err, services.ErrEmailTaken):
		response.Conflict(w, "Email already registered")
	case errors.Is(err, services.ErrPhoneTaken):
		response.Conflict(w, "Phone already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidVendorID):
		response.BadRequest(w, "Invalid vendor id")
	case errors.Is(err, services.ErrVendorNotFound):
		response.NotFound(w, "Vendor not found")
	default:
		logger.WithCtx(r.Context()).Error("unhandled error", "error", err.Error())
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
