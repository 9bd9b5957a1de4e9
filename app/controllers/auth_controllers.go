package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/app/services"
	"github.com/shashiranjanraj/madad/pkg/bind"
	"github.com/shashiranjanraj/madad/pkg/middleware"
	"github.com/shashiranjanraj/madad/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Success(w, token)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Success(w, token)
}

// Me handles GET /api/auth/me. The auth middleware has already resolved
// the bearer token; a missing user still means 401, not 404.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, found, err := c.service.CurrentUser(r.Context(), subject)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		response.Unauthorized(w)
		return
	}

	response.Success(w, user.Public())
}
