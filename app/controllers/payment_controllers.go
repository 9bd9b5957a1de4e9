package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/app/services"
	"github.com/shashiranjanraj/madad/pkg/bind"
	"github.com/shashiranjanraj/madad/pkg/response"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

// Create handles POST /api/payments.
func (c *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PaymentInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	payment, err := c.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Success(w, payment)
}
