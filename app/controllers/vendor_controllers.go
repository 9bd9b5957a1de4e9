package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/app/services"
	"github.com/shashiranjanraj/madad/pkg/bind"
	"github.com/shashiranjanraj/madad/pkg/response"
)

const defaultRadiusKM = 5.0

type VendorController struct {
	service *services.VendorService
}

func NewVendorController(service *services.VendorService) *VendorController {
	return &VendorController{service: service}
}

// Create handles POST /api/vendors.
func (c *VendorController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.VendorInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs == nil {
		errs = map[string]string{}
	}
	for field, msg := range in.Validate() {
		errs[field] = msg
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	vendor, err := c.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Success(w, vendor)
}

// Get handles GET /api/vendors/{id}.
func (c *VendorController) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Success(w, vendor)
}

// Update handles PATCH /api/vendors/{id}. An empty patch reports
// {"updated": false} without touching the store.
func (c *VendorController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.VendorPatch
	if errs, err := bind.JSON(r, &patch); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	vendor, updated, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !updated {
		response.Success(w, map[string]bool{"updated": false})
		return
	}

	response.Success(w, vendor)
}

// Nearby handles GET /api/vendors/nearby?lng&lat&radius_km&service_type.
func (c *VendorController) Nearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lng, err := strconv.ParseFloat(query.Get("lng"), 64)
	if err != nil {
		response.BadRequest(w, "lng must be a number")
		return
	}
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		response.BadRequest(w, "lat must be a number")
		return
	}

	radiusKM := defaultRadiusKM
	if raw := query.Get("radius_km"); raw != "" {
		radiusKM, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKM < 0 {
			response.BadRequest(w, "radius_km must be a non-negative number")
			return
		}
	}

	vendors, err := c.service.SearchNearby(r.Context(), models.NearbyQuery{
		Lng:         lng,
		Lat:         lat,
		RadiusKM:    radiusKM,
		ServiceType: query.Get("service_type"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"count":   len(vendors),
		"vendors": vendors,
	})
}

// AdminList handles GET /api/admin/vendors?status (auth + admin role).
func (c *VendorController) AdminList(w http.ResponseWriter, r *http.Request) {
	vendors, err := c.service.ListAdmin(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Success(w, vendors)
}
