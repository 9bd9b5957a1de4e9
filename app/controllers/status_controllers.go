package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/madad/config"
	"github.com/shashiranjanraj/madad/internal/store"
	"github.com/shashiranjanraj/madad/pkg/response"
)

// StatusController serves the liveness probe and the store diagnostic.
type StatusController struct {
	store *store.Store
}

func NewStatusController(s *store.Store) *StatusController {
	return &StatusController{store: s}
}

// Root handles GET /.
func (c *StatusController) Root(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"name":   "Madad API",
		"status": "ok",
	})
}

// Test handles GET /test: a diagnostic snapshot of store connectivity.
// It deliberately swallows every failure into a status string and always
// answers 200 — this probe must never fail the call.
func (c *StatusController) Test(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"backend":           "running",
		"database":          "not available",
		"database_url":      "not set",
		"database_name":     "not set",
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if config.MongoURISet() {
		resp["database_url"] = "set"
	}
	if name := config.DatabaseName(); name != "" {
		resp["database_name"] = name
	}

	if c.store.Available() {
		resp["database"] = "available"
		cols, err := c.store.CollectionNames(r.Context())
		if err != nil {
			resp["database"] = "connected but error: " + truncate(err.Error(), 80)
		} else {
			resp["collections"] = cols
			resp["database"] = "connected"
			resp["connection_status"] = "Connected"
		}
	}

	response.Success(w, resp)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
