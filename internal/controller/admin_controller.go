// internal/controller/admin_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/mailflow-backend/internal/service"
)

// AdminController serves the manager-only user administration endpoints.
type AdminController struct {
	UserService *service.UserService
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.UserService.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": users})
}

func (c *AdminController) BlockUser(w http.ResponseWriter, r *http.Request) {
	c.setBlocked(w, r, true)
}

func (c *AdminController) UnblockUser(w http.ResponseWriter, r *http.Request) {
	c.setBlocked(w, r, false)
}

func (c *AdminController) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := c.UserService.SetBlocked(id, blocked); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user_id": id,
		"blocked": blocked,
	})
}
