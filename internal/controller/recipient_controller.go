// internal/controller/recipient_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/mailflow-backend/internal/middleware"
	"github.com/unclebandit/mailflow-backend/internal/service"
)

type RecipientController struct {
	RecipientService *service.RecipientService
}

type recipientPayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Comment  string `json:"comment"`
}

func (c *RecipientController) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	var body recipientPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.ActorFromContext(r.Context())
	recipient, err := c.RecipientService.CreateRecipient(actor.ID, body.Email, body.FullName, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(recipient)
}

func (c *RecipientController) ListRecipients(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	recipients, err := c.RecipientService.ListRecipients(actor.ID, actor.IsManager())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": recipients})
}

func (c *RecipientController) GetRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipient id", http.StatusBadRequest)
		return
	}

	recipient, err := c.RecipientService.GetRecipient(id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recipient)
}

func (c *RecipientController) UpdateRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipient id", http.StatusBadRequest)
		return
	}

	var body recipientPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	recipient, err := c.RecipientService.UpdateRecipient(id, body.Email, body.FullName, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recipient)
}

func (c *RecipientController) DeleteRecipient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid recipient id", http.StatusBadRequest)
		return
	}

	if err := c.RecipientService.DeleteRecipient(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
