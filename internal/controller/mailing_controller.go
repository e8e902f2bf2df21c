// internal/controller/mailing_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/mailflow-backend/internal/middleware"
	"github.com/unclebandit/mailflow-backend/internal/service"
)

type MailingController struct {
	MailingService  *service.MailingService
	DispatchService *service.DispatchService
}

func (c *MailingController) CreateMailing(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MessageID    int        `json:"message_id"`
		RecipientIDs []int      `json:"recipient_ids"`
		EndAt        *time.Time `json:"end_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.ActorFromContext(r.Context())
	mailing, err := c.MailingService.CreateMailing(actor.ID, service.MailingInput{
		MessageID:    body.MessageID,
		RecipientIDs: body.RecipientIDs,
		EndAt:        body.EndAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(mailing)
}

func (c *MailingController) ListMailings(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	actor, _ := middleware.ActorFromContext(r.Context())
	mailings, pagination, err := c.MailingService.ListMailings(page, pageSize, actor.ID, actor.IsManager())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":       mailings,
		"pagination": pagination,
	})
}

func (c *MailingController) GetMailing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid mailing id", http.StatusBadRequest)
		return
	}

	mailing, err := c.MailingService.GetMailing(id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mailing)
}

func (c *MailingController) UpdateMailing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid mailing id", http.StatusBadRequest)
		return
	}

	var body struct {
		MessageID    int        `json:"message_id"`
		RecipientIDs []int      `json:"recipient_ids"`
		EndAt        *time.Time `json:"end_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	mailing, err := c.MailingService.UpdateMailing(id, service.MailingInput{
		MessageID:    body.MessageID,
		RecipientIDs: body.RecipientIDs,
		EndAt:        body.EndAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mailing)
}

func (c *MailingController) DeleteMailing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid mailing id", http.StatusBadRequest)
		return
	}

	if err := c.MailingService.DeleteMailing(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendMailing is the interactive dispatch trigger: no precondition on the
// current status, attempts stamped with the triggering actor.
func (c *MailingController) SendMailing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid mailing id", http.StatusBadRequest)
		return
	}

	var actorID *int
	if actor, ok := middleware.ActorFromContext(r.Context()); ok {
		actorID = &actor.ID
	}

	result, err := c.DispatchService.Run(id, actorID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (c *MailingController) ListAttempts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid mailing id", http.StatusBadRequest)
		return
	}

	attempts, err := c.MailingService.ListAttempts(id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": attempts})
}
