package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pastime-app/backend/internal/app"
	apperr "github.com/pastime-app/backend/internal/errors"
	"github.com/pastime-app/backend/internal/middleware"
	"github.com/pastime-app/backend/internal/repository"
)

// MessageHandler serves direct-message conversations.
type MessageHandler struct {
	appCtx  *app.AppContext
	msgRepo *repository.MessageRepository
}

func NewMessageHandler(appCtx *app.AppContext) *MessageHandler {
	return &MessageHandler{
		appCtx:  appCtx,
		msgRepo: repository.NewMessageRepository(appCtx.DB),
	}
}

// Routes mounts the message endpoints on a fresh subrouter.
func (h *MessageHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{friendID}", h.Conversation)
	r.Post("/{friendID}", h.Send)
	return r
}

func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	friendID, err := pathID(r, "friendID")
	if err != nil {
		respondError(w, err)
		return
	}

	msgs, err := h.msgRepo.Conversation(r.Context(), userID, friendID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	friendID, err := pathID(r, "friendID")
	if err != nil {
		respondError(w, err)
		return
	}
	if friendID == userID {
		respondError(w, apperr.ErrSelfMessage)
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil || req.Message == "" {
		respondError(w, apperr.New(http.StatusBadRequest, "message is required"))
		return
	}

	msg, err := h.msgRepo.Send(r.Context(), userID, friendID, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}
