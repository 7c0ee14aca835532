package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pastime-app/backend/internal/app"
	"github.com/pastime-app/backend/internal/middleware"
	"github.com/pastime-app/backend/internal/repository"
)

// FriendHandler lists friends and handles unfriending.
type FriendHandler struct {
	appCtx     *app.AppContext
	friendRepo *repository.FriendshipRepository
}

func NewFriendHandler(appCtx *app.AppContext) *FriendHandler {
	return &FriendHandler{
		appCtx:     appCtx,
		friendRepo: repository.NewFriendshipRepository(appCtx.DB),
	}
}

// Routes mounts the friend endpoints on a fresh subrouter.
func (h *FriendHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Delete("/{friendID}", h.Unfriend)
	return r
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	friends, err := h.friendRepo.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

// Unfriend removes the friendship in whichever direction it was stored
// and clears the caller's own swipes toward the ex-friend, as one
// transaction. The reverse swipes are left alone: the other side keeps
// their history until they unfriend as well, so either can re-match later.
func (h *FriendHandler) Unfriend(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	friendID, err := pathID(r, "friendID")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.friendRepo.Unfriend(r.Context(), userID, friendID); err != nil {
		respondError(w, err)
		return
	}

	h.appCtx.Logger.Info("friendship removed", "user", userID, "friend", friendID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "friend removed"})
}
