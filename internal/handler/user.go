package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pastime-app/backend/internal/app"
	apperr "github.com/pastime-app/backend/internal/errors"
	"github.com/pastime-app/backend/internal/middleware"
	"github.com/pastime-app/backend/internal/repository"
)

// UserHandler serves user profiles and hobby management.
type UserHandler struct {
	appCtx    *app.AppContext
	userRepo  *repository.UserRepository
	hobbyRepo *repository.HobbyRepository
}

func NewUserHandler(appCtx *app.AppContext) *UserHandler {
	return &UserHandler{
		appCtx:    appCtx,
		userRepo:  repository.NewUserRepository(appCtx.DB),
		hobbyRepo: repository.NewHobbyRepository(appCtx.DB),
	}
}

// Routes mounts the user endpoints on a fresh subrouter.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Put("/", h.Update)
	r.Delete("/", h.Remove)
	r.Post("/hobbies", h.AddHobby)
	r.Delete("/hobbies/{hobbyID}", h.RemoveHobby)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/hobbies", h.Hobbies)
	return r
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.FindAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	user, err := h.userRepo.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var upd repository.UserUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, apperr.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	user, err := h.userRepo.Update(r.Context(), userID, upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if err := h.userRepo.Remove(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	h.appCtx.Logger.Info("user removed", "user_id", userID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

func (h *UserHandler) Hobbies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	hobbies, err := h.hobbyRepo.ListForUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"hobbies": hobbies})
}

type addHobbyRequest struct {
	Name string `json:"name"`
}

func (h *UserHandler) AddHobby(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req addHobbyRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		respondError(w, apperr.New(http.StatusBadRequest, "hobby name is required"))
		return
	}

	hobby, err := h.hobbyRepo.AttachByName(r.Context(), userID, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, hobby)
}

func (h *UserHandler) RemoveHobby(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	hobbyID, err := pathID(r, "hobbyID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.hobbyRepo.Detach(r.Context(), userID, hobbyID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "hobby removed"})
}

// pathID parses a numeric id from the URL path.
func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.New(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
