package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/app"
	"github.com/pastime-app/backend/internal/auth"
	"github.com/pastime-app/backend/internal/db"
	apperr "github.com/pastime-app/backend/internal/errors"
	"github.com/pastime-app/backend/internal/repository"
)

// AuthHandler serves registration and login, the only unauthenticated
// part of the API.
type AuthHandler struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

func NewAuthHandler(appCtx *app.AppContext) *AuthHandler {
	return &AuthHandler{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

// Routes mounts the auth endpoints on a fresh subrouter.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	return r
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender"`
	Coordinates string `json:"coordinates"`
	Location    string `json:"location"`
	ProfileImg  string `json:"profile_img"`
	Bio         string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  *db.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, apperr.New(http.StatusBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, apperr.New(http.StatusBadRequest, "email, password and name are required"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userRepo.Create(r.Context(), &db.User{
		Email:       req.Email,
		Password:    hash,
		Name:        req.Name,
		DOB:         req.DOB,
		Gender:      req.Gender,
		Coordinates: req.Coordinates,
		Location:    req.Location,
		ProfileImg:  req.ProfileImg,
		Bio:         req.Bio,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = apperr.ErrEmailTaken
		}
		h.appCtx.Logger.Error("register failed", "email", req.Email, "err", err)
		respondError(w, err)
		return
	}

	token, err := h.appCtx.Tokens.Issue(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.appCtx.Logger.Info("user registered", "user_id", user.ID)
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, apperr.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = apperr.ErrBadCredentials
		}
		respondError(w, err)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		respondError(w, apperr.ErrBadCredentials)
		return
	}

	token, err := h.appCtx.Tokens.Issue(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
