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

const defaultPageSize = 20

// SwipeHandler serves the swipe deck, pending requests and the two swipe
// actions. Matching itself happens in the repository; the handler's only
// extra job is keeping the cached request counters fresh.
type SwipeHandler struct {
	appCtx    *app.AppContext
	swipeRepo *repository.SwipeRepository
}

func NewSwipeHandler(appCtx *app.AppContext) *SwipeHandler {
	return &SwipeHandler{
		appCtx:    appCtx,
		swipeRepo: repository.NewSwipeRepository(appCtx.DB),
	}
}

// Routes mounts the swipe endpoints on a fresh subrouter.
func (h *SwipeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Swipeable)
	r.Get("/requests", h.Requests)
	r.Get("/requests/count", h.RequestCount)
	r.Post("/request/{id}", h.Request)
	r.Post("/decline/{id}", h.Decline)
	return r
}

func (h *SwipeHandler) Swipeable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	limit := defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	var token *string
	if v := r.URL.Query().Get("page_token"); v != "" {
		token = &v
	}

	users, nextToken, err := h.swipeRepo.SwipeableUsers(r.Context(), userID, token, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := map[string]interface{}{"users": users}
	if nextToken != nil {
		resp["next_page_token"] = *nextToken
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *SwipeHandler) Requests(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	users, err := h.swipeRepo.Requesters(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// RequestCount is cache-first:
//  1. Try Redis (requests:count:userID).
//  2. On miss, fall back to the DB and prime Redis with a bounded TTL.
func (h *SwipeHandler) RequestCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if count, ok, err := h.appCtx.RedisCache.GetRequestCount(r.Context(), userID); err == nil && ok {
		respondJSON(w, http.StatusOK, map[string]int64{"count": count})
		return
	}

	count, err := h.swipeRepo.CountRequesters(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	_ = h.appCtx.RedisCache.UpdateRequestCount(r.Context(), userID, count)

	respondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *SwipeHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	swipedID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if swipedID == userID {
		respondError(w, apperr.ErrSelfSwipe)
		return
	}

	matched, err := h.swipeRepo.Request(r.Context(), userID, swipedID)
	if err != nil {
		h.appCtx.Logger.Error("request swipe failed", "swiper", userID, "swiped", swipedID, "err", err)
		respondError(w, err)
		return
	}

	// Counters are advisory; failures here must not fail the swipe.
	if matched {
		_ = h.appCtx.RedisCache.Del(r.Context(), h.appCtx.RedisCache.KeyForRequestCount(userID))
		_ = h.appCtx.RedisCache.Del(r.Context(), h.appCtx.RedisCache.KeyForRequestCount(swipedID))
		h.appCtx.Logger.Info("match created", "swiper", userID, "swiped", swipedID)
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"matched": true,
			"message": "It's a match!",
		})
		return
	}

	// Invalidate rather than increment: the count is per distinct
	// requester, so a repeated request must not bump it. The next read
	// reprimes the key from the DB.
	_ = h.appCtx.RedisCache.Del(r.Context(), h.appCtx.RedisCache.KeyForRequestCount(swipedID))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"matched": false,
		"message": "Request swipe added.",
	})
}

func (h *SwipeHandler) Decline(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	swipedID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if swipedID == userID {
		respondError(w, apperr.ErrSelfSwipe)
		return
	}

	if err := h.swipeRepo.Decline(r.Context(), userID, swipedID); err != nil {
		respondError(w, err)
		return
	}

	// A decline can shadow an earlier request from us toward the same
	// user, so the swiped side's cached count may be stale. Invalidate.
	_ = h.appCtx.RedisCache.Del(r.Context(), h.appCtx.RedisCache.KeyForRequestCount(swipedID))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"matched": false,
		"message": "Decline swipe added.",
	})
}
