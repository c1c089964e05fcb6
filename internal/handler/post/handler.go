package post

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/zhouzirui/masterblog/backend/internal/model/post"
	postservice "github.com/zhouzirui/masterblog/backend/internal/service/post"
	"github.com/zhouzirui/masterblog/backend/pkg/utils"
)

const (
	msgInvalidSortField     = "Invalid sort field. Use 'title' or 'content'."
	msgInvalidSortDirection = "Invalid sort direction. Use 'asc' or 'desc'."
	msgTitleContentRequired = "Title and content are required."
	msgInvalidBody          = "Invalid request body."
	msgNotFound             = "Post not found."
	msgInternal             = "internal server error"
)

// PostService is the store the handlers read and mutate.
type PostService interface {
	List(ctx context.Context, opts post.ListOptions) ([]post.Post, error)
	Create(ctx context.Context, title, content string) (post.Post, error)
	Update(ctx context.Context, id int, patch post.Patch) (post.Post, error)
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, filter post.Filter) []post.Post
}

// Handler serves the /posts resource.
type Handler struct {
	posts PostService
}

// New creates a post handler backed by posts.
func New(posts PostService) *Handler {
	return &Handler{posts: posts}
}

// RegisterRoutes mounts the post endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/posts", func(pr chi.Router) {
		pr.Get("/", h.handleList)
		pr.Post("/", h.handleCreate)
		pr.Get("/search", h.handleSearch)
		pr.Put("/{id}", h.handleUpdate)
		pr.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := post.ListOptions{
		Sort:      query.Get("sort"),
		Direction: query.Get("direction"),
	}

	posts, err := h.posts.List(r.Context(), opts)
	switch {
	case errors.Is(err, postservice.ErrInvalidSortField):
		utils.RespondError(w, http.StatusBadRequest, msgInvalidSortField)
		return
	case errors.Is(err, postservice.ErrInvalidSortDirection):
		utils.RespondError(w, http.StatusBadRequest, msgInvalidSortDirection)
		return
	case err != nil:
		h.internalError(w, r, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, nonNil(posts))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	if err := utils.DecodeJSON(r, &payload); err != nil || payload.Title == nil || payload.Content == nil {
		utils.RespondError(w, http.StatusBadRequest, msgTitleContentRequired)
		return
	}

	created, err := h.posts.Create(r.Context(), *payload.Title, *payload.Content)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.logger(r).WithField("post_id", created.ID).Info("post created")
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var patch post.Patch
	if err := utils.DecodeJSON(r, &patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	updated, err := h.posts.Update(r.Context(), id, patch)
	if errors.Is(err, postservice.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.logger(r).WithField("post_id", id).Info("post updated")
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	err := h.posts.Delete(r.Context(), id)
	if errors.Is(err, postservice.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.logger(r).WithField("post_id", id).Info("post deleted")
	utils.RespondMessage(w, http.StatusOK, fmt.Sprintf("Post with id %d has been deleted successfully.", id))
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := post.Filter{
		Title:   query.Get("title"),
		Content: query.Get("content"),
	}

	utils.RespondJSON(w, http.StatusOK, nonNil(h.posts.Search(r.Context(), filter)))
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger(r).WithError(err).Error("post request failed")
	utils.RespondError(w, http.StatusInternalServerError, msgInternal)
}

func (h *Handler) logger(r *http.Request) *log.Entry {
	return log.WithField("request_id", middleware.GetReqID(r.Context()))
}

// postID parses the {id} URL parameter. Only positive integers are valid ids.
func postID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil(posts []post.Post) []post.Post {
	if posts == nil {
		return []post.Post{}
	}
	return posts
}
