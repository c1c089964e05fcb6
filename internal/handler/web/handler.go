package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	middlewarePkg "github.com/zhouzirui/masterblog/backend/internal/middleware"
	"github.com/zhouzirui/masterblog/backend/pkg/utils"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Handler renders the single-page frontend that talks to the API.
type Handler struct {
	apiBaseURL string
}

// New creates a page handler pointing the client at apiBaseURL.
func New(apiBaseURL string) *Handler {
	return &Handler{apiBaseURL: apiBaseURL}
}

// NewRouter builds the router of the web service.
func NewRouter(apiBaseURL string) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewarePkg.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger)
	r.Use(middleware.Recoverer)

	New(apiBaseURL).RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the page and its static assets.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, struct{ APIBaseURL string }{h.apiBaseURL}); err != nil {
		log.WithError(err).Error("failed to render index page")
		utils.RespondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
