package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/masterblog/backend/internal/handler/post"
	middlewarePkg "github.com/zhouzirui/masterblog/backend/internal/middleware"
	"github.com/zhouzirui/masterblog/backend/pkg/utils"
)

// WelcomeBanner is served at the API root.
const WelcomeBanner = "Welcome to the Masterblog API!"

const (
	msgRouteNotFound    = "Not found."
	msgMethodNotAllowed = "Method not allowed."
)

// NewRouter wires HTTP routes to the post store.
func NewRouter(posts post.PostService, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewarePkg.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	// Set before mounting so subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	postHandler := post.New(posts)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondText(w, http.StatusOK, WelcomeBanner)
	})

	r.Route("/api", func(api chi.Router) {
		postHandler.RegisterRoutes(api)
	})

	return r
}
