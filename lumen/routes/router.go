package routes

import (
	"net/http"
	"time"

	"lumen/lumen/config"
	"lumen/lumen/controllers"
	"lumen/lumen/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers groups everything the router mounts. Auth and User are nil
// when accounts are disabled.
type Controllers struct {
	Chat   *controllers.ChatController
	Image  *controllers.ImageController
	Health *controllers.HealthController
	Auth   *controllers.AuthController
	User   *controllers.UserController
}

func NewRouter(cfg config.Config, c Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLoggerMiddleware)
	r.Use(middleware.Recoverer)

	r.Mount("/api/health", HealthRoutes(c.Health))
	r.Handle("/metrics", promhttp.Handler())

	// no request timeout here: /api/chat/ws stays open across questions
	r.Mount("/api/chat", ChatRoutes(c.Chat, cfg))
	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(2*cfg.LLMTimeout + 30*time.Second))
		gr.Mount("/api/analyze-image", ImageRoutes(c.Image, cfg))
	})

	if c.Auth != nil && c.User != nil {
		r.Mount("/auth", AuthRoutes(c.Auth))
		r.Mount("/users", UserRoutes(c.User, cfg))
	}
	return r
}
