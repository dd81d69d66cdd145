package routes

import (
	"errors"
	"io"
	"net/http"

	"lumen/lumen/config"
	"lumen/lumen/controllers"
	"lumen/lumen/middlewares"

	"github.com/go-chi/chi/v5"
)

// multipart headers and the question field on top of the image itself
const formOverhead = 1 << 20

func ImageRoutes(ctrl *controllers.ImageController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	if cfg.AuthEnabled() {
		r.Use(middlewares.AuthMiddleware(cfg))
	}
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit := ctrl.MaxBytes(); limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, 0, controllers.ErrImageTooLarge
			}
			return nil, 0, controllers.ErrNoImage
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			return nil, 0, controllers.ErrNoImage
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, 0, err
		}
		resp, err := ctrl.Analyze(r.Context(), header.Filename, data, r.FormValue("question"))
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusOK, nil
	}))
	return r
}
