package routes

import (
	"errors"
	"net/http"

	"lumen/lumen/config"
	"lumen/lumen/controllers"
	"lumen/lumen/middlewares"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(ctrl *controllers.UserController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))
	r.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
		id, ok := r.Context().Value(middlewares.UserIDKey).(int)
		if !ok {
			return nil, http.StatusUnauthorized, errors.New("unauthorized")
		}
		user, err := ctrl.GetUser(r.Context(), id)
		if err != nil {
			return nil, 0, err
		}
		return user, http.StatusOK, nil
	}))
	return r
}
