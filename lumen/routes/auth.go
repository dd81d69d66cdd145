package routes

import (
	"encoding/json"
	"net/http"

	"lumen/lumen/controllers"
	"lumen/lumen/utils/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, errInvalidJSON
		}
		token, err := ctrl.Login(r.Context(), req.Username)
		if err != nil {
			return nil, 0, err
		}
		return types.LoginResponse{Token: token}, http.StatusOK, nil
	}))
	return r
}
