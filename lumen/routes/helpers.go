package routes

import (
	"encoding/json"
	"net/http"

	"lumen/lumen/controllers"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/types"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorLogger.Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := controllers.StatusFor(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorLogger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, types.ErrorResponse{Error: controllers.PublicError(err)})
}

// handleJSON adapts a handler returning (body, status, error) to http.HandlerFunc.
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			if status == 0 {
				writeError(w, err)
				return
			}
			writeJSON(w, status, types.ErrorResponse{Error: controllers.PublicError(err)})
			return
		}
		writeJSON(w, status, res)
	}
}
