package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"lumen/lumen/config"
	"lumen/lumen/controllers"
	"lumen/lumen/middlewares"
	"lumen/lumen/utils/logging"
	"lumen/lumen/utils/types"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidJSON = errors.New("invalid JSON body")

func ChatRoutes(ctrl *controllers.ChatController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		if cfg.AuthEnabled() {
			gr.Use(middlewares.AuthMiddleware(cfg))
		}
		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, errInvalidJSON
			}
			resp, err := ctrl.Chat(r.Context(), req)
			if err != nil {
				return nil, 0, err
			}
			return resp, http.StatusOK, nil
		}))
	})

	// auth travels in the first frame, browsers cannot set headers on websockets
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		sessionID := uuid.NewString()
		emit := func(ev types.StreamEvent) {
			if err := wsjson.Write(ctx, conn, ev); err != nil {
				logging.AppLogger.Info("websocket write failed", zap.String("session_id", sessionID), zap.Error(err))
			}
		}

		authed := !cfg.AuthEnabled()
		for {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				status := websocket.CloseStatus(err)
				if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
					conn.Close(websocket.StatusNormalClosure, "")
				}
				return
			}
			if typ != websocket.MessageText {
				conn.Close(websocket.StatusUnsupportedData, "unsupported data")
				return
			}
			var req types.ChatRequest
			if err := json.Unmarshal(data, &req); err != nil {
				emit(types.StreamEvent{Type: "error", SessionID: sessionID, Error: errInvalidJSON.Error()})
				continue
			}
			if !authed {
				if _, err := middlewares.ParseToken(cfg.JWTSecret, req.Token); err != nil {
					emit(types.StreamEvent{Type: "error", SessionID: sessionID, Error: "invalid token"})
					conn.Close(websocket.StatusPolicyViolation, "invalid token")
					return
				}
				authed = true
			}
			ctrl.ChatStream(ctx, sessionID, req, emit)
		}
	})
	return r
}
