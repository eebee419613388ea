package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"shogi/internal/engine"
	"shogi/internal/server/game"
)

type Options struct {
	WebDir       string
	MobileDir    string
	RequestLog   bool // 打开 chi 的访问日志
	DefaultLevel engine.Level
}

// NewRouter 挂上 /api/*、websocket 和静态页面。Hub 订阅 Manager 的状态更新。
func NewRouter(mgr *game.Manager, log *zap.SugaredLogger, opts Options) http.Handler {
	h := NewHandler(mgr, log, opts.DefaultLevel)
	hub := NewHub(mgr, log)
	mgr.OnUpdate(hub.Broadcast)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if opts.RequestLog {
		r.Use(middleware.Logger)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/new_game", h.handleNewGame)
		r.Post("/play", h.handlePlay)
		r.Post("/state", h.handleState)
		r.Post("/ai_move", h.handleAiMove)
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/resign", h.handleResign)
		r.Get("/games/{id}/kif", h.handleKIF)
		r.Get("/ws/{id}", hub.ServeWS)
	})

	RegisterStaticRoutes(r, opts.WebDir, opts.MobileDir)
	return r
}
