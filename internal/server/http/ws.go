package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shogi/internal/server/game"
)

const wsWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub 按对局 ID 管理 websocket 连接，每次状态更新推送完整 StateResponse。
type Hub struct {
	mgr *game.Manager
	log *zap.SugaredLogger

	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{}
}

func NewHub(mgr *game.Manager, log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{mgr: mgr, log: log, conns: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := h.mgr.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade", "id", id, "err", err)
		return
	}

	h.mu.Lock()
	if h.conns[id] == nil {
		h.conns[id] = make(map[*websocket.Conn]struct{})
	}
	h.conns[id][conn] = struct{}{}
	err = h.write(conn, stateToDTO(g, h.mgr.LegalMoves(g)))
	h.mu.Unlock()
	if err != nil {
		h.drop(id, conn)
		return
	}

	// 客户端不发消息，读循环只用来发现断线
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(id, conn)
			return
		}
	}
}

// Broadcast 作为 Manager.OnUpdate 的回调。
func (h *Hub) Broadcast(g *game.GameState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.conns[g.ID]
	if len(set) == 0 {
		return
	}
	msg := stateToDTO(g, h.mgr.LegalMoves(g))
	for conn := range set {
		if err := h.write(conn, msg); err != nil {
			h.log.Debugw("websocket write", "id", g.ID, "err", err)
			conn.Close()
			delete(set, conn)
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(v)
}

func (h *Hub) drop(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.conns[id]; set != nil {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, id)
		}
	}
	conn.Close()
}

// Count 当前连到某局的客户端数。
func (h *Hub) Count(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[id])
}
