package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shogi/internal/engine"
	"shogi/internal/kif"
	"shogi/internal/server/game"
	"shogi/internal/shogi"
)

// Handler /api/* 的处理函数，对局状态全部交给 game.Manager。
type Handler struct {
	mgr *game.Manager
	log *zap.SugaredLogger

	// 请求里没写 level 时使用
	defaultLevel engine.Level
}

func NewHandler(mgr *game.Manager, log *zap.SugaredLogger, defaultLevel engine.Level) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{mgr: mgr, log: log, defaultLevel: defaultLevel}
}

func (h *Handler) level(s string) (engine.Level, error) {
	if strings.TrimSpace(s) == "" {
		return h.defaultLevel, nil
	}
	return engine.ParseLevel(s)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !h.decode(w, r, &req) {
		return
	}
	level, err := h.level(req.Level)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	side, err := parseSide(req.HumanSide)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := h.mgr.NewGame(r.Context(), game.Options{Level: level, HumanSide: side, StartSFEN: req.SFEN})
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateToDTO(g, h.mgr.LegalMoves(g)))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.mgr.Get(r.Context(), req.GameID)
	if err != nil {
		h.fail(w, err)
		return
	}
	mv, err := req.Move.toMove(g.Pos.Board, g.Pos.SideToMove)
	if err != nil {
		h.fail(w, err)
		return
	}
	g, err = h.mgr.Play(r.Context(), req.GameID, mv)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateToDTO(g, h.mgr.LegalMoves(g)))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.mgr.Get(r.Context(), req.GameID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateToDTO(g, h.mgr.LegalMoves(g)))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, res, err := h.mgr.CPUMove(r.Context(), req.GameID)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp := AiMoveResponse{
		State:      stateToDTO(g, h.mgr.LegalMoves(g)),
		Score:      res.Score,
		Candidates: res.Candidates,
		Nodes:      res.Nodes,
		TimeMs:     res.TimeUsed.Milliseconds(),
	}
	if res.OK {
		resp.BestMove = recordToDTO(g.LastMove())
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleAnalyze 只思考不落子，不需要对局。
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Position == "" {
		h.writeError(w, http.StatusBadRequest, "missing position")
		return
	}
	level, err := h.level(req.Level)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.mgr.Analyze(r.Context(), req.Position, level)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, searchToAnalyze(res))
}

func (h *Handler) handleResign(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !h.decode(w, r, &req) {
		return
	}
	g, err := h.mgr.Resign(r.Context(), req.GameID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stateToDTO(g, nil))
}

// handleKIF 默认 UTF-8，?encoding=sjis 时输出 Shift-JIS。
func (h *Handler) handleKIF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := h.mgr.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	text := g.KIF()
	body := []byte(text)
	charset := "utf-8"
	switch strings.ToLower(r.URL.Query().Get("encoding")) {
	case "sjis", "shift_jis", "shift-jis", "cp932":
		body, err = kif.EncodeShiftJIS(text)
		if err != nil {
			h.fail(w, err)
			return
		}
		charset = "Shift_JIS"
	}
	w.Header().Set("Content-Type", "text/plain; charset="+charset)
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.kif"`)
	if _, err := w.Write(body); err != nil {
		h.log.Warnw("write kif", "id", id, "err", err)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.log.Debugw("bad request body", "path", r.URL.Path, "err", err)
		h.writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}

// fail 把领域错误映射成 HTTP 状态码。
func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, shogi.ErrInvalidMove),
		errors.Is(err, shogi.ErrInvalidSFEN):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotYourTurn), errors.Is(err, game.ErrGameChanged):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "err", err)
	}
	h.writeError(w, status, err.Error())
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warnw("writeJSON error", "err", err)
	}
}
