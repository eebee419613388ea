package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameChanged  = errors.New("game changed while the cpu was thinking")
)

// Store 保存对局快照。Load 找不到时返回包装了 ErrGameNotFound 的错误。
type Store interface {
	Save(ctx context.Context, g *GameState) error
	Load(ctx context.Context, id string) (*GameState, error)
	Delete(ctx context.Context, id string) error
}

// Archive 接收已结束的对局。
type Archive interface {
	Archive(ctx context.Context, g *GameState) error
}

type nopArchive struct{}

func (nopArchive) Archive(context.Context, *GameState) error { return nil }

type Manager struct {
	mu         sync.Mutex
	store      Store
	archive    Archive
	engine     *engine.Engine
	log        *zap.SugaredLogger
	thinkDelay time.Duration
	now        func() time.Time

	lmu       sync.RWMutex
	listeners []func(*GameState)
}

type Option func(*Manager)

func WithArchive(a Archive) Option {
	return func(m *Manager) {
		if a != nil {
			m.archive = a
		}
	}
}

// WithThinkDelay CPU 走子前的停顿，让界面看得到“思考中”。
func WithThinkDelay(d time.Duration) Option {
	return func(m *Manager) { m.thinkDelay = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(st Store, eng *engine.Engine, log *zap.SugaredLogger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if eng == nil {
		eng = engine.NewEngine(0)
	}
	m := &Manager{
		store:   st,
		archive: nopArchive{},
		engine:  eng,
		log:     log,
		now:     time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// OnUpdate 注册一个回调，每次对局状态变化后以副本调用。
func (m *Manager) OnUpdate(fn func(*GameState)) {
	m.lmu.Lock()
	m.listeners = append(m.listeners, fn)
	m.lmu.Unlock()
}

func (m *Manager) notify(g *GameState) {
	m.lmu.RLock()
	ls := m.listeners
	m.lmu.RUnlock()
	for _, fn := range ls {
		fn(g.Clone())
	}
}

type Options struct {
	Level     engine.Level
	HumanSide shogi.Owner

	// StartSFEN 为空时从平手开始
	StartSFEN string
}

func (m *Manager) NewGame(ctx context.Context, opts Options) (*GameState, error) {
	pos := shogi.NewInitialPosition()
	if opts.StartSFEN != "" {
		p, err := shogi.DecodeSFEN(opts.StartSFEN)
		if err != nil {
			return nil, err
		}
		pos = p
	}
	now := m.now()
	g := &GameState{
		ID:         uuid.NewString(),
		Pos:        pos,
		StartSFEN:  shogi.EncodeSFEN(pos),
		Level:      opts.Level,
		HumanSide:  opts.HumanSide,
		Status:     StatusOngoing,
		Check:      pos.InCheck(),
		Repetition: map[uint64]int{pos.EnsureHash(): 1},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.checkGameOver(g)

	m.mu.Lock()
	err := m.store.Save(ctx, g)
	m.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	m.log.Infow("new game", "id", g.ID, "level", g.Level, "human", g.HumanSide)
	m.notify(g)
	return g, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*GameState, error) {
	return m.store.Load(ctx, id)
}

// Play 人走一步。盘上走子在必须成时自动成，不能成时拒绝 Promote。
func (m *Manager) Play(ctx context.Context, id string, mv shogi.Move) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Over() {
		return nil, ErrGameOver
	}
	if g.HumanSide != shogi.NoOwner && g.Pos.SideToMove != g.HumanSide {
		return nil, ErrNotYourTurn
	}
	mv, err = normalize(g.Pos, mv)
	if err != nil {
		return nil, err
	}
	if !g.Pos.IsValid(mv) {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}
	if err := m.commit(ctx, g, mv, false); err != nil {
		return nil, err
	}
	return g, nil
}

func normalize(pos *shogi.Position, mv shogi.Move) (shogi.Move, error) {
	if !mv.Drop {
		if pc := pos.Board.At(mv.From); pc.IsEmpty() || pc.Owner != pos.SideToMove {
			return mv, fmt.Errorf("%w: no own piece at %s", ErrIllegalMove, mv.From)
		}
	}
	mv, err := pos.NormalizePromotion(mv)
	if err != nil {
		return mv, fmt.Errorf("%w: %s: %v", ErrIllegalMove, mv, err)
	}
	return mv, nil
}

// CPUMove 让引擎替轮到的一方走一步。没有候选着法时该方判负。
func (m *Manager) CPUMove(ctx context.Context, id string) (*GameState, engine.SearchResult, error) {
	if m.thinkDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, engine.SearchResult{}, ctx.Err()
		case <-time.After(m.thinkDelay):
		}
	}

	// 搜索期间不持有 m.mu，提交前重新读取并确认对局没有变化
	snap, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, engine.SearchResult{}, err
	}
	if err := cpuCanMove(snap); err != nil {
		return nil, engine.SearchResult{}, err
	}
	res := m.engine.Search(snap.Pos, snap.Level)
	m.log.Debugw("cpu search",
		"id", snap.ID,
		"level", res.Level,
		"candidates", res.Candidates,
		"nodes", res.Nodes,
		"time", res.TimeUsed,
	)

	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, res, err
	}
	if err := cpuCanMove(g); err != nil {
		return nil, res, err
	}
	if len(g.Moves) != len(snap.Moves) {
		return nil, res, ErrGameChanged
	}
	side := g.Pos.SideToMove
	if !res.OK {
		g.finish(side.Opponent(), ReasonNoMoves)
		if err := m.save(ctx, g); err != nil {
			return nil, res, err
		}
		return g, res, nil
	}
	// 非 strict 模式下 CPU 的着法不再校验，送将的后果由吃玉判负体现
	if err := m.commit(ctx, g, res.BestMove, true); err != nil {
		return nil, res, err
	}
	m.log.Infow("cpu move", "id", g.ID, "move", res.BestMove.String(), "score", res.Score)
	return g, res, nil
}

func cpuCanMove(g *GameState) error {
	if g.Over() {
		return ErrGameOver
	}
	if g.HumanSide != shogi.NoOwner && g.Pos.SideToMove == g.HumanSide {
		return ErrNotYourTurn
	}
	return nil
}

// Resign 认输。人机对局中认输的是人，双人对局中是轮到走的一方。
func (m *Manager) Resign(ctx context.Context, id string) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Over() {
		return nil, ErrGameOver
	}
	loser := g.HumanSide
	if loser == shogi.NoOwner {
		loser = g.Pos.SideToMove
	}
	g.finish(loser.Opponent(), ReasonResign)
	if err := m.save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// LegalMoves 完全合法的着法列表，给界面做提示。对局结束后为空。
func (m *Manager) LegalMoves(g *GameState) []shogi.Move {
	if g.Over() {
		return nil
	}
	return g.Pos.LegalMoves()
}

// Analyze 对任意 SFEN 局面选点，不创建对局。
func (m *Manager) Analyze(ctx context.Context, sfen string, level engine.Level) (engine.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return engine.SearchResult{}, err
	}
	pos, err := shogi.DecodeSFEN(sfen)
	if err != nil {
		return engine.SearchResult{}, err
	}
	return m.engine.Search(pos, level), nil
}

func (m *Manager) commit(ctx context.Context, g *GameState, mv shogi.Move, cpu bool) error {
	side := g.Pos.SideToMove
	captured := shogi.KindNone
	if !mv.Drop {
		captured = g.Pos.Board.At(mv.To).Kind
	}
	next, ok := g.Pos.ApplyMove(mv)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}

	now := m.now()
	g.Pos = next
	g.Check = next.InCheck()
	g.Moves = append(g.Moves, MoveRecord{
		Move:     mv,
		USI:      mv.String(),
		Side:     side,
		Captured: captured,
		Check:    g.Check,
		CPU:      cpu,
		Elapsed:  now.Sub(g.UpdatedAt),
		At:       now,
	})
	if g.Repetition == nil {
		g.Repetition = make(map[uint64]int)
	}
	g.Repetition[next.EnsureHash()]++
	m.checkGameOver(g)
	return m.save(ctx, g)
}

// checkGameOver 玉被吃、千日手、或轮到的一方无合法着法。
func (m *Manager) checkGameOver(g *GameState) {
	if g.Over() {
		return
	}
	switch {
	case !g.Pos.KingExists(shogi.Near):
		g.finish(shogi.Far, ReasonKingCaptured)
	case !g.Pos.KingExists(shogi.Far):
		g.finish(shogi.Near, ReasonKingCaptured)
	case g.Repetition[g.Pos.EnsureHash()] >= repetitionLimit:
		g.finish(shogi.NoOwner, ReasonRepetition)
	case len(g.Pos.LegalMoves()) == 0:
		reason := ReasonNoMoves
		if g.Check {
			reason = ReasonCheckmate
		}
		g.finish(g.Pos.SideToMove.Opponent(), reason)
	}
}

func (m *Manager) save(ctx context.Context, g *GameState) error {
	g.UpdatedAt = m.now()
	if err := m.store.Save(ctx, g); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	if g.Over() {
		m.log.Infow("game over", "id", g.ID, "status", g.Status, "reason", g.Reason, "moves", len(g.Moves))
		if err := m.archive.Archive(ctx, g.Clone()); err != nil {
			m.log.Warnw("archive game failed", "id", g.ID, "err", err)
		}
	}
	m.notify(g)
	return nil
}
