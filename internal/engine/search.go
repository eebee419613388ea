package engine

import (
	"math"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"shogi/internal/shogi"
)

const (
	// 吃掉对方的玉 / 自己的玉没了
	scoreWin  = 50000
	scoreLoss = -50000

	checkBonus       = 300
	captureShare     = 0.5
	promoteBonus     = 20
	zoneEntryBonus   = 10
	nearOwnKingBonus = 5
	nearEnemyKing    = 8

	mediumReplyWeight = 0.3
	hardReplyWeight   = 0.4
	mediumTopShare    = 0.2
	hardExploreProb   = 0.05
)

// SearchResult 一次选点的结果与统计，由上层记录日志。
type SearchResult struct {
	BestMove   shogi.Move
	OK         bool
	Score      float64
	Level      Level
	Candidates int
	Nodes      int64
	TimeUsed   time.Duration
}

type scoredMove struct {
	move  shogi.Move
	score float64
}

// SelectMove 用一个新的（按时间播种的）引擎选点。需要可复现时用 (*Engine).SelectMove。
func SelectMove(level Level, b shogi.Board, hand, handNear, handFar shogi.Hand, mover shogi.Owner) (shogi.Move, bool) {
	return NewEngine(0).SelectMove(level, b, hand, handNear, handFar, mover)
}

// SelectMove 按难度为 mover 选一步。hand 为 mover 用于枚举打入的持驹。没有候选时 ok 为 false。
func (e *Engine) SelectMove(level Level, b shogi.Board, hand, handNear, handFar shogi.Hand, mover shogi.Owner) (shogi.Move, bool) {
	res := e.search(level, b, hand, handNear, handFar, mover)
	return res.BestMove, res.OK
}

// Search 对一个完整局面选点，返回统计信息。
func (e *Engine) Search(pos *shogi.Position, level Level) SearchResult {
	side := pos.SideToMove
	return e.search(level, pos.Board, pos.Hand(side), pos.HandNear, pos.HandFar, side)
}

func (e *Engine) search(level Level, b shogi.Board, hand, hn, hf shogi.Hand, mover shogi.Owner) SearchResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	atomic.StoreInt64(&e.nodes, 0)

	moves := e.candidates(b, hand, hn, hf, mover)
	res := SearchResult{Level: level, Candidates: len(moves)}
	if len(moves) == 0 {
		res.TimeUsed = time.Since(start)
		return res
	}

	var best scoredMove
	switch level {
	case Medium:
		best = e.pickMedium(e.scoreAll(moves, b, hn, hf, mover, e.mediumScore))
	case Hard:
		best = e.pickHard(e.scoreAll(moves, b, hn, hf, mover, e.hardScore))
	default:
		best = scoredMove{move: moves[e.rng.Intn(len(moves))]}
	}

	res.BestMove = best.move
	res.Score = best.score
	res.OK = true
	res.Nodes = atomic.LoadInt64(&e.nodes)
	res.TimeUsed = time.Since(start)
	return res
}

type scoreFunc func(m shogi.Move, b shogi.Board, hn, hf shogi.Hand, mover shogi.Owner) float64

// scoreAll 打分后稳定降序排序，同分保持生成顺序。
func (e *Engine) scoreAll(moves []shogi.Move, b shogi.Board, hn, hf shogi.Hand, mover shogi.Owner, f scoreFunc) []scoredMove {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: f(m, b, hn, hf, mover)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

func (e *Engine) pickMedium(scored []scoredMove) scoredMove {
	top := int(math.Floor(float64(len(scored)) * mediumTopShare))
	if top < 1 {
		top = 1
	}
	return scored[e.rng.Intn(top)]
}

func (e *Engine) pickHard(scored []scoredMove) scoredMove {
	if e.rng.Float64() < hardExploreProb && len(scored) > 2 {
		return scored[e.rng.Intn(2)+1]
	}
	return scored[0]
}

func (e *Engine) evaluate(b shogi.Board, hn, hf shogi.Hand, perspective shogi.Owner) float64 {
	atomic.AddInt64(&e.nodes, 1)
	return Evaluate(b, hn, hf, perspective)
}

// evaluateMove 走完这一步后的评估，加上将军、吃子、成、入敌阵、靠近双方玉的奖励。
func (e *Engine) evaluateMove(m shogi.Move, b shogi.Board, hn, hf shogi.Hand, mover shogi.Owner) float64 {
	nb, nhn, nhf := shogi.Apply(b, m, hn, hf, mover)
	enemy := mover.Opponent()

	enemyKing, ok := shogi.FindKing(nb, enemy)
	if !ok {
		return scoreWin
	}
	myKing, ok := shogi.FindKing(nb, mover)
	if !ok {
		return scoreLoss
	}

	score := e.evaluate(nb, nhn, nhf, mover)
	if shogi.IsInCheck(nb, enemy) {
		score += checkBonus
	}
	if !m.Drop {
		if target := b.At(m.To); !target.IsEmpty() && target.Owner != mover {
			score += pieceValue[target.Kind] * captureShare
		}
	}
	if m.Promote {
		score += promoteBonus
	}
	if shogi.InPromotionZone(mover, m.To.Row) {
		score += zoneEntryBonus
	}
	if manhattan(m.To, myKing) <= 2 {
		score += nearOwnKingBonus
	}
	if manhattan(m.To, enemyKing) <= 3 {
		score += nearEnemyKing
	}
	return score
}

// 中级：一步 + 对方前 5 个应手里对自己最差的局面。
// 应手后的评估沿用走完本步时的持驹。
func (e *Engine) mediumScore(m shogi.Move, b shogi.Board, hn, hf shogi.Hand, mover shogi.Owner) float64 {
	base := e.evaluateMove(m, b, hn, hf, mover)
	nb, nhn, nhf := shogi.Apply(b, m, hn, hf, mover)
	enemy := mover.Opponent()

	replies := firstN(e.candidates(nb, handOf(enemy, nhn, nhf), nhn, nhf, enemy), mediumReplyCap)
	if len(replies) == 0 {
		return base
	}
	worst := math.Inf(1)
	for _, r := range replies {
		ab, _, _ := shogi.Apply(nb, r, nhn, nhf, enemy)
		worst = math.Min(worst, e.evaluate(ab, nhn, nhf, mover))
	}
	return base - worst*mediumReplyWeight
}

// 上级：对方前 8 个应手，各自取我方前 5 个续手的最好结果，再取其中最差的。
func (e *Engine) hardScore(m shogi.Move, b shogi.Board, hn, hf shogi.Hand, mover shogi.Owner) float64 {
	base := e.evaluateMove(m, b, hn, hf, mover)
	nb, nhn, nhf := shogi.Apply(b, m, hn, hf, mover)
	enemy := mover.Opponent()

	replies := e.candidates(nb, handOf(enemy, nhn, nhf), nhn, nhf, enemy)
	if len(replies) == 0 {
		// 对方无着可走
		return scoreWin
	}
	worst := math.Inf(1)
	for _, r := range firstN(replies, hardReplyCap) {
		ab, ahn, ahf := shogi.Apply(nb, r, nhn, nhf, enemy)
		follow := firstN(e.candidates(ab, handOf(mover, ahn, ahf), ahn, ahf, mover), hardFollowUpCap)
		var best float64
		if len(follow) == 0 {
			best = e.evaluate(ab, ahn, ahf, mover)
		} else {
			best = math.Inf(-1)
			for _, f := range follow {
				fb, _, _ := shogi.Apply(ab, f, ahn, ahf, mover)
				best = math.Max(best, e.evaluate(fb, ahn, ahf, mover))
			}
		}
		worst = math.Min(worst, best)
	}
	return base - worst*hardReplyWeight
}

// NewRand 便于调用方构造可复现的随机源。
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
