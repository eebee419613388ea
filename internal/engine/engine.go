package engine

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Level CPU 难度
type Level int

const (
	Easy Level = iota
	Medium
	Hard
)

func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel 接受 easy/medium/hard（大小写不敏感），也接受前端旧的 beginner/intermediate/advanced。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "beginner":
		return Easy, nil
	case "medium", "intermediate", "":
		return Medium, nil
	case "hard", "advanced":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown cpu level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Engine 持有随机源。rand.Rand 不是并发安全的，选点时加锁。
type Engine struct {
	mu    sync.Mutex
	rng   *rand.Rand
	nodes int64

	// Strict 为 true 时候选着法先经过 IsValid 过滤，CPU 不会走送将或打步诘。
	Strict bool
}

// NewEngine seed 为 0 时用当前时间。
func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewEngineWithRand(rand.New(rand.NewSource(seed)))
}

func NewEngineWithRand(r *rand.Rand) *Engine {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: r}
}
