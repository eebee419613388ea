package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shogi/internal/server/game"
)

const gameKeyPrefix = "shogi:game:"

// RedisStore 把对局快照以 JSON 存在 shogi:game:<id> 下，带过期时间。
type RedisStore struct {
	client *redis.Client
	url    string
	ttl    time.Duration
	log    *zap.SugaredLogger
}

func NewRedisStore(url string, ttl time.Duration, log *zap.SugaredLogger) *RedisStore {
	return &RedisStore{url: url, ttl: ttl, log: log}
}

func redisOptions(url string) (*redis.Options, error) {
	if strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://") {
		return redis.ParseURL(url)
	}
	return &redis.Options{Addr: url, DB: 0}, nil
}

func (s *RedisStore) Init(ctx context.Context) error {
	opts, err := redisOptions(s.url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	s.client = redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Ping(ctxPing).Err(); err != nil {
		return fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	s.log.Infow("connected to redis", "addr", opts.Addr)
	return nil
}

func gameKey(id string) string { return gameKeyPrefix + id }

func (s *RedisStore) Save(ctx context.Context, g *game.GameState) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	if err := s.client.Set(ctx, gameKey(g.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", g.ID, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*game.GameState, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
		}
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return decodeGame(data)
}

func decodeGame(data []byte) (*game.GameState, error) {
	var g game.GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	if g.Pos == nil {
		return nil, errors.New("decode game: missing position")
	}
	g.Pos.EnsureHash()
	if g.Repetition == nil {
		g.Repetition = make(map[uint64]int)
	}
	return &g, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, gameKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
