package adapters

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"shogi/internal/server/game"
)

const gamesCollection = "games"

// MongoArchive 把结束的对局（起始 SFEN、USI 着法、KIF 文本、结果）写入 games 集合。
type MongoArchive struct {
	Client   *mongo.Client
	Database *mongo.Database
	uri      string
	dbName   string
	log      *zap.SugaredLogger
}

func NewMongoArchive(uri, database string, log *zap.SugaredLogger) *MongoArchive {
	return &MongoArchive{uri: uri, dbName: database, log: log}
}

func (a *MongoArchive) Init(ctx context.Context) error {
	clientOpts := options.Client().ApplyURI(a.uri)

	ctxConnect, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctxConnect, clientOpts)
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctxConnect, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ping mongodb: %w", err)
	}
	a.Client = client
	a.Database = client.Database(a.dbName)
	a.log.Infow("connected to mongodb", "database", a.dbName)
	return nil
}

func archiveDoc(g *game.GameState) bson.M {
	moves := make([]string, 0, len(g.Moves))
	for _, mr := range g.Moves {
		moves = append(moves, mr.USI)
	}
	return bson.M{
		"_id":         g.ID,
		"start_sfen":  g.StartSFEN,
		"moves":       moves,
		"kif":         g.KIF(),
		"level":       g.Level.String(),
		"human_side":  g.HumanSide.String(),
		"status":      string(g.Status),
		"winner":      g.Winner.String(),
		"reason":      g.Reason,
		"ply":         len(g.Moves),
		"created_at":  g.CreatedAt,
		"finished_at": g.UpdatedAt,
	}
}

func (a *MongoArchive) Archive(ctx context.Context, g *game.GameState) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll := a.Database.Collection(gamesCollection)
	if _, err := coll.InsertOne(ctx, archiveDoc(g)); err != nil {
		return fmt.Errorf("archive game %s: %w", g.ID, err)
	}
	return nil
}

func (a *MongoArchive) Close(ctx context.Context) error {
	if a.Client != nil {
		return a.Client.Disconnect(ctx)
	}
	return nil
}
