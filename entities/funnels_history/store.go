package funnelshistory

import (
	"context"
	"dashboard/database"
	"dashboard/schemas"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const DEFAULT_LIMIT = 100

// Store grava e lista o histórico de ações dos quadros na coleção funnels_history.
type Store struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func NewStore(client *mongo.Client, dbName string, logger *zap.SugaredLogger) *Store {
	return &Store{
		collection: client.Database(dbName).Collection(database.COLLECTION_FUNNELS_HISTORY),
		logger:     logger,
	}
}

// Record nunca devolve erro: falhas só vão para o log.
func (s *Store) Record(ctx context.Context, entry schemas.FunnelsHistory) {
	entry.CreatedAt = time.Now()

	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), database.MONGO_TIMEOUT)
	defer cancel()

	if _, err := s.collection.InsertOne(insertCtx, entry); err != nil {
		s.logger.Errorw("failed to record funnel history", "funnel_id", entry.RelatedFunnel, "action", entry.Action, "error", err)
	}
}

type Query struct {
	FunnelID string
	LeadID   string
	From     time.Time
	Until    time.Time
	Limit    int64
}

func buildFilter(query Query) bson.D {
	filter := bson.D{{Key: "related_funnel", Value: query.FunnelID}}
	if query.LeadID != "" {
		filter = append(filter, bson.E{Key: "related_lead", Value: query.LeadID})
	}

	period := bson.D{}
	if !query.From.IsZero() {
		period = append(period, bson.E{Key: "$gte", Value: query.From})
	}
	if !query.Until.IsZero() {
		period = append(period, bson.E{Key: "$lte", Value: query.Until})
	}
	if len(period) > 0 {
		filter = append(filter, bson.E{Key: "created_at", Value: period})
	}
	return filter
}

func (s *Store) GetAll(ctx context.Context, query Query) ([]schemas.FunnelsHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	limit := query.Limit
	if limit <= 0 {
		limit = DEFAULT_LIMIT
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := s.collection.Find(ctx, buildFilter(query), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	history := []schemas.FunnelsHistory{}
	if err := cursor.All(ctx, &history); err != nil {
		return nil, err
	}
	return history, nil
}
