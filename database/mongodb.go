package database

import (
	"context"
	"dashboard/utils"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	MONGO_TIMEOUT              = 20 * time.Second
	COLLECTION_FUNNELS_HISTORY = "funnels_history"
)

func GetDB(env string) string {
	if env == utils.ENV_RELEASE {
		return "production"
	}

	if env == utils.ENV_HOMOLOG {
		return "homolog"
	}

	if env == utils.ENV_DEVELOPMENT {
		return "development"
	}

	panic("[MongoDB] Invalid DB name")
}

// ConnectMongo abre um único client para o processo inteiro e confirma a conexão.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("[MongoDB] conectando: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("[MongoDB] ping: %w", err)
	}
	return client, nil
}
