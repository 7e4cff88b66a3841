package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoStore - return mongo-backed store operations
func NewMongoStore(client *mongo.Client, database string) AeroVitalStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

// Ping - ping mongo db
func (m *mongoDB) Ping() error {
	return m.client.Ping(context.Background(), nil)
}

// Close - close mongo db connections
func (m *mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}
