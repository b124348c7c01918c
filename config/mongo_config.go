package config

import (
	"context"
	"fmt"
	"log/slog"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDatabase : подключение к MongoDB и выбранная база
type MongoDatabase struct {
	Client *mongodriver.Client
	*mongodriver.Database
}

func NewMongoConnection(ctx context.Context, cfg *MongoConfig) (*MongoDatabase, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: пустой uri")
	}

	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ошибка пинга MongoDB: %w", err)
	}

	slog.Info("подключение к MongoDB успешно выполнено", slog.String("database", cfg.Database))
	return &MongoDatabase{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

func SetupMongo(ctx context.Context, cfg *MongoConfig) (*MongoDatabase, error) {
	return NewMongoConnection(ctx, cfg)
}

func (m *MongoDatabase) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("ошибка закрытия соединения с MongoDB: %w", err)
	}
	return nil
}
