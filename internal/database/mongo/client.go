package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client wraps the MongoDB connection shared by every storage. It is
// created once at process start and reused across requests.
type Client struct {
	conn     *mongo.Client
	Database *mongo.Database
	logger   *slog.Logger
}

// NewClient opens the MongoDB connection and verifies it with a ping.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("failed to open MongoDB connection", "error", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := conn.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("failed to ping MongoDB", "error", err)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("MongoDB connection established successfully",
		"database", cfg.MongoDatabase,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Client{
		conn:     conn,
		Database: conn.Database(cfg.MongoDatabase),
		logger:   logger,
	}, nil
}

func (c *Client) Close(ctx context.Context) error {
	start := time.Now()
	if err := c.conn.Disconnect(ctx); err != nil {
		c.logger.Error("failed to close MongoDB connection", "error", err)
		return err
	}
	c.logger.Info("MongoDB connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
