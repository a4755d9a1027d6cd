// Package mongodb implements the repository ports on top of MongoDB
// using the official mongo-driver.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names within the application database.
const (
	booksCollection  = "books"
	quotesCollection = "quotes"
)

// Config contains settings for the store connection.
type Config struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the application database name.
	Database string

	// ConnectTimeout bounds initial connection establishment.
	ConnectTimeout time.Duration

	// PingTimeout bounds the administrative ping used by health checks.
	PingTimeout time.Duration

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store owns the MongoDB client and hands out collection handles.
// It is constructed once at startup and injected into the repositories,
// with an explicit lifecycle: Connect on startup, Close on shutdown.
type Store struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewStore creates an unconnected store. Call Connect before use.
func NewStore(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		cfg:    cfg,
		logger: logger,
	}
}

// Connect establishes the client connection and verifies it with a ping.
// It is idempotent: repeated calls after a successful connect are no-ops.
// A failure here is fatal to startup; the process must not serve requests
// with a broken store handle.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	if s.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Connect rarely fails eagerly; the ping is what proves liveness.
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("pinging mongodb: %w", err)
	}

	s.client = client
	s.db = client.Database(s.cfg.Database)

	s.logger.Info("connected to mongodb",
		slog.String("database", s.cfg.Database),
	)

	return nil
}

// Books returns the books collection handle.
// Connect must have succeeded first.
func (s *Store) Books() *mongo.Collection {
	return s.db.Collection(booksCollection)
}

// Quotes returns the quotes collection handle.
// Connect must have succeeded first.
func (s *Store) Quotes() *mongo.Collection {
	return s.db.Collection(quotesCollection)
}

// Ping performs a lightweight administrative round trip to the store.
// The health endpoint surfaces the result as a response rather than
// crashing the process.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	if client == nil {
		return fmt.Errorf("mongodb store is not connected")
	}

	if s.cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.PingTimeout)
		defer cancel()
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("pinging mongodb: %w", err)
	}

	return nil
}

// Close disconnects the client, draining in-flight operations.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}

	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil

	if err != nil {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}

	s.logger.Info("mongodb connection closed")

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "mongodb" }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error { return s.Ping(ctx) }
