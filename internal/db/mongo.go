package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultDatabaseName = "redboys"

// DBService represents a service that interacts with the document store.
type DBService struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDBService loads environment variables, connects to MongoDB and pings it
// to verify the connection before returning.
func NewDBService() (*DBService, error) {
	err := godotenv.Load()
	if err != nil {
		slog.Info("No .env file found, continuing with system environment variables")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return nil, fmt.Errorf("missing MONGODB_URI in environment variables")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = defaultDatabaseName
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not connect to the database: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping the database: %v", err)
	}

	return &DBService{
		Client: client,
		DB:     client.Database(dbName),
	}, nil
}

// Health checks the health of the database connection by pinging the database.
func (s *DBService) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := s.Client.Ping(ctx, readpref.Primary())
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close disconnects the database client.
func (s *DBService) Close() error {
	slog.Info("Closing database connection")
	return s.Client.Disconnect(context.Background())
}
