package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

// Repository defines the interface for report storage.
type Repository interface {
	SaveReport(ctx context.Context, report models.ArchivedReport) error
	LatestReports(ctx context.Context, limit int64) ([]models.ArchivedReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	now      func() time.Time
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "summary_reports",
		now:      time.Now,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveReport inserts an archived summary.
func (r *MongoDBRepository) SaveReport(ctx context.Context, report models.ArchivedReport) error {
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert summary report: %w", err)
	}
	return nil
}

// LatestReports returns up to limit archived summaries, newest first.
func (r *MongoDBRepository) LatestReports(ctx context.Context, limit int64) ([]models.ArchivedReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary reports: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ArchivedReport
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode summary reports: %w", err)
	}
	return out, nil
}

// Name identifies the archive as a report publisher.
func (r *MongoDBRepository) Name() string { return "mongodb" }

// Publish archives report with the current time as its creation stamp.
func (r *MongoDBRepository) Publish(ctx context.Context, report models.Report) error {
	return r.SaveReport(ctx, report.Archive(r.now().UTC()))
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
