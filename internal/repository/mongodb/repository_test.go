package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

func newTestRepository(mt *mtest.T, now time.Time) *MongoDBRepository {
	return &MongoDBRepository{
		client:   mt.Client,
		dbName:   mt.DB.Name(),
		collName: mt.Coll.Name(),
		now:      func() time.Time { return now },
	}
}

func TestPublishArchivesReport(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		now := time.Date(2024, time.January, 15, 20, 0, 0, 0, time.UTC)
		repo := newTestRepository(mt, now)
		assert.Equal(t, "mongodb", repo.Name())

		report := models.Report{
			Start: models.MustParseDate("2024-01-15"),
			End:   models.MustParseDate("2024-01-15"),
			Count: 1,
			Total: decimal.RequireFromString("1500"),
			Products: []models.ProductSummary{
				{Product: "Laptop", Quantity: 1, Total: decimal.RequireFromString("1500")},
			},
		}
		require.NoError(t, repo.Publish(context.Background(), report))
	})

	mt.Run("insert failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		repo := newTestRepository(mt, time.Now())
		err := repo.SaveReport(context.Background(), models.ArchivedReport{Start: "2024-01-15"})
		require.Error(t, err)
		assert.True(t, mongo.IsDuplicateKeyError(err))
	})
}

func TestLatestReports(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes newest first", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		created := time.Date(2024, time.January, 16, 20, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "start", Value: "2024-01-16"},
				{Key: "end", Value: "2024-01-16"},
				{Key: "count", Value: 2},
				{Key: "total", Value: "300.5"},
				{Key: "products", Value: bson.A{
					bson.D{{Key: "product", Value: "Mouse"}, {Key: "quantity", Value: 2}, {Key: "total", Value: "300.5"}},
				}},
				{Key: "created_at", Value: created},
			},
			bson.D{
				{Key: "start", Value: "2024-01-15"},
				{Key: "end", Value: "2024-01-15"},
				{Key: "count", Value: 0},
				{Key: "total", Value: "0"},
				{Key: "products", Value: bson.A{}},
				{Key: "created_at", Value: created.AddDate(0, 0, -1)},
			},
		))

		repo := newTestRepository(mt, time.Now())
		reports, err := repo.LatestReports(context.Background(), 30)
		require.NoError(t, err)
		require.Len(t, reports, 2)

		assert.Equal(t, "2024-01-16", reports[0].Start)
		assert.Equal(t, "300.5", reports[0].Total)
		require.Len(t, reports[0].Products, 1)
		assert.Equal(t, "Mouse", reports[0].Products[0].Product)
		assert.True(t, created.Equal(reports[0].CreatedAt))
		assert.Equal(t, "2024-01-15", reports[1].Start)
	})

	mt.Run("query failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
			Name:    "BadValue",
		}))

		repo := newTestRepository(mt, time.Now())
		_, err := repo.LatestReports(context.Background(), 30)
		assert.ErrorContains(t, err, "failed to query summary reports")
	})
}
