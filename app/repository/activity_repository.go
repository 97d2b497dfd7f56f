package repository

import (
	"context"
	"time"

	"safegrowth-backend/app/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollection = "report_activities"

// ActivityRepository menyimpan jejak aktivitas laporan di MongoDB.
type ActivityRepository interface {
	// Record menyimpan 1 aktivitas. CreatedAt diisi otomatis jika kosong.
	Record(ctx context.Context, activity *model.ReportActivity) error

	// FindByReportID mengambil aktivitas 1 laporan, terbaru lebih dulu.
	FindByReportID(ctx context.Context, reportID uint) ([]model.ReportActivity, error)

	// CountByAction menghitung aktivitas per jenis aksi (agregasi $group).
	CountByAction(ctx context.Context) (map[string]int64, error)

	// Enabled false berarti MongoDB tidak dikonfigurasi.
	Enabled() bool
}

// NewActivityRepository membuat repository aktivitas. Jika mongoDB nil,
// dikembalikan implementasi no-op sehingga service tidak perlu cek nil.
func NewActivityRepository(mongoDB *mongo.Database) ActivityRepository {
	if mongoDB == nil {
		return noopActivityRepository{}
	}
	return &activityRepository{mongo: mongoDB}
}

type activityRepository struct {
	mongo *mongo.Database
}

func (r *activityRepository) Enabled() bool { return true }

func (r *activityRepository) Record(ctx context.Context, activity *model.ReportActivity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	_, err := r.mongo.Collection(activityCollection).InsertOne(ctx, activity)
	return err
}

func (r *activityRepository) FindByReportID(ctx context.Context, reportID uint) ([]model.ReportActivity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.mongo.Collection(activityCollection).Find(ctx, bson.M{"reportId": reportID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	activities := []model.ReportActivity{}
	if err := cur.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) CountByAction(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$action",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.mongo.Collection(activityCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	result := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.ID == "" {
			row.ID = "unknown"
		}
		result[row.ID] = row.Count
	}
	return result, cur.Err()
}

type noopActivityRepository struct{}

func (noopActivityRepository) Enabled() bool { return false }

func (noopActivityRepository) Record(context.Context, *model.ReportActivity) error { return nil }

func (noopActivityRepository) FindByReportID(context.Context, uint) ([]model.ReportActivity, error) {
	return []model.ReportActivity{}, nil
}

func (noopActivityRepository) CountByAction(context.Context) (map[string]int64, error) {
	return nil, nil
}
