package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

const collectionSync = "attendance_sync"

// syncDocument mirrors one ledger write.
type syncDocument struct {
	EventID    string    `bson:"event_id"`
	Kind       string    `bson:"kind"`
	LogID      uint      `bson:"log_id"`
	Identifier string    `bson:"identifier"`
	Name       string    `bson:"name"`
	Date       string    `bson:"date"`
	At         time.Time `bson:"at"`
	SyncedAt   time.Time `bson:"synced_at"`
}

// SyncRepository is the external ledger mirror. It implements ports.LedgerSink.
type SyncRepository struct {
	col *mongo.Collection
}

func NewSyncRepository(db *mongo.Database) *SyncRepository {
	return &SyncRepository{col: db.Collection(collectionSync)}
}

var _ ports.LedgerSink = (*SyncRepository)(nil)

// Publish inserts the event. Redelivery of the same event_id is a no-op.
func (r *SyncRepository) Publish(ctx context.Context, event domain.LedgerEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, syncDocument{
		EventID:    event.EventID,
		Kind:       string(event.Kind),
		LogID:      event.LogID,
		Identifier: event.Identifier,
		Name:       event.Name,
		Date:       event.Date,
		At:         event.At.UTC(),
		SyncedAt:   time.Now().UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// EnsureIndexes creates the indexes of the sync collection.
func (r *SyncRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "identifier", Value: 1}, {Key: "date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
