package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brigadeattend/internal/session"
)

// Repository persists attendance records in the attendance collection.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a repo.
func NewRepository(col *mongo.Collection) *Repository {
	return &Repository{col: col}
}

// tupleFilter matches a record by natural key. Stored eventDate values may
// carry a time of day, so the date match is a day range in the fixed zone.
func tupleFilter(key TupleKey) bson.M {
	dayStart := session.DayStart(key.EventDate)
	return bson.M{
		"eventId":     key.EventID,
		"userId":      key.UserID,
		"sessionType": key.SessionType,
		"eventDate":   bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)},
	}
}

// Upsert writes the record for a tuple, creating it on first mark and
// mutating isPresent on subsequent marks. The single conditional write keyed
// by the tuple is what prevents concurrent markers from creating duplicates.
// Reports whether a new record was created.
func (r *Repository) Upsert(ctx context.Context, key TupleKey, isPresent bool, markedBy string, markedAt time.Time) (Record, bool, error) {
	update := bson.M{
		"$set": bson.M{
			"isPresent": isPresent,
			"markedAt":  markedAt,
		},
		"$setOnInsert": bson.M{
			"_id":         uuid.NewString(),
			"eventId":     key.EventID,
			"eventDate":   session.DayStart(key.EventDate),
			"userId":      key.UserID,
			"sessionType": key.SessionType,
			"markedBy":    markedBy,
		},
	}
	res, err := r.col.UpdateOne(ctx, tupleFilter(key), update, options.Update().SetUpsert(true))
	if err != nil {
		return Record{}, false, err
	}

	var rec Record
	if err := r.col.FindOne(ctx, tupleFilter(key)).Decode(&rec); err != nil {
		return Record{}, false, err
	}
	return rec, res.UpsertedCount > 0, nil
}

// ListByEvent returns records for one event, newest mark first.
func (r *Repository) ListByEvent(ctx context.Context, eventID string) ([]Record, error) {
	return r.list(ctx, bson.M{"eventId": eventID})
}

// ListAll returns every record, newest mark first.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	return r.list(ctx, bson.M{})
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]Record, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "markedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes records by id and returns how many went away.
func (r *Repository) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByEvent removes all records of an event.
func (r *Repository) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountPresent counts present marks for one session of one event day.
func (r *Repository) CountPresent(ctx context.Context, eventID string, date time.Time, st SessionType) (int64, error) {
	if !st.Valid() {
		return 0, errors.New("invalid session type")
	}
	filter := tupleFilter(TupleKey{EventID: eventID, EventDate: date, SessionType: st})
	delete(filter, "userId")
	filter["isPresent"] = true
	return r.col.CountDocuments(ctx, filter)
}
