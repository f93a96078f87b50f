package event

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

// ErrNotFound is returned when an event id matches nothing.
var ErrNotFound = errors.New("event not found")

// Repository persists events in the events collection.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a repo.
func NewRepository(col *mongo.Collection) *Repository {
	return &Repository{col: col}
}

// Create inserts a new event and returns it with id and creation time set.
func (r *Repository) Create(ctx context.Context, ev Event) (Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Get returns a single event by id.
func (r *Repository) Get(ctx context.Context, id string) (Event, error) {
	var ev Event
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return ev, nil
}

// List returns all events, newest first.
func (r *Repository) List(ctx context.Context) ([]Event, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateName renames an event.
func (r *Repository) UpdateName(ctx context.Context, id, name string) error {
	if name == "" {
		return errors.New("event name required")
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSession replaces the window configuration of one session of one event
// day. The positional update keys on the day's calendar date.
func (r *Repository) UpdateSession(ctx context.Context, id string, date time.Time, sessionType string, s Session) error {
	field, err := sessionField(sessionType)
	if err != nil {
		return err
	}
	dayStart := session.DayStart(date)
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "days.date": bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)}},
		bson.M{"$set": bson.M{
			"days.$." + field + ".isActive":  s.IsActive,
			"days.$." + field + ".startTime": s.StartTime,
			"days.$." + field + ".endTime":   s.EndTime,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAttendanceCount writes the denormalized present count for one session of
// one event day.
func (r *Repository) SetAttendanceCount(ctx context.Context, id string, date time.Time, sessionType string, count int) error {
	field, err := sessionField(sessionType)
	if err != nil {
		return err
	}
	dayStart := session.DayStart(date)
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "days.date": bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)}},
		bson.M{"$set": bson.M{"days.$." + field + ".attendanceCount": count}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event. Dependent attendance records are not cascaded;
// reads filter orphans out.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func sessionField(sessionType string) (string, error) {
	switch sessionType {
	case "FN":
		return "fnSession", nil
	case "AN":
		return "anSession", nil
	}
	return "", errors.New("session type must be FN or AN")
}
