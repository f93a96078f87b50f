package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an id matches nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicateBrigade is returned when an active brigade with the same name
// already exists.
var ErrDuplicateBrigade = errors.New("brigade with this name already exists")

// Repository persists users and brigades.
type Repository struct {
	users    *mongo.Collection
	brigades *mongo.Collection
}

// NewRepository creates a repo over the two collections.
func NewRepository(users, brigades *mongo.Collection) *Repository {
	return &Repository{users: users, brigades: brigades}
}

// CreateUser inserts one user.
func (r *Repository) CreateUser(ctx context.Context, u User) (User, error) {
	u = TrimUser(u)
	if err := ValidateUser(u); err != nil {
		return User{}, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := r.users.InsertOne(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// CreateUsersBulk inserts users in one batch write. The batch is
// all-or-nothing per request: either every document lands or none do.
func (r *Repository) CreateUsersBulk(ctx context.Context, users []User) (int, error) {
	if len(users) == 0 {
		return 0, errors.New("no users to insert")
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		u = TrimUser(u)
		if err := ValidateUser(u); err != nil {
			return 0, err
		}
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		docs = append(docs, u)
	}
	res, err := r.users.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// ListUsers returns all users, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	cur, err := r.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user. Attendance records are not cascaded.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateBrigade inserts a brigade after checking the case-insensitive name
// uniqueness among active brigades.
func (r *Repository) CreateBrigade(ctx context.Context, b Brigade) (Brigade, error) {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	if b.Name == "" {
		return Brigade{}, errors.New("brigade name required")
	}

	existing, err := r.ListBrigades(ctx)
	if err != nil {
		return Brigade{}, err
	}
	if BrigadeExists(existing, b.Name) {
		return Brigade{}, ErrDuplicateBrigade
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.IsActive = true
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if _, err := r.brigades.InsertOne(ctx, b); err != nil {
		return Brigade{}, err
	}
	return b, nil
}

// ListBrigades returns all brigades, newest first.
func (r *Repository) ListBrigades(ctx context.Context) ([]Brigade, error) {
	cur, err := r.brigades.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var brigades []Brigade
	if err := cur.All(ctx, &brigades); err != nil {
		return nil, err
	}
	return brigades, nil
}

// DeleteBrigade removes a brigade. Users keep their free-text brigade name.
func (r *Repository) DeleteBrigade(ctx context.Context, id string) error {
	res, err := r.brigades.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
