package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo wraps the document store client and exposes the named collections.
type Mongo struct {
	Client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to MongoDB and verifies the connection with a short ping.
func NewMongo(uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return &Mongo{Client: client, db: client.Database(database)}, nil
}

// Events returns the events collection.
func (m *Mongo) Events() *mongo.Collection { return m.db.Collection("events") }

// Users returns the users collection.
func (m *Mongo) Users() *mongo.Collection { return m.db.Collection("users") }

// Brigades returns the brigades collection.
func (m *Mongo) Brigades() *mongo.Collection { return m.db.Collection("brigades") }

// Attendance returns the attendance collection.
func (m *Mongo) Attendance() *mongo.Collection { return m.db.Collection("attendance") }

// Healthy verifies connectivity.
func (m *Mongo) Healthy(ctx context.Context) bool {
	if m == nil || m.Client == nil {
		return false
	}
	return m.Client.Ping(ctx, readpref.Primary()) == nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
