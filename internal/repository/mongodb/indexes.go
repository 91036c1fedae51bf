package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"

	slugIndex         = "slug_1"
	eventEmailIndex   = "eventId_1_email_1"
	bookingEventIndex = "eventId_1"
)

// EnsureIndexes creates the unique indexes the record invariants rely on:
// events.slug and bookings.(eventId, email), plus bookings.eventId for listing.
// Even if two writes race past the application checks, the server rejects the duplicate.
func EnsureIndexes(ctx context.Context, conn Connector) error {
	c, err := conn.Acquire(ctx)
	if err != nil {
		return err
	}

	_, err = c.DB.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName(slugIndex).SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create events index: %w", err)
	}

	_, err = c.DB.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "eventId", Value: 1},
				{Key: "email", Value: 1},
			},
			Options: options.Index().SetName(eventEmailIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}},
			Options: options.Index().SetName(bookingEventIndex),
		},
	})
	if err != nil {
		return fmt.Errorf("create bookings indexes: %w", err)
	}
	return nil
}
