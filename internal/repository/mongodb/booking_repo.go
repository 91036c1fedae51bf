package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventbooking/internal/domain"
)

type bookingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"eventId"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *bookingDocument) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:        d.ID.Hex(),
		EventID:   d.EventID.Hex(),
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type bookingRepository struct {
	conn Connector
}

func NewBookingRepository(conn Connector) domain.BookingRepository {
	return &bookingRepository{conn: conn}
}

func (r *bookingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	c, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c.DB.Collection(bookingsCollection), nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	eventID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return domain.NewValidationError("eventId", "eventId must be a valid ObjectId")
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	doc := &bookingDocument{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return mapWriteError(bookingsCollection, eventEmailIndex, err)
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	id, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	eventID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return domain.NewValidationError("eventId", "eventId must be a valid ObjectId")
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"eventId":   eventID,
		"email":     b.Email,
		"updatedAt": b.UpdatedAt,
	}}
	res, err := coll.UpdateByID(ctx, id, update)
	if err != nil {
		return mapWriteError(bookingsCollection, eventEmailIndex, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var doc bookingDocument
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return []*domain.Booking{}, nil
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.M{"eventId": oid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	bookings := make([]*domain.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, docs[i].toDomain())
	}
	return bookings, nil
}
