package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "clinicbook/internal/bookings/errors"
	"clinicbook/pkg/config"
	"clinicbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName      = "Bookings"
	UsersCollectionName = "Users"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	TakenSlotTimes(ctx context.Context, from, to time.Time) (map[string]struct{}, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	FindAllWithPatients(ctx context.Context, limit int, offset int64) ([]*model.AdminBooking, error)
	Count(ctx context.Context) (int64, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// Create inserts a booking. The unique index on slot_start_time is the sole
// concurrency control: when two requests race for the same slot, whichever
// insert the storage layer applies first wins and the loser gets
// ErrDuplicateSlot. No lock or reservation step precedes the insert.
func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

// TakenSlotTimes returns the set of slot_start_time values already booked
// in [from, to). Canonical slot strings are fixed-width ISO-8601 UTC, so
// lexicographic range comparison matches chronological order.
func (r *mongoBookingRepository) TakenSlotTimes(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"slot_start_time": bson.M{
			"$gte": model.FormatSlotTime(from),
			"$lt":  model.FormatSlotTime(to),
		},
	}
	opts := options.Find().SetProjection(bson.M{"slot_start_time": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	taken := make(map[string]struct{})
	for cursor.Next(ctx) {
		var row struct {
			SlotStartTime string `bson:"slot_start_time"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode booked slot: %w", err)
		}
		taken[row.SlotStartTime] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booked slots: %w", err)
	}

	return taken, nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "slot_start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// FindAllWithPatients joins each booking with its owning patient's name and
// email for the administrator listing, ascending by slot start time.
func (r *mongoBookingRepository) FindAllWithPatients(ctx context.Context, limit int, offset int64) ([]*model.AdminBooking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "slot_start_time", Value: 1}}}},
		{{Key: "$skip", Value: offset}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.M{
			"from": UsersCollectionName,
			"let":  bson.M{"uid": bson.M{"$toObjectId": "$user_id"}},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{
					"$expr": bson.M{"$eq": bson.A{"$_id", "$$uid"}},
				}}},
			},
			"as": "patient",
		}}},
		{{Key: "$unwind", Value: "$patient"}},
		{{Key: "$project", Value: bson.M{
			"slot_start_time": 1,
			"created_at":      1,
			"patient_name":    "$patient.name",
			"patient_email":   "$patient.email",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings with patients: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.AdminBooking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode admin bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}
