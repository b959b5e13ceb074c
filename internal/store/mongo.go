package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jerseyorders/internal/models"
)

// Mongo is the remote-synced backend on top of a document store.
type Mongo struct {
	orders *mongo.Collection
}

var _ Store = (*Mongo)(nil)

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{orders: db.Collection("orders")}
}

func (s *Mongo) Create(ctx context.Context, o models.Order) (models.Order, error) {
	o.ID = models.NewOrderID()
	o.Status = models.StatusPending
	o.CreatedDate = time.Now()

	if _, err := s.orders.InsertOne(ctx, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Mongo) Get(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Mongo) Update(ctx context.Context, id string, p Patch) (models.Order, error) {
	set := bson.M{}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.ApprovedDate != nil {
		set["approvedDate"] = *p.ApprovedDate
	}
	if p.RejectedDate != nil {
		set["rejectedDate"] = *p.RejectedDate
	}
	if p.DetailsSubmittedDate != nil {
		set["detailsSubmittedDate"] = *p.DetailsSubmittedDate
	}
	if p.CustomerDetails != nil {
		set["customerDetails"] = p.CustomerDetails
	}
	if p.UniqueLink != nil {
		set["uniqueLink"] = *p.UniqueLink
	}
	if p.ShortLink != nil {
		set["shortLink"] = *p.ShortLink
	}
	if p.Notifications != nil {
		set["notifications"] = p.Notifications
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	after := options.After
	var o models.Order
	err := s.orders.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Mongo) List(ctx context.Context, f Filter) ([]models.Order, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if term := f.Search; term != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"_id": regex},
			bson.M{"customerName": regex},
			bson.M{"customerEmail": regex},
			bson.M{"customerPhone": regex},
		}
	}
	if cutoff, ok := dateRangeCutoff(f.DateRange, time.Now()); ok {
		filter["createdDate"] = bson.M{"$gte": cutoff}
	}
	if f.HasDetails != nil {
		filter["customerDetails.0"] = bson.M{"$exists": *f.HasDetails}
	}

	cursor, err := s.orders.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Mongo) Delete(ctx context.Context, id string) error {
	res, err := s.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func dateRangeCutoff(bucket string, now time.Time) (time.Time, bool) {
	switch bucket {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.Add(-7 * 24 * time.Hour), true
	case "month":
		return now.Add(-30 * 24 * time.Hour), true
	case "year":
		return now.Add(-365 * 24 * time.Hour), true
	}
	return time.Time{}, false
}

