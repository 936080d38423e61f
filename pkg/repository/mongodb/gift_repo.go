package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/giftlink/giftlink-backend/pkg/gifts"
)

// GiftRepository implements gifts.Repository backed by a MongoDB gifts
// collection.
type GiftRepository struct {
	gifts *mongo.Collection
}

func NewGiftRepository(db *mongo.Database) (*GiftRepository, error) {
	repo := &GiftRepository{gifts: db.Collection("gifts")}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *GiftRepository) ensureIndexes(ctx context.Context) error {
	// Listing and search both sort newest-first.
	_, err := r.gifts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postedAt", Value: -1}},
	})
	return err
}

type giftDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Category    string    `bson:"category"`
	Condition   string    `bson:"condition"`
	AgeYears    int       `bson:"ageYears"`
	Description string    `bson:"description"`
	PostedBy    string    `bson:"postedBy,omitempty"`
	PostedAt    time.Time `bson:"postedAt"`
}

func (r *GiftRepository) Create(ctx context.Context, g gifts.Gift) (gifts.Gift, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.PostedAt.IsZero() {
		g.PostedAt = time.Now().UTC()
	}

	doc := giftDocument{
		ID:          g.ID.String(),
		Name:        g.Name,
		Category:    strings.ToLower(g.Category),
		Condition:   strings.ToLower(g.Condition),
		AgeYears:    g.AgeYears,
		Description: g.Description,
		PostedAt:    g.PostedAt,
	}
	if g.PostedBy != uuid.Nil {
		doc.PostedBy = g.PostedBy.String()
	}
	if _, err := r.gifts.InsertOne(ctx, doc); err != nil {
		return gifts.Gift{}, err
	}
	return g, nil
}

func (r *GiftRepository) GetByID(ctx context.Context, id uuid.UUID) (gifts.Gift, error) {
	var doc giftDocument
	err := r.gifts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return gifts.Gift{}, gifts.ErrNotFound
		}
		return gifts.Gift{}, err
	}
	return doc.toGift()
}

func (r *GiftRepository) List(ctx context.Context, limit, offset int) ([]gifts.Gift, error) {
	return r.find(ctx, bson.M{}, limit, offset)
}

func (r *GiftRepository) Search(ctx context.Context, f gifts.Filter, limit, offset int) ([]gifts.Gift, error) {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Name), Options: "i"}
	}
	if f.Category != "" {
		filter["category"] = strings.ToLower(f.Category)
	}
	if f.Condition != "" {
		filter["condition"] = strings.ToLower(f.Condition)
	}
	if f.MaxAgeYears > 0 {
		filter["ageYears"] = bson.M{"$lte": f.MaxAgeYears}
	}
	return r.find(ctx, filter, limit, offset)
}

func (r *GiftRepository) find(ctx context.Context, filter bson.M, limit, offset int) ([]gifts.Gift, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "postedAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.gifts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var res []gifts.Gift
	for cursor.Next(ctx) {
		var doc giftDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		g, err := doc.toGift()
		if err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, cursor.Err()
}

func (d giftDocument) toGift() (gifts.Gift, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return gifts.Gift{}, fmt.Errorf("corrupt gift id %q: %w", d.ID, err)
	}
	g := gifts.Gift{
		ID:          id,
		Name:        d.Name,
		Category:    d.Category,
		Condition:   d.Condition,
		AgeYears:    d.AgeYears,
		Description: d.Description,
		PostedAt:    d.PostedAt.UTC(),
	}
	if d.PostedBy != "" {
		if poster, err := uuid.Parse(d.PostedBy); err == nil {
			g.PostedBy = poster
		}
	}
	return g, nil
}
