package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cliplink/affiliate-system/internal/core/domain"
)

const linksCollection = "affiliate_links"

type LinkRepository struct {
	coll *mongo.Collection
}

func NewLinkRepository(db *mongo.Database) *LinkRepository {
	return &LinkRepository{coll: db.Collection(linksCollection)}
}

type mongoLink struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID        string             `bson:"owner_id"`
	VideoID        string             `bson:"video_id"`
	DestinationURL string             `bson:"destination_url"`
	Clicks         int                `bson:"clicks"`
	CreatedAt      int64              `bson:"created_at"`
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	createdAt := link.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := mongoLink{
		OwnerID:        link.OwnerID,
		VideoID:        link.VideoID,
		DestinationURL: link.DestinationURL,
		Clicks:         link.Clicks,
		CreatedAt:      createdAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert link: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainLink(doc), nil
}

func (r *LinkRepository) FindByID(ctx context.Context, id string) (*domain.AffiliateLink, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLinkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLink
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link: %w", err)
	}
	return toDomainLink(ml), nil
}

func (r *LinkRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.AffiliateLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find links by owner: %w", err)
	}
	defer cur.Close(ctx)

	links := []*domain.AffiliateLink{}
	for cur.Next(ctx) {
		var ml mongoLink
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode link: %w", err)
		}
		links = append(links, toDomainLink(ml))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

// IncrementClicks bumps the click counter in a single atomic update and
// returns the updated link.
func (r *LinkRepository) IncrementClicks(ctx context.Context, id string) (*domain.AffiliateLink, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLinkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLink
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"clicks": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ml)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("increment clicks: %w", err)
	}
	return toDomainLink(ml), nil
}

// EnsureIndexes creates the owner lookup index on the links collection.
func (r *LinkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomainLink(ml mongoLink) *domain.AffiliateLink {
	return &domain.AffiliateLink{
		ID:             ml.ID.Hex(),
		OwnerID:        ml.OwnerID,
		VideoID:        ml.VideoID,
		DestinationURL: ml.DestinationURL,
		Clicks:         ml.Clicks,
		CreatedAt:      unixToTime(ml.CreatedAt),
	}
}
