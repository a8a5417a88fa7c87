package media

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Asset is the Mongo representation for an uploaded media object. The object
// itself lives in MinIO; this record makes the media library listable.
type Asset struct {
	Key         string    `bson:"key" json:"key"`
	URL         string    `bson:"url" json:"url"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	UploadedBy  string    `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Store persists upload metadata. A nil Store is a valid no-op, so callers
// without Mongo can skip the wiring entirely.
type Store struct {
	col *mongo.Collection
}

func NewStore(col *mongo.Collection) *Store {
	return &Store{col: col}
}

// Save upserts the asset record by object key
func (s *Store) Save(ctx context.Context, a *Asset) error {
	if s == nil {
		return nil
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.col.UpdateOne(ctx, bson.M{"key": a.Key}, bson.M{"$set": a}, opts)
	return err
}

// List returns the newest assets first, capped at limit
func (s *Store) List(ctx context.Context, limit int64) ([]*Asset, error) {
	if s == nil {
		return []*Asset{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Asset{}
	for cur.Next(ctx) {
		var a Asset
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}
