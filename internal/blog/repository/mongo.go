package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/soulbrew/blog-services/internal/blog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository over the hosted document store. Posts carry
// an "id" string field as the document key and a unique "slug" for lookups.
type MongoRepo struct {
	posts      *mongo.Collection
	categories *mongo.Collection
}

// NewMongoRepo wires the posts and categories collections and ensures the
// lookup indexes exist (idempotent).
func NewMongoRepo(posts, categories *mongo.Collection) *MongoRepo {
	idIdx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	slugIdx := mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)}
	posts.Indexes().CreateMany(context.Background(), []mongo.IndexModel{idIdx, slugIdx})
	return &MongoRepo{posts: posts, categories: categories}
}

func (r *MongoRepo) GetAllPosts(ctx context.Context) ([]*blog.Post, error) {
	// fetch in creation order so the date sort's tie-break is stable
	cur, err := r.posts.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*blog.Post{}
	for cur.Next(ctx) {
		var p blog.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		p.Normalize()
		out = append(out, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *MongoRepo) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	var p blog.Post
	err := r.posts.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, blog.ErrNotFound
		}
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

func (r *MongoRepo) GetPostsByCategory(ctx context.Context, category string) ([]*blog.Post, error) {
	// category equality is case-insensitive, so filter after the fetch
	// rather than relying on collation support
	all, err := r.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCategory(all, category), nil
}

func (r *MongoRepo) SavePost(ctx context.Context, p *blog.Post, isNew bool) (*blog.Post, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()

	now := time.Now().UTC()
	if isNew {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	filter := bson.M{"id": p.ID}
	set := bson.M{
		"id":         p.ID,
		"slug":       p.Slug,
		"title":      p.Title,
		"excerpt":    p.Excerpt,
		"content":    p.Content,
		"date":       p.Date,
		"author":     p.Author,
		"image":      p.Image,
		"categories": p.Categories,
		"tags":       p.Tags,
		"updatedAt":  p.UpdatedAt,
	}
	update := bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": now}}
	if isNew {
		set["createdAt"] = p.CreatedAt
		update = bson.M{"$set": set}
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.posts.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoRepo) DeletePost(ctx context.Context, id string) error {
	// zero deletions is fine: removing a missing id is a no-op
	_, err := r.posts.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *MongoRepo) SaveCategory(ctx context.Context, name string) error {
	filter := bson.M{"name": name}
	update := bson.M{"$set": bson.M{"name": name}, "$setOnInsert": bson.M{"createdAt": time.Now().UTC()}}
	_, err := r.categories.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoRepo) ListCategories(ctx context.Context) ([]blog.Category, error) {
	cur, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []blog.Category{}
	for cur.Next(ctx) {
		var c blog.Category
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}
