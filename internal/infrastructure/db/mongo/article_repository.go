package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

const collectionArticles = "articles"

// titleCollation makes title ordering case-insensitive on the server.
var titleCollation = options.Collation{Locale: "es", Strength: 2}

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

type mongoArticle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Category     string             `bson:"category"`
	Content      string             `bson:"content"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty"`
	OwnerID      string             `bson:"owner_id"`
	AuthorName   string             `bson:"author_name"`
	AuthorEmail  string             `bson:"author_email,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toDomain(m *mongoArticle) *domain.Article {
	return &domain.Article{
		ID:           m.ID.Hex(),
		Title:        m.Title,
		Category:     domain.Category(m.Category),
		Content:      m.Content,
		ThumbnailURL: m.ThumbnailURL,
		OwnerID:      m.OwnerID,
		AuthorName:   m.AuthorName,
		AuthorEmail:  m.AuthorEmail,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomain(a *domain.Article) *mongoArticle {
	return &mongoArticle{
		Title:        a.Title,
		Category:     string(a.Category),
		Content:      a.Content,
		ThumbnailURL: a.ThumbnailURL,
		OwnerID:      a.OwnerID,
		AuthorName:   a.AuthorName,
		AuthorEmail:  a.AuthorEmail,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// Create inserts a new article document and returns the assigned id.
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomain(a))
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (r *ArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	var m mongoArticle
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return toDomain(&m), nil
}

// Update replaces the mutable fields of an existing article. The owner_id
// field is deliberately not part of the update document.
func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":         a.Title,
		"category":      string(a.Category),
		"content":       a.Content,
		"thumbnail_url": a.ThumbnailURL,
		"updated_at":    a.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// List returns articles matching the filter, ordered by title ascending with
// case-insensitive collation.
func (r *ArticleRepository) List(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetCollation(&titleCollation)

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var articles []*domain.Article
	for cur.Next(ctx) {
		var m mongoArticle
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		articles = append(articles, toDomain(&m))
	}
	return articles, cur.Err()
}

// EnsureIndexes creates the indexes the list queries rely on.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
