package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pagebuilder/internal/domain"
)

// DefaultCollection is the MongoDB collection used when none is configured.
const DefaultCollection = "pages"

// mongoPage is the stored document. The page tree is kept as a JSON string
// so component props round-trip through the same decoder as the SQL stores.
type mongoPage struct {
	ID         string    `bson:"_id"`
	Slug       string    `bson:"slug"`
	Lang       string    `bson:"lang"`
	Title      string    `bson:"title"`
	SchemaJSON string    `bson:"schemaJson"`
	Version    int       `bson:"version"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

// MongoPageStore persists pages in a MongoDB collection, one document per
// slug and language.
type MongoPageStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoPageStore connects to uri and uses database/collection.
func NewMongoPageStore(ctx context.Context, uri, database, collection string) (*MongoPageStore, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	log.Printf("[STORE] connecting to mongo %s", maskURI(uri))
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoPageStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func mongoID(slug, lang string) string {
	return domain.PageKey{Slug: slug, Lang: lang}.String()
}

func (s *MongoPageStore) Load(ctx context.Context, slug, lang string) (*domain.PageRecord, error) {
	var doc mongoPage
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: mongoID(slug, lang)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	page, err := decodePage(doc.SchemaJSON)
	if err != nil {
		return nil, err
	}
	return &domain.PageRecord{
		Slug:      doc.Slug,
		Lang:      doc.Lang,
		Title:     doc.Title,
		Page:      page,
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// Save bumps the version with an atomic $inc upsert, so the first save
// yields version 1.
func (s *MongoPageStore) Save(ctx context.Context, slug, lang string, page *domain.Page) (*domain.PageRecord, error) {
	raw, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("marshal page: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Millisecond)

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc mongoPage
	err = s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: mongoID(slug, lang)}},
		savePageUpdate(slug, lang, page.Title, string(raw), now),
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("save page: %w", err)
	}
	return &domain.PageRecord{
		Slug:      slug,
		Lang:      lang,
		Title:     doc.Title,
		Page:      page,
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// ListPages returns the stored pages whose slug or title contains keyword,
// case insensitively.
func (s *MongoPageStore) ListPages(ctx context.Context, keyword string) ([]domain.PageSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "slug", Value: 1}, {Key: "lang", Value: 1}}).
		SetProjection(bson.D{{Key: "schemaJson", Value: 0}})
	cur, err := s.coll.Find(ctx, listPagesFilter(keyword), opts)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	var docs []mongoPage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode pages: %w", err)
	}
	out := make([]domain.PageSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.PageSummary{
			Slug:      d.Slug,
			Lang:      d.Lang,
			Title:     d.Title,
			Version:   d.Version,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return out, nil
}

func listPagesFilter(keyword string) bson.D {
	if keyword == "" {
		return bson.D{}
	}
	re := bson.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "slug", Value: re}},
		bson.D{{Key: "title", Value: re}},
	}}}
}

func savePageUpdate(slug, lang, title, schemaJSON string, now time.Time) bson.D {
	return bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "slug", Value: slug},
			{Key: "lang", Value: lang},
			{Key: "title", Value: title},
			{Key: "schemaJson", Value: schemaJSON},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}
}

// Close disconnects the client.
func (s *MongoPageStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
