// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package catalog

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/recommend"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig configures the MongoDB catalog provider.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoProvider reads the catalog straight from a MongoDB collection.
type MongoProvider struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
	logger     zerolog.Logger
}

// bsonMovie mirrors movieDocument for BSON. Numeric fields and genres stay
// raw so that strings and mixed types decode leniently.
type bsonMovie struct {
	ID      bson.RawValue `bson:"_id"`
	Title   string        `bson:"title"`
	Genres  bson.RawValue `bson:"genres"`
	Plot    string        `bson:"plot"`
	Poster  string        `bson:"poster"`
	Runtime bson.RawValue `bson:"runtime"`
	Year    bson.RawValue `bson:"year"`
	IMDb    struct {
		Rating bson.RawValue `bson:"rating"`
	} `bson:"imdb"`
}

// catalogProjection limits the fetched fields to those the engine uses.
var catalogProjection = bson.D{
	{Key: "title", Value: 1},
	{Key: "genres", Value: 1},
	{Key: "plot", Value: 1},
	{Key: "poster", Value: 1},
	{Key: "runtime", Value: 1},
	{Key: "year", Value: 1},
	{Key: "imdb.rating", Value: 1},
}

// NewMongoProvider connects to MongoDB. Call Close to release the client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewMongoProvider(ctx context.Context, cfg MongoConfig, logger zerolog.Logger) (*MongoProvider, error) {
	if cfg.URI == "" || cfg.Database == "" || cfg.Collection == "" {
		return nil, fmt.Errorf("catalog: mongo uri, database and collection are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetAppName("reelrank"))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	return &MongoProvider{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		timeout:    cfg.Timeout,
		logger:     logger.With().Str("component", "catalog_mongo").Logger(),
	}, nil
}

// FetchCatalog reads every document sorted by _id so catalog order is stable.
func (p *MongoProvider) FetchCatalog(ctx context.Context) (recommend.Catalog, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(catalogProjection)

	cursor, err := p.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find movies: %w", recommend.ErrCatalogUnavailable, err)
	}

	var docs []bsonMovie
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: read movies: %w", recommend.ErrCatalogUnavailable, err)
	}

	items := make(recommend.Catalog, len(docs))
	for i := range docs {
		items[i] = docs[i].toItem()
	}
	p.logger.Debug().Int("items", len(items)).Msg("Catalog fetched")
	return items, nil
}

// Ping checks that the primary is reachable.
func (p *MongoProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (p *MongoProvider) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}

func (m *bsonMovie) toItem() recommend.Item {
	return recommend.Item{
		ID:          rawID(m.ID),
		Title:       m.Title,
		Tags:        rawTags(m.Genres),
		Description: m.Plot,
		Rating:      rawNumber(m.IMDb.Rating).float(),
		Runtime:     rawNumber(m.Runtime).positiveInt(),
		Year:        rawNumber(m.Year).positiveInt(),
		Poster:      m.Poster,
	}
}

func rawID(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	if i, ok := v.Int32OK(); ok {
		return fmt.Sprint(i)
	}
	if i, ok := v.Int64OK(); ok {
		return fmt.Sprint(i)
	}
	return ""
}

func rawTags(v bson.RawValue) []string {
	tags := flexTags{}
	arr, ok := v.ArrayOK()
	if !ok {
		return tags
	}
	values, err := arr.Values()
	if err != nil {
		return tags
	}
	for _, elem := range values {
		if s, ok := elem.StringValueOK(); ok {
			tags = tags.add(s)
		}
	}
	return tags
}

func rawNumber(v bson.RawValue) flexNumber {
	if f, ok := v.DoubleOK(); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return flexNumber{}
		}
		return flexNumber{value: f, valid: true}
	}
	if i, ok := v.Int32OK(); ok {
		return flexNumber{value: float64(i), valid: true}
	}
	if i, ok := v.Int64OK(); ok {
		return flexNumber{value: float64(i), valid: true}
	}
	if s, ok := v.StringValueOK(); ok {
		var n flexNumber
		n.set(s)
		return n
	}
	return flexNumber{}
}
