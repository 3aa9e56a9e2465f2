// Package mongo provides a DocumentStore over a MongoDB collection of papers.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.PaperWriter   = (*Store)(nil)
)

const (
	// DefaultCollection holds one document per paper.
	DefaultCollection = "paper"

	closeTimeout = 5 * time.Second

	fieldID      = "paper_id"
	fieldPDFURL  = "pdf_url"
	fieldSummary = "ai_generated_summary"
)

// paperDoc is the stored document shape.
type paperDoc struct {
	PaperID string  `bson:"paper_id"`
	PDFURL  string  `bson:"pdf_url"`
	Summary *string `bson:"ai_generated_summary,omitempty"`
}

// Store reads and writes papers in one collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewStore connects, pings and binds to database.collection.
func NewStore(ctx context.Context, uri, database, collection string) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		return nil, errors.New("mongo database name is required")
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// SelectPending returns papers whose summary is missing or null.
// In MongoDB a null equality filter matches both.
func (s *Store) SelectPending(ctx context.Context) ([]domain.Paper, error) {
	return s.find(ctx, pendingFilter())
}

// SelectByID returns the matching paper, or an empty slice.
func (s *Store) SelectByID(ctx context.Context, id string) ([]domain.Paper, error) {
	return s.find(ctx, bson.M{fieldID: id})
}

// UpdateSummary sets the summary of one paper.
func (s *Store) UpdateSummary(ctx context.Context, id, summary string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{fieldID: id},
		bson.M{"$set": bson.M{fieldSummary: summary}},
	)
	if err != nil {
		return fmt.Errorf("updating summary for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("paper %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AddPaper upserts a paper by ID without touching an existing summary.
func (s *Store) AddPaper(ctx context.Context, paper domain.Paper) error {
	if paper.ID == "" {
		return domain.ErrMissingIdentifier
	}
	update := bson.M{"$set": bson.M{fieldPDFURL: paper.PDFURL}}
	if paper.Summary != nil {
		update["$setOnInsert"] = bson.M{fieldSummary: *paper.Summary}
	}
	_, err := s.collection.UpdateOne(ctx,
		bson.M{fieldID: paper.ID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("adding paper %s: %w", paper.ID, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]domain.Paper, error) {
	cur, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("finding papers: %w", err)
	}
	var docs []paperDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding papers: %w", err)
	}
	return toPapers(docs), nil
}

func pendingFilter() bson.M {
	return bson.M{fieldSummary: nil}
}

func toPapers(docs []paperDoc) []domain.Paper {
	papers := make([]domain.Paper, 0, len(docs))
	for _, d := range docs {
		papers = append(papers, domain.Paper{ID: d.PaperID, PDFURL: d.PDFURL, Summary: d.Summary})
	}
	return papers
}
