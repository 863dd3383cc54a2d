package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/metrics"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// DefaultIndexBatchSize is the number of reviews embedded and upserted together.
const DefaultIndexBatchSize = 100

// ErrEmptyQuery is returned for a blank search text.
var ErrEmptyQuery = errors.New("search query is empty")

// ReviewIndexService embeds review comments into the vector index and
// searches them by meaning.
type ReviewIndexService struct {
	embedder  ports.Embedder
	vectorDB  ports.VectorDB
	db        ports.RelationalDB
	batchSize int
}

// NewReviewIndexService creates a new review index service.
func NewReviewIndexService(embedder ports.Embedder, vectorDB ports.VectorDB, db ports.RelationalDB) *ReviewIndexService {
	return &ReviewIndexService{
		embedder:  embedder,
		vectorDB:  vectorDB,
		db:        db,
		batchSize: DefaultIndexBatchSize,
	}
}

// WithBatchSize sets the number of reviews indexed per round trip.
func (s *ReviewIndexService) WithBatchSize(n int) *ReviewIndexService {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// IndexAll embeds every stored review and upserts it into the vector index.
// It returns the number of reviews indexed.
func (s *ReviewIndexService) IndexAll(ctx context.Context) (int, error) {
	indexed := 0
	for offset := 0; ; offset += s.batchSize {
		batch, err := s.db.ListReviews(ctx, s.batchSize, offset)
		if err != nil {
			return indexed, fmt.Errorf("listing reviews: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		if err := s.Index(ctx, batch); err != nil {
			return indexed, err
		}
		indexed += len(batch)

		logging.Ctx(ctx).Debug().Int("indexed", indexed).Msg("Indexed review batch")

		if len(batch) < s.batchSize {
			break
		}
	}
	return indexed, nil
}

// Index embeds the comments of reviews and stores them in the vector index.
func (s *ReviewIndexService) Index(ctx context.Context, reviews []entities.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	texts := make([]string, len(reviews))
	for i := range reviews {
		texts[i] = reviews[i].Comment
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(reviews) {
		return fmt.Errorf("expected %d embeddings, got %d", len(reviews), len(embeddings))
	}

	withVectors := make([]entities.Review, len(reviews))
	copy(withVectors, reviews)
	for i := range withVectors {
		withVectors[i].Embedding = embeddings[i]
	}

	if err := s.vectorDB.SaveBatch(ctx, withVectors); err != nil {
		return fmt.Errorf("indexing reviews: %w", err)
	}
	metrics.ReviewsIndexed.Add(float64(len(withVectors)))
	return nil
}

// Search finds reviews semantically similar to the query. A gameID of 0 searches all games.
func (s *ReviewIndexService) Search(ctx context.Context, query string, gameID int64, limit int) ([]entities.Review, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	var reviews []entities.Review
	if gameID != 0 {
		reviews, err = s.vectorDB.SearchByGame(ctx, embedding, gameID, limit)
	} else {
		reviews, err = s.vectorDB.Search(ctx, embedding, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("searching reviews: %w", err)
	}
	if reviews == nil {
		reviews = []entities.Review{}
	}

	return reviews, nil
}

// Count returns the number of indexed reviews.
func (s *ReviewIndexService) Count(ctx context.Context) (uint64, error) {
	n, err := s.vectorDB.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting indexed reviews: %w", err)
	}
	return n, nil
}
