package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/domain/ports"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/metrics"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/parsers"
)

// reviewNamespace seeds generated review IDs so re-importing a file is idempotent.
var reviewNamespace = uuid.MustParse("0c3e8a52-6f7b-4d0e-b1a4-9d2f5e7c1a63")

// ConflictStrategy defines how to handle existing reviews during import.
type ConflictStrategy string

const (
	// ConflictSkip skips reviews that already exist (by ID).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing reviews with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing reviews
}

// ImportError represents an error for a specific review during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService imports classified reviews into the review store.
type ImportService struct {
	db ports.RelationalDB
}

// NewImportService creates a new import service.
func NewImportService(db ports.RelationalDB) *ImportService {
	return &ImportService{db: db}
}

// Import validates raw reviews and saves the valid ones.
func (s *ImportService) Import(ctx context.Context, raw []parsers.RawReview, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	reviews, errs := s.convert(raw)
	result.Errors = errs

	if len(reviews) == 0 {
		return result, nil
	}

	if opts.DryRun {
		result.Imported = len(reviews)
		return result, nil
	}

	imported, skipped, err := s.saveWithConflictHandling(ctx, reviews, opts.OnConflict)
	if err != nil {
		return nil, fmt.Errorf("saving reviews: %w", err)
	}
	result.Imported = imported
	result.Skipped = skipped

	metrics.ReviewsImported.Add(float64(imported))
	logging.Ctx(ctx).Info().
		Int("imported", imported).
		Int("skipped", skipped).
		Int("invalid", len(errs)).
		Msg("Reviews imported")

	return result, nil
}

// convert validates raw reviews and converts the valid ones to entities.
func (s *ImportService) convert(raw []parsers.RawReview) ([]entities.Review, []ImportError) {
	reviews := make([]entities.Review, 0, len(raw))
	var errs []ImportError
	now := time.Now()

	for i := range raw {
		r := &raw[i]
		lineNum := r.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		review, err := toReview(r, lineNum)
		if err != nil {
			errs = append(errs, *err)
			continue
		}
		review.CreatedAt = now
		reviews = append(reviews, review)
	}

	return reviews, errs
}

// toReview validates a single raw review.
func toReview(raw *parsers.RawReview, lineNum int) (entities.Review, *ImportError) {
	if raw.GameID <= 0 {
		return entities.Review{}, &ImportError{Line: lineNum, Field: "bgg_id", Message: "missing required field: bgg_id"}
	}
	comment := strings.TrimSpace(raw.Comment)
	if comment == "" {
		return entities.Review{}, &ImportError{Line: lineNum, Field: "comment", Message: "missing required field: comment"}
	}

	sentiment, err := entities.ParseSentiment(raw.Sentiment)
	if err != nil {
		return entities.Review{}, &ImportError{
			Line:    lineNum,
			Field:   "final_sentiment",
			Value:   raw.Sentiment,
			Message: err.Error(),
		}
	}

	var rating float64
	if raw.Rating != nil {
		rating = *raw.Rating
		if rating < 0 || rating > entities.MaxRatingTier {
			return entities.Review{}, &ImportError{
				Line:    lineNum,
				Field:   "rating",
				Value:   fmt.Sprintf("%g", rating),
				Message: "rating must be between 0 and 10",
			}
		}
	}

	if raw.LabelProba < 0 || raw.LabelProba > 1 {
		return entities.Review{}, &ImportError{
			Line:    lineNum,
			Field:   "label_proba",
			Value:   fmt.Sprintf("%g", raw.LabelProba),
			Message: "label_proba must be between 0 and 1",
		}
	}

	id := raw.ID
	if id == "" {
		id = ReviewID(raw.GameID, raw.User, comment)
	}

	return entities.Review{
		ID:           id,
		GameID:       raw.GameID,
		GameName:     raw.GameName,
		User:         raw.User,
		Rating:       rating,
		Comment:      comment,
		Sentiment:    sentiment,
		Subjectivity: raw.Subjectivity,
		LabelProba:   raw.LabelProba,
	}, nil
}

// ReviewID derives a stable ID for a review that has none.
func ReviewID(gameID int64, user, comment string) string {
	return uuid.NewSHA1(reviewNamespace, fmt.Appendf(nil, "%d\x00%s\x00%s", gameID, user, comment)).String()
}

// saveWithConflictHandling saves reviews with conflict handling.
func (s *ImportService) saveWithConflictHandling(ctx context.Context, reviews []entities.Review, onConflict ConflictStrategy) (imported, skipped int, err error) {
	existing, err := s.existing(ctx, reviews)
	if err != nil {
		return 0, 0, err
	}

	if onConflict != ConflictSkip {
		// Overwrite mode: preserve CreatedAt for existing reviews
		for i := range reviews {
			if prev, ok := existing[reviews[i].ID]; ok {
				reviews[i].CreatedAt = prev.CreatedAt
			}
		}
		if err := s.db.SaveReviews(ctx, reviews); err != nil {
			return 0, 0, err
		}
		return len(reviews), 0, nil
	}

	toSave := make([]entities.Review, 0, len(reviews))
	for i := range reviews {
		if _, ok := existing[reviews[i].ID]; ok {
			skipped++
		} else {
			toSave = append(toSave, reviews[i])
		}
	}
	if len(toSave) == 0 {
		return 0, skipped, nil
	}

	if err := s.db.SaveReviews(ctx, toSave); err != nil {
		return 0, 0, err
	}
	return len(toSave), skipped, nil
}

// existing looks up the stored versions of reviews in a single query.
func (s *ImportService) existing(ctx context.Context, reviews []entities.Review) (map[string]entities.Review, error) {
	ids := make([]string, len(reviews))
	for i := range reviews {
		ids[i] = reviews[i].ID
	}

	found, err := s.db.FindReviewsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("looking up existing reviews: %w", err)
	}

	byID := make(map[string]entities.Review, len(found))
	for i := range found {
		byID[found[i].ID] = found[i]
	}
	return byID, nil
}
