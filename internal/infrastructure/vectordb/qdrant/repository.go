// Package qdrant provides a VectorDB implementation using Qdrant.
package qdrant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
)

// reviewNamespace seeds the deterministic point IDs of reviews.
var reviewNamespace = uuid.MustParse("5b0f1c2e-8d1a-4c1b-9a55-2f0c7e6b3d41")

// Repository implements the VectorDB interface using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	if cfg.Collection == "" {
		return nil, errors.New("qdrant collection is required")
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// apiKeyInterceptor attaches the Qdrant API key to every call.
func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	// Game filters run on every scoped search.
	_, err = r.points.CreateFieldIndex(ctx, &pb.CreateFieldIndexCollection{
		CollectionName: r.collection,
		FieldName:      "bgg_id",
		FieldType:      pb.FieldType_FieldTypeInteger.Enum(),
	})
	if err != nil {
		return fmt.Errorf("creating bgg_id index: %w", err)
	}

	return nil
}

// DeleteCollection removes the collection and all its data.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// Save stores a review with its embedding.
func (r *Repository) Save(ctx context.Context, review entities.Review) error {
	return r.SaveBatch(ctx, []entities.Review{review})
}

// SaveBatch stores multiple reviews. Re-indexing a review overwrites its point.
func (r *Repository) SaveBatch(ctx context.Context, reviews []entities.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(reviews))
	for i := range reviews {
		rv := &reviews[i]
		if len(rv.Embedding) == 0 {
			return fmt.Errorf("review %s has no embedding", rv.Key())
		}

		points = append(points, &pb.PointStruct{
			Id: pointID(rv.Key()),
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{
						Data: rv.Embedding,
					},
				},
			},
			Payload: reviewPayload(rv),
		})
	}

	wait := true
	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search performs a semantic search and returns similar reviews.
func (r *Repository) Search(ctx context.Context, embedding []float32, limit int) ([]entities.Review, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	return scoredPointsToReviews(resp.Result), nil
}

// SearchByGame performs a semantic search restricted to the reviews of one game.
func (r *Repository) SearchByGame(ctx context.Context, embedding []float32, gameID int64, limit int) ([]entities.Review, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         gameFilter(gameID),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points by game: %w", err)
	}

	return scoredPointsToReviews(resp.Result), nil
}

// Delete removes a review by its ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	wait := true
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: []*pb.PointId{pointID(id)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting point: %w", err)
	}

	return nil
}

// Count returns the number of indexed reviews.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

// pointID maps a review key to a stable UUID point ID.
func pointID(key string) *pb.PointId {
	return &pb.PointId{
		PointIdOptions: &pb.PointId_Uuid{
			Uuid: uuid.NewSHA1(reviewNamespace, []byte(key)).String(),
		},
	}
}

func gameFilter(gameID int64) *pb.Filter {
	return &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: "bgg_id",
						Match: &pb.Match{
							MatchValue: &pb.Match_Integer{
								Integer: gameID,
							},
						},
					},
				},
			},
		},
	}
}

func reviewPayload(rv *entities.Review) map[string]*pb.Value {
	return map[string]*pb.Value{
		"review_id":    {Kind: &pb.Value_StringValue{StringValue: rv.Key()}},
		"bgg_id":       {Kind: &pb.Value_IntegerValue{IntegerValue: rv.GameID}},
		"name":         {Kind: &pb.Value_StringValue{StringValue: rv.GameName}},
		"user":         {Kind: &pb.Value_StringValue{StringValue: rv.User}},
		"rating":       {Kind: &pb.Value_DoubleValue{DoubleValue: rv.Rating}},
		"comment":      {Kind: &pb.Value_StringValue{StringValue: rv.Comment}},
		"sentiment":    {Kind: &pb.Value_StringValue{StringValue: string(rv.Sentiment)}},
		"subjectivity": {Kind: &pb.Value_DoubleValue{DoubleValue: rv.Subjectivity}},
		"label_proba":  {Kind: &pb.Value_DoubleValue{DoubleValue: rv.LabelProba}},
	}
}

// scoredPointsToReviews converts search hits to reviews, keeping Qdrant's score order.
func scoredPointsToReviews(points []*pb.ScoredPoint) []entities.Review {
	reviews := make([]entities.Review, 0, len(points))
	for _, point := range points {
		rv := payloadToReview(point.Payload)
		if rv.ID == "" {
			rv.ID = point.Id.GetUuid()
		}
		rv.Score = point.Score
		reviews = append(reviews, rv)
	}
	return reviews
}

func payloadToReview(payload map[string]*pb.Value) entities.Review {
	return entities.Review{
		ID:           getStringValue(payload, "review_id"),
		GameID:       getIntValue(payload, "bgg_id"),
		GameName:     getStringValue(payload, "name"),
		User:         getStringValue(payload, "user"),
		Rating:       getDoubleValue(payload, "rating"),
		Comment:      getStringValue(payload, "comment"),
		Sentiment:    entities.Sentiment(getStringValue(payload, "sentiment")),
		Subjectivity: getDoubleValue(payload, "subjectivity"),
		LabelProba:   getDoubleValue(payload, "label_proba"),
	}
}

// Helper functions for payload extraction.
func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func getIntValue(payload map[string]*pb.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		return v.GetIntegerValue()
	}
	return 0
}

// getDoubleValue also accepts integers, which Qdrant returns for whole-number doubles.
func getDoubleValue(payload map[string]*pb.Value, key string) float64 {
	v, ok := payload[key]
	if !ok {
		return 0
	}
	if _, isInt := v.GetKind().(*pb.Value_IntegerValue); isInt {
		return float64(v.GetIntegerValue())
	}
	return v.GetDoubleValue()
}
