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

	"github.com/ersonp/microscope-solo/internal/domain/entities"
	"github.com/ersonp/microscope-solo/internal/infrastructure/config"
)

// Repository implements ports.VectorDB and ports.CollectionManager for one
// session's collection.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository. cfg.Collection must be set,
// normally via config.GenerateCollectionName.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	if cfg.Collection == "" {
		return nil, errors.New("qdrant collection name is required")
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

// Collection returns the collection name.
func (r *Repository) Collection() string {
	return r.collection
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

	return nil
}

// DeleteCollection drops the collection.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// SaveBatch upserts passages keyed by element id.
func (r *Repository) SaveBatch(ctx context.Context, passages []entities.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(passages))
	for _, p := range passages {
		point, err := passageToPoint(p)
		if err != nil {
			return err
		}
		points = append(points, point)
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search performs a semantic search and returns similar passages.
func (r *Repository) Search(ctx context.Context, embedding []float32, limit int) ([]entities.Passage, error) {
	return r.search(ctx, embedding, nil, limit)
}

// SearchByKind performs a semantic search filtered by passage kind.
func (r *Repository) SearchByKind(ctx context.Context, embedding []float32, kind entities.PassageKind, limit int) ([]entities.Passage, error) {
	return r.search(ctx, embedding, kindFilter(kind), limit)
}

func (r *Repository) search(ctx context.Context, embedding []float32, filter *pb.Filter, limit int) ([]entities.Passage, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         filter,
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	passages := make([]entities.Passage, 0, len(resp.Result))
	for _, point := range resp.Result {
		p := payloadToPassage(point.Id.GetUuid(), point.Payload)
		p.Score = point.Score
		passages = append(passages, p)
	}
	return passages, nil
}

// DeleteAll removes all passages.
func (r *Repository) DeleteAll(ctx context.Context) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting all points: %w", err)
	}

	return nil
}

// Count returns the total number of passages.
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

func kindFilter(kind entities.PassageKind) *pb.Filter {
	return &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: "kind",
						Match: &pb.Match{
							MatchValue: &pb.Match_Keyword{
								Keyword: string(kind),
							},
						},
					},
				},
			},
		},
	}
}

// passageToPoint converts a passage to a Qdrant point. Point ids must be
// UUIDs, which element ids always are.
func passageToPoint(p entities.Passage) (*pb.PointStruct, error) {
	if _, err := uuid.Parse(p.ID); err != nil {
		return nil, fmt.Errorf("passage id %q: %w", p.ID, err)
	}
	if len(p.Embedding) == 0 {
		return nil, fmt.Errorf("passage %s has no embedding", p.ID)
	}

	return &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{
				Uuid: p.ID,
			},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: p.Embedding,
				},
			},
		},
		Payload: map[string]*pb.Value{
			"session": stringValue(p.Session),
			"kind":    stringValue(string(p.Kind)),
			"label":   stringValue(p.Label),
			"text":    stringValue(p.Text),
			"tone":    stringValue(string(p.Tone)),
		},
	}, nil
}

func payloadToPassage(id string, payload map[string]*pb.Value) entities.Passage {
	return entities.Passage{
		ID:      id,
		Session: getStringValue(payload, "session"),
		Kind:    entities.PassageKind(getStringValue(payload, "kind")),
		Label:   getStringValue(payload, "label"),
		Text:    getStringValue(payload, "text"),
		Tone:    entities.Tone(getStringValue(payload, "tone")),
	}
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
