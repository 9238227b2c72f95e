package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/microscope-solo/internal/domain/ports"
	"github.com/ersonp/microscope-solo/internal/infrastructure/config"
)

var _ ports.Embedder = (*Embedder)(nil)

func TestNewEmbedder(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.EmbedderConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: config.EmbedderConfig{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "valid config with model",
			cfg: config.EmbedderConfig{
				APIKey: "test-key",
				Model:  "text-embedding-ada-002",
			},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.EmbedderConfig{},
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder, err := NewEmbedder(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, embedder)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, embedder)
			}
		})
	}
}

func TestEmbedder_Dimensions(t *testing.T) {
	tests := []struct {
		model string
		want  uint64
	}{
		{"", VectorSize},
		{"text-embedding-3-small", 1536},
		{"text-embedding-3-large", 3072},
		{"some-local-model", VectorSize},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			e, err := NewEmbedder(config.EmbedderConfig{APIKey: "k", Model: tt.model})
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Dimensions())
		})
	}
}

// fakeServer answers embeddings requests with vectors [i, len(input)] and
// returns the data in reverse order.
func fakeServer(t *testing.T, requests *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		data := make([]map[string]any, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float32{float32(i), float32(len(req.Input))},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbedder_EmbedBatch(t *testing.T) {
	requests := 0
	srv := fakeServer(t, &requests)

	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	t.Run("orders by index", func(t *testing.T) {
		vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
		require.NoError(t, err)
		require.Len(t, vecs, 3)
		assert.Equal(t, []float32{0, 3}, vecs[0])
		assert.Equal(t, []float32{2, 3}, vecs[2])
	})

	t.Run("splits large batches", func(t *testing.T) {
		requests = 0
		texts := make([]string, maxBatchSize+10)
		for i := range texts {
			texts[i] = fmt.Sprintf("text %d", i)
		}
		vecs, err := e.EmbedBatch(context.Background(), texts)
		require.NoError(t, err)
		assert.Equal(t, 2, requests)
		require.Len(t, vecs, len(texts))
		assert.Equal(t, []float32{0, 10}, vecs[maxBatchSize])
	})

	t.Run("single", func(t *testing.T) {
		vec, err := e.Embed(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 1}, vec)
	})

	t.Run("empty input", func(t *testing.T) {
		vecs, err := e.EmbedBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, vecs)
	})
}

func TestEmbedder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	t.Cleanup(srv.Close)

	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating embeddings")
}

func TestVectorSize(t *testing.T) {
	assert.Equal(t, 1536, VectorSize)
}
