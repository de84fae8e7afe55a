package openaisdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL + "/v1", Dimensions: 2})
	require.NoError(t, err)
	return svc
}

func TestNewEmbeddingService(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingCredential)

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-ada-002", svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestEmbed_Success(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","embedding":[0.5,0.25],"index":0}],"model":"text-embedding-ada-002"}`))
	})

	vec, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
}

func TestEmbed_Unauthorized(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	})

	_, err := svc.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)

	var provider *domain.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, "Incorrect API key provided", provider.Message)
}

func TestEmbed_EmptyData(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	})

	_, err := svc.Embed(context.Background(), "hello")

	var malformed *domain.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestEmbed_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL, Dimensions: 2})
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), "hello")

	var transport *domain.TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestEmbed_UndecodableSuccessBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway</html>`},
		{"wrong shape", `{"object":"list","data":"oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := svc.Embed(context.Background(), "hello")

			var malformed *domain.MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			var transport *domain.TransportError
			assert.False(t, errors.As(err, &transport))
		})
	}
}

func TestTranslateError_DecoderErrors(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{Offset: 1}
	var typeErr error = &json.UnmarshalTypeError{Value: "string", Field: "data"}

	for _, err := range []error{syntaxErr, typeErr, fmt.Errorf("decode: %w", typeErr)} {
		var malformed *domain.MalformedResponseError
		assert.ErrorAs(t, translateError(err), &malformed)
	}

	var transport *domain.TransportError
	assert.ErrorAs(t, translateError(errors.New("connection refused")), &transport)
}
