package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Contents, 1) {
			assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		}

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"world"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", "test-model").WithBaseURL(srv.URL)
	out, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", out)
}

func TestGeminiClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", "").WithBaseURL(srv.URL)
	_, err := c.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient("secret", "").WithBaseURL(srv.URL).Complete(context.Background(), "x")
	assert.Error(t, err)
}

func TestGeminiClient_NoAPIKey(t *testing.T) {
	_, err := NewGeminiClient("", "").Complete(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeminiClient_DefaultModel(t *testing.T) {
	assert.Equal(t, DefaultModel, NewGeminiClient("k", "").Model())
}

func TestGeminiClient_MockResponder(t *testing.T) {
	c := NewGeminiClient("", "").WithMockResponder(func(p string) (string, error) {
		return "echo " + p, nil
	})
	out, err := c.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo hi", out)
}
