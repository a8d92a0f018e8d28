package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/unowned-ai/kith/pkg/config"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func fakeOllama(t *testing.T, content string, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1718409600,
			"model":   "llama3.2",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testClient(t *testing.T, host string) *Client {
	cfg := config.Default().AI
	cfg.Host = host + "/"
	cfg.Timeout = 5 * time.Second
	return NewClient(cfg, zaptest.NewLogger(t))
}

func TestParseInteraction(t *testing.T) {
	var got chatRequest
	srv := fakeOllama(t, `{"personNames":["Bob"],"medium":"Text","location":"home","topics":["plans"]}`, &got)

	p, err := testClient(t, srv.URL).ParseInteraction(context.Background(), "texted bob about plans", []string{"Bob", "Cid"}, nil, today)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, p.PersonNames)
	assert.Equal(t, "Text", p.Medium)

	assert.Equal(t, "llama3.2", got.Model)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Known contacts: [Bob, Cid]")
	assert.Equal(t, "texted bob about plans", got.Messages[1].Content)
}

func TestParseInteractionBadReply(t *testing.T) {
	srv := fakeOllama(t, `{"personNames":["Bob"],"topics":[]}`, nil)

	_, err := testClient(t, srv.URL).ParseInteraction(context.Background(), "saw bob", nil, nil, today)
	assert.ErrorIs(t, err, ErrNoTopics)
}

func TestParseInteractionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model not found"}}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := testClient(t, srv.URL).ParseInteraction(context.Background(), "saw bob", nil, nil, today)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model request")
}

func TestParseInteractionEmptyText(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1")
	_, err := c.ParseInteraction(context.Background(), "   ", nil, nil, today)
	assert.Error(t, err)
}
