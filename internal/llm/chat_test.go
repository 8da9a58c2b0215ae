package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChatClient(endpoint string) *ChatClient {
	config := DefaultOpenAIConfig()
	config.Endpoint = endpoint
	return NewChatClient(config, "test-key")
}

func TestChatClient_Success(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Improved throughput by 35%"}}]}`))
	}))
	defer srv.Close()

	resp, err := newTestChatClient(srv.URL).Generate(context.Background(), Request{
		Model:       "gpt-test",
		Temperature: 0.4,
		MaxTokens:   80,
		Stop:        []string{"\n\n"},
		Messages: []Message{
			{Role: RoleSystem, Content: "rewrite"},
			{Role: RoleUser, Content: "helped improve stuff"},
		},
	})
	require.NoError(t, err)
	require.True(t, resp.OK())

	text, ok := resp.Text()
	assert.True(t, ok)
	assert.Equal(t, "Improved throughput by 35%", text)

	assert.Equal(t, "gpt-test", captured.Model)
	assert.Equal(t, int32(80), captured.MaxTokens)
	assert.Equal(t, []string{"\n\n"}, captured.Stop)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, RoleSystem, captured.Messages[0].Role)
}

func TestChatClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	resp, err := newTestChatClient(srv.URL).Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, resp.Body, "rate limited")

	_, ok := resp.Text()
	assert.False(t, ok)
}

func TestChatClient_MissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	resp, err := newTestChatClient(srv.URL).Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())

	_, ok := resp.Text()
	assert.False(t, ok)
}

func TestChatClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	resp, err := newTestChatClient(srv.URL).Generate(ctx, Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "HTTP request failed")
}

func TestParseChatResponse_LegacyText(t *testing.T) {
	resp := parseChatResponse(http.StatusOK, []byte(`{"choices":[{"text":"legacy"}]}`))
	text, ok := resp.Text()
	assert.True(t, ok)
	assert.Equal(t, "legacy", text)

	resp = parseChatResponse(http.StatusOK, []byte(`not json`))
	_, ok = resp.Text()
	assert.False(t, ok)
	assert.Equal(t, "not json", resp.Body)
}
