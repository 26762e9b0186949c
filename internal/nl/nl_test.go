// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/config"
	"github.com/jeranaias/rigsh/internal/offline"
	"github.com/jeranaias/rigsh/internal/ollama"
)

var known = []string{"ls", "cd", "mkdir", "nl"}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("create a folder called test", known)

	assert.Contains(t, p, "The available commands are: ls, cd, mkdir, nl.")
	assert.Contains(t, p, `Natural language command: "create a folder called test"`)
	assert.Contains(t, p, "single, executable shell command")
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"mkdir test", "mkdir test"},
		{"  ls -la \n", "ls -la"},
		{"```bash\nls -la\n```", "ls -la"},
		{"```\npwd\n```", "pwd"},
		{"```ls```", "ls"},
		{"`cat notes.txt`", "cat notes.txt"},
		{"```\n```", ""},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Clean(tc.in), "%q", tc.in)
	}
}

func ollamaServer(t *testing.T, reply string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			w.Write([]byte("Ollama is running"))
			return
		}
		if calls != nil {
			calls.Add(1)
		}
		var req ollama.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "ls, cd, mkdir, nl")

		json.NewEncoder(w).Encode(ollama.ChatResponse{
			Message: ollama.Message{Role: "assistant", Content: reply},
			Done:    true,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOllamaTranslator(t *testing.T) {
	srv := ollamaServer(t, "```sh\nmkdir test\n```", nil)

	tr := NewOllamaTranslator(srv.URL, "tiny", time.Second)
	got, err := tr.Translate(context.Background(), "create a folder called test", known)
	require.NoError(t, err)
	assert.Equal(t, "mkdir test", got)
}

func TestOllamaTranslatorNotRunning(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOllamaTranslator(url, "", time.Second).Translate(context.Background(), "x", known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama is not running")
	assert.True(t, ollama.IsNotRunning(err))
}

func TestOllamaTranslatorChecksServerOnce(t *testing.T) {
	var health, chats atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			health.Add(1)
			w.Write([]byte("Ollama is running"))
			return
		}
		chats.Add(1)
		json.NewEncoder(w).Encode(ollama.ChatResponse{
			Message: ollama.Message{Role: "assistant", Content: "ls"},
			Done:    true,
		})
	}))
	defer srv.Close()

	tr := NewOllamaTranslator(srv.URL, "tiny", time.Second)
	for i := 0; i < 3; i++ {
		_, err := tr.Translate(context.Background(), "list files", known)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), health.Load())
	assert.Equal(t, int32(3), chats.Load())
}

func TestOllamaTranslatorUnhealthyServer(t *testing.T) {
	var chats atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			chats.Add(1)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewOllamaTranslator(srv.URL, "tiny", time.Second).Translate(context.Background(), "x", known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status from Ollama")
	assert.Equal(t, int32(0), chats.Load())
}

func TestOllamaTranslatorTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte("Ollama is running"))
			return
		}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewOllamaTranslator(srv.URL, "tiny", 50*time.Millisecond).Translate(context.Background(), "x", known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not answer within 50ms")
	assert.True(t, ollama.IsTimeout(err))
}

func TestOpenRouterTranslator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"pwd\n"}}]}`))
	}))
	defer srv.Close()

	tr, err := NewOpenRouterTranslator("sk-or-test-key", "mini", time.Second, 0, zap.NewNop())
	require.NoError(t, err)
	tr.WithBaseURL(srv.URL)
	assert.Equal(t, "openai/gpt-4o-mini", tr.Model())

	got, err := tr.Translate(context.Background(), "where am I", known)
	require.NoError(t, err)
	assert.Equal(t, "pwd", got)
}

func TestOpenRouterTranslatorMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr, err := NewOpenRouterTranslator("sk-or-test-key", "", time.Second, 1, nil)
	require.NoError(t, err)
	tr.WithBaseURL(srv.URL)

	_, err = tr.Translate(context.Background(), "where am I", known)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProvidersRequireKeys(t *testing.T) {
	_, err := NewOpenRouterTranslator("", "", 0, 0, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewGeminiTranslator(context.Background(), "", "", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew(t *testing.T) {
	srv := ollamaServer(t, "ls", nil)
	ctx := context.Background()

	_, err := New(ctx, config.NLConfig{Enabled: false, Provider: ProviderOllama}, nil)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = New(ctx, config.NLConfig{Enabled: true, Provider: "carrier-pigeon"}, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = New(ctx, config.NLConfig{Enabled: true, Provider: ProviderGemini}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	tr, err := New(ctx, config.NLConfig{Enabled: true, Provider: "Ollama", OllamaURL: srv.URL}, nil)
	require.NoError(t, err)
	_, isOllama := tr.(*OllamaTranslator)
	assert.True(t, isOllama)

	tr, err = New(ctx, config.NLConfig{Enabled: true, Provider: ProviderOllama, OllamaURL: srv.URL, RequestsPerMinute: 30}, nil)
	require.NoError(t, err)
	_, isLimited := tr.(*RateLimited)
	assert.True(t, isLimited)

	got, err := tr.Translate(ctx, "list", known)
	require.NoError(t, err)
	assert.Equal(t, "ls", got)
}

func TestNewLocalOnly(t *testing.T) {
	srv := ollamaServer(t, "ls", nil)
	ctx := context.Background()

	_, err := New(ctx, config.NLConfig{Enabled: true, Provider: ProviderGemini, GeminiKey: "k", LocalOnly: true}, nil)
	assert.ErrorIs(t, err, offline.ErrCloudBlocked)

	_, err = New(ctx, config.NLConfig{Enabled: true, Provider: ProviderOpenRouter, OpenRouterKey: "k", LocalOnly: true}, nil)
	assert.ErrorIs(t, err, offline.ErrCloudBlocked)

	_, err = New(ctx, config.NLConfig{Enabled: true, Provider: ProviderOllama, OllamaURL: "http://gpu-box.lan:11434", LocalOnly: true}, nil)
	assert.ErrorIs(t, err, offline.ErrNonLocalhost)

	// httptest servers listen on 127.0.0.1
	tr, err := New(ctx, config.NLConfig{Enabled: true, Provider: ProviderOllama, OllamaURL: srv.URL, LocalOnly: true}, nil)
	require.NoError(t, err)
	assert.NotNil(t, tr)
}

func TestNewRejectsBadOllamaScheme(t *testing.T) {
	_, err := New(context.Background(), config.NLConfig{Enabled: true, Provider: ProviderOllama, OllamaURL: "ftp://127.0.0.1"}, nil)
	assert.ErrorIs(t, err, offline.ErrInvalidURLScheme)
}

type countingTranslator struct{ calls atomic.Int32 }

func (c *countingTranslator) Translate(context.Context, string, []string) (string, error) {
	c.calls.Add(1)
	return "ls", nil
}

func TestRateLimited(t *testing.T) {
	next := &countingTranslator{}
	assert.Same(t, Translator(next), NewRateLimited(next, 0))

	limited := NewRateLimited(next, 1)
	_, err := limited.Translate(context.Background(), "a", known)
	require.NoError(t, err)

	// The second call would wait a minute; a short deadline makes it fail.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = limited.Translate(ctx, "b", known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestRateLimitedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRateLimited(&countingTranslator{}, 60).Translate(ctx, "a", known)
	assert.True(t, errors.Is(err, context.Canceled))
}
