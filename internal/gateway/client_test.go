package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDoParsesJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/movies/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1, "title": "Dune"}`))
	}))
	defer srv.Close()

	res := New(srv.URL, testLogger()).Do(context.Background(), http.MethodGet, "/movies/1", nil)
	assert.Equal(t, http.StatusOK, res.Status)
	body, ok := res.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dune", body["title"])
}

func TestDoSendsJSONRequestBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, sonic.Unmarshal(raw, &got))
		assert.Equal(t, "Dune", got["title"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 3}`))
	}))
	defer srv.Close()

	res := New(srv.URL, testLogger()).Do(context.Background(), http.MethodPost, "/movies",
		map[string]any{"title": "Dune"})
	assert.Equal(t, http.StatusCreated, res.Status)
}

func TestDoNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res := New(srv.URL, testLogger()).Do(context.Background(), http.MethodDelete, "/movies/7", nil)
	assert.Equal(t, http.StatusNoContent, res.Status)
	assert.Nil(t, res.Body)
}

func TestDoEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	res := New(srv.URL, testLogger()).Do(context.Background(), http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Nil(t, res.Body)
}

func TestDoNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	res := New(srv.URL, testLogger()).Do(context.Background(), http.MethodGet, "/movies", nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Nil(t, res.Body)
}

func TestDoErrorStatusKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "invalid year"}`))
	}))
	defer srv.Close()

	res := New(srv.URL, testLogger()).Do(context.Background(), http.MethodPost, "/movies",
		map[string]any{"title": "Dune"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
	body, ok := res.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "invalid year", body["detail"])
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close() // connection refused from here on

	sent := map[string]any{"title": "Dune"}
	res := New(srv.URL, testLogger()).Do(context.Background(), http.MethodPost, "/movies", sent)
	assert.Equal(t, 0, res.Status)

	payload, ok := res.Body.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, payload["error"])
	assert.Equal(t, srv.URL+"/movies", payload["url"])
	assert.Equal(t, http.MethodPost, payload["method"])
	assert.Equal(t, sent, payload["body"])
}

func TestDoContextCancellationIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := New(srv.URL, testLogger()).Do(ctx, http.MethodGet, "/movies", nil)
	assert.Equal(t, 0, res.Status)
	payload, ok := res.Body.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, payload["error"])
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("http://example.test/", testLogger())
	assert.Equal(t, "http://example.test", c.BaseURL())
}
