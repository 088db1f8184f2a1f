package actions_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRequest_SavesJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"name": "Ada", "id": 7})
	}))
	defer srv.Close()

	h := newHarness(t)
	require.NoError(t, h.run(t, document.Action{Type: "httpRequest", Parameters: map[string]value.Value{
		"url":    value.String(srv.URL),
		"saveTo": value.String("profile"),
	}}))

	assert.True(t, value.String("Ada").Equal(h.store.Get("profile.name")))
	assert.True(t, value.Int(7).Equal(h.store.Get("profile.id")))
}

func TestHTTPRequest_SavesNonJSONAsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("plain text"))
	}))
	defer srv.Close()

	h := newHarness(t)
	require.NoError(t, h.run(t, document.Action{Type: "httpRequest", Parameters: map[string]value.Value{
		"url":    value.String(srv.URL),
		"saveTo": value.String("raw"),
	}}))

	assert.True(t, value.String("plain text").Equal(h.store.Get("raw")))
}

func TestHTTPRequest_PostsTemplatedBody(t *testing.T) {
	var received any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	h := newHarness(t)
	require.NoError(t, h.store.Set("draft.text", value.String("hello")))

	require.NoError(t, h.run(t, document.Action{Type: "httpRequest", Parameters: map[string]value.Value{
		"url":    value.String(srv.URL),
		"method": value.String("post"),
		"body":   value.String("${draft.text}"),
	}}))

	// Body strings run through template resolution against current state.
	assert.Equal(t, "hello", received)
}

func TestHTTPRequest_ErrorStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	h := newHarness(t)
	err := h.run(t, document.Action{Type: "httpRequest", Parameters: map[string]value.Value{
		"url":    value.String(srv.URL),
		"saveTo": value.String("never"),
	}})

	require.Error(t, err)
	assert.True(t, h.store.Get("never").IsNull(), "failed requests write nothing")
}

func TestHTTPRequest_ResolveValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.engine.Resolve(document.Action{Type: "httpRequest"}, action.ResolutionContext{})
	assert.ErrorIs(t, err, action.ErrInvalidParameters)

	_, err = h.engine.Resolve(document.Action{Type: "httpRequest", Parameters: map[string]value.Value{
		"url":    value.String("http://example.com"),
		"method": value.String("BREW"),
	}}, action.ResolutionContext{})
	assert.ErrorIs(t, err, action.ErrInvalidParameters)
}

func TestCancelRequest_CancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
			t.Error("request was never canceled")
		}
	}))
	defer srv.Close()

	h := newHarness(t)

	done := make(chan error, 1)
	go func() {
		done <- h.run(t, document.Action{Type: "httpRequest", Parameters: map[string]value.Value{
			"id":     value.String("search"),
			"url":    value.String(srv.URL),
			"saveTo": value.String("results"),
		}})
	}()

	<-started
	require.NoError(t, h.run(t, document.Action{Type: "cancelRequest", Parameters: map[string]value.Value{
		"id": value.String("search"),
	}}))

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("canceled request did not return")
	}
	assert.True(t, h.store.Get("results").IsNull())
}

func TestCancelRequest_UnknownIDIsNoop(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.run(t, document.Action{Type: "cancelRequest", Parameters: map[string]value.Value{
		"id": value.String("nothing"),
	}}))
}
