package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":7,"name":"Dell Latitude 5420"}`))
	}))
	defer srv.Close()

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	c := New(srv.URL+"/", "tok")
	require.NoError(t, c.Do(context.Background(), "POST", "/assets", map[string]string{"name": "x"}, &out))
	assert.Equal(t, 7, out.ID)
}

func TestDo_DecodesValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"validation failed","fields":{"status":"must be one of active, lost"}}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "").Do(context.Background(), "PUT", "/assets/1", map[string]string{}, nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Contains(t, err.Error(), "status must be one of active, lost")
}

func TestDo_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL, "").Do(context.Background(), "GET", "/assets", nil, nil)
	assert.EqualError(t, err, "status 502: bad gateway")
}

func TestDo_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out map[string]any
	require.NoError(t, New(srv.URL, "").Do(context.Background(), "DELETE", "/assets/1", nil, &out))
	assert.Nil(t, out)
}
