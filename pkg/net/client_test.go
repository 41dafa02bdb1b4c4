package net

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	body, err := GetBody(context.Background(), nil, srv.URL)
	require.NoError(t, err)
	defer body.Close()

	b, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestGetBody_EmptyURL(t *testing.T) {
	_, err := GetBody(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestGetBody_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := GetBody(context.Background(), nil, srv.URL)
	assert.Error(t, err)
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"test","count":3}`))
	}))
	defer srv.Close()

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	err := GetJSON(context.Background(), nil, srv.URL, &out)
	require.NoError(t, err)
	assert.Equal(t, "test", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestGetJSON_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	var out map[string]any
	err := GetJSON(context.Background(), nil, srv.URL, &out)
	assert.Error(t, err)
}

func TestGetOAuthClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := GetOAuthClient(context.Background(), "test-token")
	body, err := GetBody(context.Background(), client, srv.URL)
	require.NoError(t, err)
	body.Close()
}
