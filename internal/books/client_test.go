// ABOUTME: Tests for the Google Books search client
// ABOUTME: Uses an httptest server serving canned volume payloads

package books

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "go programming", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"volumeInfo":{"title":"The Go Programming Language","authors":["Alan A. A. Donovan","Brian W. Kernighan"],"pageCount":380}},
			{"volumeInfo":{"title":"","authors":["Nobody"],"pageCount":1}},
			{"volumeInfo":{"title":"Learning Go","authors":["Jon Bodner"],"pageCount":375}}
		]}`)
	}))
	defer srv.Close()

	client := &Client{BaseURL: srv.URL}
	volumes, err := client.Search(context.Background(), "go programming", 0)
	require.NoError(t, err)

	// The untitled volume is dropped
	require.Len(t, volumes, 2)
	assert.Equal(t, "The Go Programming Language", volumes[0].Title)
	assert.Equal(t, "Alan A. A. Donovan, Brian W. Kernighan", volumes[0].Author())
	assert.Equal(t, 380, volumes[0].PageCount)
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	client := &Client{BaseURL: srv.URL}
	_, err := client.Search(context.Background(), "zzzz", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no volumes found")
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := &Client{BaseURL: srv.URL}
	_, err := client.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
