package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresToken(t *testing.T) {
	_, err := New("  ", "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestSearchMulti(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "Heat", r.URL.Query().Get("query"))
		assert.Equal(t, "fr-FR", r.URL.Query().Get("language"))
		assert.Equal(t, "false", r.URL.Query().Get("include_adult"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":949,"media_type":"movie","title":"Heat","original_title":"Heat","release_date":"1995-12-15","vote_count":7000},
			{"id":1,"media_type":"tv","name":"Heat Wave","first_air_date":"2010-01-01"}
		]}`))
	}))
	t.Cleanup(server.Close)

	client, err := New("secret", server.URL+"/")
	require.NoError(t, err)

	resp, err := client.SearchMulti(context.Background(), " Heat ", SearchOptions{Language: "fr-FR"})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Heat", resp.Results[0].DisplayTitle())
	assert.Equal(t, 1995, *resp.Results[0].Year())
	assert.Equal(t, "Heat Wave", resp.Results[1].DisplayTitle())
	assert.Equal(t, 2010, *resp.Results[1].Year())
}

func TestSearchMulti_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := New("secret", server.URL)
	require.NoError(t, err)

	_, err = client.SearchMulti(context.Background(), "Heat", SearchOptions{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestSearchMulti_EmptyQuery(t *testing.T) {
	client, err := New("secret", "https://example.com")
	require.NoError(t, err)

	_, err = client.SearchMulti(context.Background(), "   ", SearchOptions{})
	assert.Error(t, err)
}

func TestResult_Year(t *testing.T) {
	assert.Nil(t, Result{}.Year())
	assert.Nil(t, Result{ReleaseDate: "19x5-01-01"}.Year())
	assert.Equal(t, 2008, *Result{ReleaseDate: "2008-07-16"}.Year())
}
