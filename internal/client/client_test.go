package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestRecommendSendsQueryAsJSON(t *testing.T) {
	var gotBody, gotMethod, gotContentType string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"recommendations":[]}`))
	})

	_, err := New(srv.URL, srv.Client()).Recommend(context.Background(), "  marketing ")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"query":"  marketing "}`, gotBody)
}

func TestRecommendPreservesOrder(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[
			{"title":"Morning Brew","description":"Business news","score":0.91},
			{"title":"Lenny's Newsletter","description":"Product growth","score":0.52}
		]}`))
	})

	recs, err := New(srv.URL, srv.Client()).Recommend(context.Background(), "business")
	require.NoError(t, err)

	assert.Equal(t, []domain.Recommendation{
		{Title: "Morning Brew", Description: "Business news"},
		{Title: "Lenny's Newsletter", Description: "Product growth"},
	}, recs)
}

func TestRecommendEmptyBodies(t *testing.T) {
	for _, body := range []string{`{"recommendations":[]}`, `{}`, `{"recommendations":null}`} {
		t.Run(body, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			recs, err := New(srv.URL, srv.Client()).Recommend(context.Background(), "xyzzy-nonsense")
			require.NoError(t, err)
			assert.NotNil(t, recs)
			assert.Empty(t, recs)
		})
	}
}

func TestRecommendNonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(`{"recommendations":[{"title":"ignored","description":"ignored"}]}`))
			})

			recs, err := New(srv.URL, srv.Client()).Recommend(context.Background(), "marketing")
			require.Error(t, err)
			assert.Nil(t, recs)
			assert.True(t, IsServiceError(err))
			assert.Equal(t, ServiceFailureMessage, err.Error())

			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, status, se.StatusCode)
		})
	}
}

func TestRecommendMalformedBody(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := New(srv.URL, srv.Client()).Recommend(context.Background(), "marketing")
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.NotEmpty(t, err.Error())
}

func TestRecommendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Recommend(context.Background(), "marketing")
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsServiceError(err))
	assert.Contains(t, err.Error(), "connect")
}

func TestRecommendCanceledContext(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"recommendations":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, srv.Client()).Recommend(ctx, "marketing")
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecommendInvalidEndpoint(t *testing.T) {
	_, err := New("://bad", nil).Recommend(context.Background(), "marketing")
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
}
