// Package controller owns the finder's query lifecycle: input text,
// validation, the in-flight request and the state the view renders.
package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
	"github.com/actuallystonmai/newsletter-finder/internal/logging"
)

const (
	EmptyQueryMessage = "Please enter a search query."
	NoResultsMessage  = "No newsletters found."
	FallbackMessage   = "Something went wrong."
)

// Recommender is satisfied by *client.Client.
type Recommender interface {
	Recommend(ctx context.Context, query string) ([]domain.Recommendation, error)
}

// QueryState is what the view reads. An empty ErrorMessage means no error.
type QueryState struct {
	QueryText    string
	Results      []domain.Recommendation
	IsLoading    bool
	ErrorMessage string
}

type Controller struct {
	recommender Recommender

	mu    sync.RWMutex
	state QueryState
}

func New(recommender Recommender) *Controller {
	return &Controller{
		recommender: recommender,
		state:       QueryState{Results: []domain.Recommendation{}},
	}
}

// SetQuery replaces the input text. It never touches the network.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	c.state.QueryText = text
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() QueryState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Results = append([]domain.Recommendation(nil), c.state.Results...)
	return s
}

// SubmitQuery validates the current query and, if it is not blank, starts one
// request in the background. The returned channel is closed once the
// submission has settled; for a blank query it is already closed.
//
// Overlapping submissions are not serialized: whichever settles last
// determines the final state.
func (c *Controller) SubmitQuery(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	query := c.state.QueryText
	if strings.TrimSpace(query) == "" {
		c.state.ErrorMessage = EmptyQueryMessage
		c.mu.Unlock()
		logging.Debug().Err(domain.ErrEmptyQuery).Msg("[controller] submit rejected")
		close(done)
		return done
	}
	c.state.ErrorMessage = ""
	c.state.IsLoading = true
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.run(ctx, query)
	}()

	return done
}

func (c *Controller) run(ctx context.Context, query string) {
	defer func() {
		c.mu.Lock()
		c.state.IsLoading = false
		c.mu.Unlock()
	}()

	recs, err := c.fetch(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case err != nil:
		logging.Warn().Err(err).Str("query", query).Msg("[controller] recommendation request failed")
		c.state.Results = []domain.Recommendation{}
		c.state.ErrorMessage = failureMessage(err)
	case len(recs) == 0:
		c.state.Results = []domain.Recommendation{}
		c.state.ErrorMessage = NoResultsMessage
	default:
		logging.Debug().Str("query", query).Int("count", len(recs)).Msg("[controller] recommendations received")
		c.state.Results = append([]domain.Recommendation(nil), recs...)
		c.state.ErrorMessage = ""
	}
}

// fetch turns a panicking recommender into an ordinary failure.
func (c *Controller) fetch(ctx context.Context, query string) (recs []domain.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return c.recommender.Recommend(ctx, query)
}

func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
