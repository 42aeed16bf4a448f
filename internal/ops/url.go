package ops

import (
	"context"

	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
)

// URLInput contains parameters for the URL operation.
type URLInput struct {
	Game string // compact name, e.g. "hk4ecn"
}

// URLOutput contains the result of the URL operation.
type URLOutput struct {
	Game string `json:"game"`
	URL  string `json:"url"`
}

// URL runs endpoint discovery only and returns the sanitized endpoint.
func URL(ctx context.Context, rt *Runtime, input URLInput) (*URLOutput, error) {
	t, err := game.Parse(input.Game)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	if rt.Locator == nil {
		return nil, errors.NewInvalidRequest("endpoint discovery is unavailable")
	}
	ep, err := rt.Locator.Discover(ctx, t)
	if err != nil {
		return nil, err
	}

	return &URLOutput{Game: t.String(), URL: ep.String()}, nil
}
