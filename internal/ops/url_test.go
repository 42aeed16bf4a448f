package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
)

func TestURL_ReturnsEndpoint(t *testing.T) {
	rt, loc := newTestRuntime(nil, &stubFetcher{})

	out, err := URL(context.Background(), rt, URLInput{Game: " HkrpgGlobal "})
	if err != nil {
		t.Fatalf("URL failed: %v", err)
	}

	if out.Game != "hkrpgglobal" {
		t.Errorf("Game = %q, want hkrpgglobal", out.Game)
	}
	want := "https://api.example.test/gacha_info/api/getGachaLog?authkey=hkrpgglobal&lang=en"
	if out.URL != want {
		t.Errorf("URL = %q, want %q", out.URL, want)
	}
	if len(loc.calls) != 1 || loc.calls[0] != (game.Type{Family: game.Hkrpg, Region: game.Global}) {
		t.Errorf("Discover calls = %v", loc.calls)
	}
}

func TestURL_InvalidGame(t *testing.T) {
	rt, loc := newTestRuntime(nil, &stubFetcher{})

	_, err := URL(context.Background(), rt, URLInput{Game: "hk4e"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
	if len(loc.calls) != 0 {
		t.Error("discovery should not run for an unknown game")
	}
}

func TestURL_NoLocator(t *testing.T) {
	rt, _ := newTestRuntime(nil, &stubFetcher{})
	rt.Locator = nil

	_, err := URL(context.Background(), rt, URLInput{Game: "hk4ecn"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestURL_DiscoveryError(t *testing.T) {
	rt, loc := newTestRuntime(nil, &stubFetcher{})
	loc.errs = map[game.Type]error{
		{Family: game.Hk4e, Region: game.CN}: errors.NewNoValidCandidate(3),
	}

	_, err := URL(context.Background(), rt, URLInput{Game: "hk4ecn"})
	if !errors.Is(err, errors.ErrNoValidCandidate) {
		t.Fatalf("expected NO_VALID_CANDIDATE, got %v", err)
	}
}
