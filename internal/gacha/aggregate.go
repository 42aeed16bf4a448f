package gacha

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
	"github.com/hpungsan/gachalog/internal/uigf"
)

// Fetcher retrieves one category's records. *Client implements it.
type Fetcher interface {
	FetchCategory(ctx context.Context, ep *Endpoint, code string) (*CategoryLog, error)
}

// Aggregator fetches every category of a title and merges them into one
// collection. Failed categories and unusable records are logged and skipped.
type Aggregator struct {
	Fetcher Fetcher
	Logger  *slog.Logger
}

// Collection is the result of fetching one title. Exactly one of the
// title fields is set.
type Collection struct {
	Family game.Family
	Hk4e   *uigf.Hk4e
	Hkrpg  *uigf.Hkrpg
	Nap    *uigf.Nap
}

// UID returns the account id of the collection.
func (c *Collection) UID() string {
	switch {
	case c.Hk4e != nil:
		return string(c.Hk4e.UID)
	case c.Hkrpg != nil:
		return string(c.Hkrpg.UID)
	case c.Nap != nil:
		return string(c.Nap.UID)
	}
	return ""
}

// Items returns the number of records in the collection.
func (c *Collection) Items() int {
	switch {
	case c.Hk4e != nil:
		return len(c.Hk4e.List)
	case c.Hkrpg != nil:
		return len(c.Hkrpg.List)
	case c.Nap != nil:
		return len(c.Nap.List)
	}
	return 0
}

// Categories returns the number of distinct gacha types with records.
func (c *Collection) Categories() int {
	seen := make(map[string]bool)
	switch {
	case c.Hk4e != nil:
		for _, it := range c.Hk4e.List {
			seen[it.GachaType.String()] = true
		}
	case c.Hkrpg != nil:
		for _, it := range c.Hkrpg.List {
			seen[it.GachaType.String()] = true
		}
	case c.Nap != nil:
		for _, it := range c.Nap.List {
			seen[it.GachaType.String()] = true
		}
	}
	return len(seen)
}

// AddTo appends the collection to the matching section of doc.
func (c *Collection) AddTo(doc *uigf.Document) {
	switch {
	case c.Hk4e != nil:
		doc.Hk4e = append(doc.Hk4e, *c.Hk4e)
	case c.Hkrpg != nil:
		doc.Hkrpg = append(doc.Hkrpg, *c.Hkrpg)
	case c.Nap != nil:
		doc.Nap = append(doc.Nap, *c.Nap)
	}
}

// FetchFamily fetches the title f.
func (a *Aggregator) FetchFamily(ctx context.Context, ep *Endpoint, f game.Family) (*Collection, error) {
	c := &Collection{Family: f}
	var err error
	switch f {
	case game.Hk4e:
		c.Hk4e, err = a.FetchHk4e(ctx, ep)
	case game.Hkrpg:
		c.Hkrpg, err = a.FetchHkrpg(ctx, ep)
	case game.Nap:
		c.Nap, err = a.FetchNap(ctx, ep)
	default:
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown title %q", f))
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FetchHk4e fetches every Genshin Impact wish banner.
func (a *Aggregator) FetchHk4e(ctx context.Context, ep *Endpoint) (*uigf.Hk4e, error) {
	codes := make([]string, 0, 6)
	for _, t := range uigf.Hk4eGachaTypes() {
		codes = append(codes, t.String())
	}
	m, err := fetchFamily(ctx, a, ep, familyPlan[uigf.Hk4eItem]{
		family:    game.Hk4e,
		codes:     codes,
		timezone:  hk4eTimezone,
		normalize: NormalizeHk4e,
	})
	if err != nil {
		return nil, err
	}
	return &uigf.Hk4e{UID: uigf.UID(m.uid), Timezone: m.timezone, Lang: m.lang, List: m.items}, nil
}

// FetchHkrpg fetches every Honkai: Star Rail warp banner.
func (a *Aggregator) FetchHkrpg(ctx context.Context, ep *Endpoint) (*uigf.Hkrpg, error) {
	codes := make([]string, 0, 6)
	for _, t := range uigf.HkrpgGachaTypes() {
		codes = append(codes, t.String())
	}
	m, err := fetchFamily(ctx, a, ep, familyPlan[uigf.HkrpgItem]{
		family:    game.Hkrpg,
		codes:     codes,
		timezone:  reportedTimezone(game.Hkrpg),
		normalize: NormalizeHkrpg,
	})
	if err != nil {
		return nil, err
	}
	return &uigf.Hkrpg{UID: uigf.UID(m.uid), Timezone: m.timezone, Lang: m.lang, List: m.items}, nil
}

// FetchNap fetches every Zenless Zone Zero search channel.
func (a *Aggregator) FetchNap(ctx context.Context, ep *Endpoint) (*uigf.Nap, error) {
	codes := make([]string, 0, 4)
	for _, t := range uigf.NapGachaTypes() {
		codes = append(codes, t.String())
	}
	m, err := fetchFamily(ctx, a, ep, familyPlan[uigf.NapItem]{
		family:    game.Nap,
		codes:     codes,
		timezone:  reportedTimezone(game.Nap),
		normalize: NormalizeNap,
	})
	if err != nil {
		return nil, err
	}
	return &uigf.Nap{UID: uigf.UID(m.uid), Timezone: m.timezone, Lang: m.lang, List: m.items}, nil
}

type familyPlan[T any] struct {
	family    game.Family
	codes     []string
	timezone  timezoneFunc
	normalize func(RawRecord) (T, error)
}

type merged[T any] struct {
	uid      string
	timezone int
	lang     *uigf.LanguageCode
	items    []T
}

func fetchFamily[T any](ctx context.Context, a *Aggregator, ep *Endpoint, plan familyPlan[T]) (*merged[T], error) {
	log := a.logger().With("family", string(plan.family))

	var logs []*CategoryLog
	for _, code := range plan.codes {
		if ctx.Err() != nil {
			return nil, errors.NewCancelled("fetch " + string(plan.family))
		}
		cl, err := a.Fetcher.FetchCategory(ctx, ep, code)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, errors.ErrCancelled) {
				return nil, errors.NewCancelled("fetch " + string(plan.family))
			}
			log.Warn("skipping category", "gacha_type", code, "err", err)
			continue
		}
		if len(cl.Records) == 0 {
			log.Debug("category empty", "gacha_type", code)
			continue
		}
		if _, err := plan.timezone(cl, cl.Records[0].UID); err != nil {
			log.Warn("skipping category", "gacha_type", code, "err", err)
			continue
		}
		logs = append(logs, cl)
	}
	if len(logs) == 0 {
		return nil, errors.NewNoDataFound(string(plan.family))
	}

	// Account details come from the first record that names an account.
	var (
		first   RawRecord
		firstCL *CategoryLog
	)
	for _, cl := range logs {
		for _, r := range cl.Records {
			if r.UID != "" {
				first, firstCL = r, cl
				break
			}
		}
		if firstCL != nil {
			break
		}
	}
	if firstCL == nil {
		log.Warn("no record names an account", "err", errors.NewInvalidUID("", "record has no uid"))
		return nil, errors.NewNoDataFound(string(plan.family))
	}
	tz, _ := plan.timezone(firstCL, first.UID)
	out := &merged[T]{uid: first.UID, timezone: tz}
	if first.Lang != "" {
		if lang, ok := uigf.ParseLanguage(first.Lang); ok {
			out.lang = &lang
		} else {
			log.Warn("unknown language, omitting", "lang", first.Lang)
		}
	}

	seen := make(map[string]bool)
	for _, cl := range logs {
		for _, r := range cl.Records {
			if r.UID != out.uid {
				log.Warn("dropping record", "id", r.ID, "err", errors.NewInvalidUID(r.UID, "does not match account "+out.uid))
				continue
			}
			if r.ID != "" && seen[r.ID] {
				log.Debug("dropping repeated record", "id", r.ID, "gacha_type", cl.Code)
				continue
			}
			item, err := plan.normalize(r)
			if err != nil {
				log.Warn("dropping record", "id", r.ID, "err", err)
				continue
			}
			seen[r.ID] = true
			out.items = append(out.items, item)
		}
	}
	if out.items == nil {
		out.items = []T{}
	}
	log.Info("fetched collection", "uid", out.uid, "categories", len(logs), "items", len(out.items))
	return out, nil
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
