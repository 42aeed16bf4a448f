// Package report summarizes exported gacha documents: pulls per banner,
// top-rank drops and the current pity counter.
package report

import (
	"sort"

	"github.com/hpungsan/gachalog/internal/game"
	"github.com/hpungsan/gachalog/internal/uigf"
)

// TopItem is one top-rank drop and the pulls it took.
type TopItem struct {
	Name  string `json:"name"`
	Time  string `json:"time"`
	Pulls int    `json:"pulls"`
}

// Category summarizes one pity group.
type Category struct {
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Total    int       `json:"total"`
	TopRank  int       `json:"top_rank"`
	Pity     int       `json:"pity"`
	TopItems []TopItem `json:"top_items"`
}

// Collection summarizes one account of one title.
type Collection struct {
	Family     game.Family `json:"game"`
	UID        string      `json:"uid"`
	Timezone   int         `json:"timezone"`
	Total      int         `json:"total"`
	Categories []Category  `json:"categories"`
}

type pull struct {
	group string
	id    string
	name  string
	time  string
	rank  string
}

// Analyze summarizes every collection in doc, in document order.
// Genshin Impact pulls are grouped by uigf_gacha_type since both character
// event banners share one pity counter; other titles group by gacha_type.
func Analyze(doc *uigf.Document) []Collection {
	var out []Collection
	for _, c := range doc.Hk4e {
		pulls := make([]pull, len(c.List))
		for i, it := range c.List {
			pulls[i] = pull{group: it.UIGFGachaType.String(), id: it.ID, name: it.Name, time: it.Time, rank: it.RankType}
		}
		var groups []string
		for _, t := range uigf.Hk4eUIGFGachaTypes() {
			groups = append(groups, t.String())
		}
		out = append(out, summarize(game.Hk4e, string(c.UID), c.Timezone, groups, pulls))
	}
	for _, c := range doc.Hkrpg {
		pulls := make([]pull, len(c.List))
		for i, it := range c.List {
			pulls[i] = pull{group: it.GachaType.String(), id: it.ID, name: it.Name, time: it.Time, rank: it.RankType}
		}
		var groups []string
		for _, t := range uigf.HkrpgGachaTypes() {
			groups = append(groups, t.String())
		}
		out = append(out, summarize(game.Hkrpg, string(c.UID), c.Timezone, groups, pulls))
	}
	for _, c := range doc.Nap {
		pulls := make([]pull, len(c.List))
		for i, it := range c.List {
			pulls[i] = pull{group: it.GachaType.String(), id: it.ID, name: it.Name, time: it.Time, rank: it.RankType}
		}
		var groups []string
		for _, t := range uigf.NapGachaTypes() {
			groups = append(groups, t.String())
		}
		out = append(out, summarize(game.Nap, string(c.UID), c.Timezone, groups, pulls))
	}
	return out
}

func summarize(f game.Family, uid string, tz int, groups []string, pulls []pull) Collection {
	byGroup := make(map[string][]pull, len(groups))
	for _, p := range pulls {
		byGroup[p.group] = append(byGroup[p.group], p)
	}

	col := Collection{Family: f, UID: uid, Timezone: tz, Total: len(pulls), Categories: []Category{}}
	top := f.TopRank()
	for _, g := range groups {
		ps := byGroup[g]
		if len(ps) == 0 {
			continue
		}
		sort.SliceStable(ps, func(i, j int) bool { return idLess(ps[i].id, ps[j].id) })

		cat := Category{Code: g, Name: categoryName(f, g), Total: len(ps), TopItems: []TopItem{}}
		for _, p := range ps {
			cat.Pity++
			if p.rank == top {
				cat.TopRank++
				cat.TopItems = append(cat.TopItems, TopItem{Name: p.name, Time: p.time, Pulls: cat.Pity})
				cat.Pity = 0
			}
		}
		col.Categories = append(col.Categories, cat)
	}
	return col
}

// idLess orders record ids numerically. Ids are decimal strings without
// leading zeros, so a shorter id is smaller.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

var categoryNames = map[game.Family]map[string]string{
	game.Hk4e: {
		"100": "Standard Wish",
		"200": "Beginners' Wish",
		"301": "Character Event Wish",
		"302": "Weapon Event Wish",
		"500": "Chronicled Wish",
	},
	game.Hkrpg: {
		"1":  "Stellar Warp",
		"2":  "Departure Warp",
		"11": "Character Event Warp",
		"12": "Light Cone Event Warp",
		"21": "Character Collaboration Warp",
		"22": "Light Cone Collaboration Warp",
	},
	game.Nap: {
		"1": "Stable Channel",
		"2": "Exclusive Channel",
		"3": "W-Engine Channel",
		"5": "Bangboo Channel",
	},
}

func categoryName(f game.Family, code string) string {
	if name, ok := categoryNames[f][code]; ok {
		return name
	}
	return code
}
