package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/gachalog/internal/game"
	"github.com/hpungsan/gachalog/internal/uigf"
)

func hk4eItem(gt uigf.Hk4eGachaType, id, name, rank string) uigf.Hk4eItem {
	return uigf.Hk4eItem{
		UIGFGachaType: gt.UIGF(),
		GachaType:     gt,
		Time:          "2024-01-01 00:00:00",
		Name:          name,
		RankType:      rank,
		ID:            id,
	}
}

func testDocument() *uigf.Document {
	doc := &uigf.Document{Info: uigf.NewInfo("gachalog", "1.2.0", time.Unix(1700000000, 0))}
	doc.Hk4e = []uigf.Hk4e{{
		UID:      "100000001",
		Timezone: 8,
		// Newest first, as exported; the two character banners share pity.
		List: []uigf.Hk4eItem{
			hk4eItem(uigf.Hk4eCharacterEventWish2, "1000000000000000006", "Lisa", "4"),
			hk4eItem(uigf.Hk4eCharacterEventWish, "1000000000000000005", "Xiangling", "4"),
			hk4eItem(uigf.Hk4eCharacterEventWish2, "1000000000000000004", "Furina", "5"),
			hk4eItem(uigf.Hk4eCharacterEventWish, "1000000000000000003", "Debate Club", "3"),
			hk4eItem(uigf.Hk4eCharacterEventWish, "1000000000000000002", "Slingshot", "3"),
			hk4eItem(uigf.Hk4ePermanentWish, "1000000000000000001", "Diluc", "5"),
		},
	}}
	doc.Nap = []uigf.Nap{{
		UID:      "1000001",
		Timezone: -5,
		List: []uigf.NapItem{
			{GachaType: uigf.NapExclusiveChannel, ID: "99", Name: "Ellen", RankType: "4", Time: "t2"},
			{GachaType: uigf.NapExclusiveChannel, ID: "100", Name: "Billy", RankType: "3", Time: "t3"},
			{GachaType: uigf.NapExclusiveChannel, ID: "98", Name: "Anby", RankType: "3", Time: "t1"},
		},
	}}
	return doc
}

func TestAnalyze(t *testing.T) {
	cols := Analyze(testDocument())
	require.Len(t, cols, 2)

	hk4e := cols[0]
	require.Equal(t, game.Hk4e, hk4e.Family)
	require.Equal(t, 6, hk4e.Total)
	require.Len(t, hk4e.Categories, 2)

	standard := hk4e.Categories[0]
	require.Equal(t, "100", standard.Code)
	require.Equal(t, "Standard Wish", standard.Name)
	require.Equal(t, 1, standard.TopRank)
	require.Equal(t, 0, standard.Pity)
	require.Equal(t, []TopItem{{Name: "Diluc", Time: "2024-01-01 00:00:00", Pulls: 1}}, standard.TopItems)

	event := hk4e.Categories[1]
	require.Equal(t, "301", event.Code)
	require.Equal(t, 5, event.Total)
	require.Equal(t, 1, event.TopRank)
	require.Equal(t, 3, event.TopItems[0].Pulls)
	require.Equal(t, "Furina", event.TopItems[0].Name)
	require.Equal(t, 2, event.Pity)

	nap := cols[1]
	require.Equal(t, game.Nap, nap.Family)
	require.Len(t, nap.Categories, 1)
	// Ids sort numerically: 98, 99, 100. Rank 4 is the top rank.
	require.Equal(t, []TopItem{{Name: "Ellen", Time: "t2", Pulls: 2}}, nap.Categories[0].TopItems)
	require.Equal(t, 1, nap.Categories[0].Pity)
}

func TestAnalyze_Empty(t *testing.T) {
	require.Empty(t, Analyze(&uigf.Document{}))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testDocument())

	require.True(t, strings.HasPrefix(md, "# Gacha summary\n"))
	require.Contains(t, md, "Exported by gachalog 1.2.0 at 2023-11-14 22:13 UTC (UIGF v4.0)")
	require.Contains(t, md, "## Genshin Impact (uid 100000001, UTC+8)")
	require.Contains(t, md, "| Character Event Wish | 5 | 1 | 2 |")
	require.Contains(t, md, "- Furina, 3 pulls, 2024-01-01 00:00:00")
	require.Contains(t, md, "## Zenless Zone Zero (uid 1000001, UTC-5)")
	require.Contains(t, md, "| Banner | Pulls | 4★ | Pity |")
}

func TestMarkdown_NoCollections(t *testing.T) {
	md := Markdown(&uigf.Document{Info: uigf.NewInfo("gachalog", "dev", time.Unix(0, 0))})
	require.Contains(t, md, "No collections.")
}

func TestHTML(t *testing.T) {
	out, err := HTML(testDocument())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "<!doctype html>"))
	require.Contains(t, out, "<h1>Gacha summary</h1>")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<td>Character Event Wish</td>")
	require.NotContains(t, out, "&lt;h1&gt;")
	require.Contains(t, out, `<html lang="en">`)
}

func TestHTML_LanguageFromCollection(t *testing.T) {
	doc := testDocument()
	lang := uigf.LangZhCN
	doc.Nap[0].Lang = &lang

	out, err := HTML(doc)
	require.NoError(t, err)
	require.Contains(t, out, `<html lang="zh-CN">`)
}
