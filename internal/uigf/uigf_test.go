package uigf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHk4eGachaType_RoundTripTable(t *testing.T) {
	want := map[string]Hk4eGachaType{
		"100": Hk4ePermanentWish,
		"200": Hk4eNoviceWish,
		"301": Hk4eCharacterEventWish,
		"302": Hk4eWeaponEventWish,
		"400": Hk4eCharacterEventWish2,
		"500": Hk4eChronicledWish,
	}
	for code, variant := range want {
		got, ok := ParseHk4eGachaType(code)
		require.True(t, ok, code)
		require.Equal(t, variant, got)
		require.Equal(t, code, variant.String())
	}

	_, ok := ParseHk4eGachaType("999")
	require.False(t, ok)
}

func TestHk4eGachaType_UIGF(t *testing.T) {
	tests := []struct {
		in   Hk4eGachaType
		want Hk4eUIGFGachaType
	}{
		{Hk4ePermanentWish, Hk4eUIGFPermanentWish},
		{Hk4eNoviceWish, Hk4eUIGFNoviceWish},
		{Hk4eCharacterEventWish, Hk4eUIGFCharacterEventWish},
		{Hk4eCharacterEventWish2, Hk4eUIGFCharacterEventWish},
		{Hk4eWeaponEventWish, Hk4eUIGFWeaponEventWish},
		{Hk4eChronicledWish, Hk4eUIGFChronicledWish},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.in.UIGF(), "gacha_type %s", tt.in)
	}

	// Every vendor banner lands in some bucket
	for _, gt := range Hk4eGachaTypes() {
		require.NotZero(t, gt.UIGF(), "gacha_type %s has no bucket", gt)
	}
}

func TestCatalogOrder(t *testing.T) {
	codes := func(n int, f func(i int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = f(i)
		}
		return out
	}

	hk4e := Hk4eGachaTypes()
	require.Equal(t, []string{"100", "200", "301", "302", "400", "500"},
		codes(len(hk4e), func(i int) string { return hk4e[i].String() }))

	hkrpg := HkrpgGachaTypes()
	require.Equal(t, []string{"1", "2", "11", "12", "21", "22"},
		codes(len(hkrpg), func(i int) string { return hkrpg[i].String() }))

	nap := NapGachaTypes()
	require.Equal(t, []string{"1", "2", "3", "5"},
		codes(len(nap), func(i int) string { return nap[i].String() }))
}

func TestCatalogAll_ReturnsCopy(t *testing.T) {
	all := NapGachaTypes()
	all[0] = NapBangbooChannel
	require.Equal(t, NapStableChannel, NapGachaTypes()[0])
}

func TestGachaType_JSON(t *testing.T) {
	data, err := json.Marshal(HkrpgLightConeEventWarp)
	require.NoError(t, err)
	require.Equal(t, `"12"`, string(data))

	var gt HkrpgGachaType
	require.NoError(t, json.Unmarshal([]byte(`"21"`), &gt))
	require.Equal(t, HkrpgCharacterCollaborationWarp, gt)

	require.Error(t, json.Unmarshal([]byte(`"7"`), &gt))
	require.Error(t, json.Unmarshal([]byte(`7`), &gt))

	_, err = json.Marshal(NapGachaType(0))
	require.Error(t, err)
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want LanguageCode
		ok   bool
	}{
		{"zh-cn", LangZhCN, true},
		{"zh-CN", LangZhCN, true},
		{"zh_cn", LangZhCN, true},
		{"EN-US", LangEnUS, true},
		{" ja-jp ", LangJaJP, true},
		{"pt-pt", LangPtPT, true},
		{"xx-yy", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			require.Equal(t, tt.want, got, tt.in)
		}
	}

	require.Equal(t, "zh-CN", LangZhCN.Tag().String())
}

func TestUID_JSON(t *testing.T) {
	data, err := json.Marshal(UID("100000001"))
	require.NoError(t, err)
	require.Equal(t, `100000001`, string(data))

	data, err = json.Marshal(UID("abc"))
	require.NoError(t, err)
	require.Equal(t, `"abc"`, string(data))

	var u UID
	require.NoError(t, json.Unmarshal([]byte(`600000123`), &u))
	require.Equal(t, UID("600000123"), u)
	require.NoError(t, json.Unmarshal([]byte(`"700000123"`), &u))
	require.Equal(t, UID("700000123"), u)
	require.Error(t, json.Unmarshal([]byte(`true`), &u))
}

func TestDocument_MarshalOmitsEmptyTitles(t *testing.T) {
	doc := Document{
		Info: NewInfo("gachalog", "1.2.3", time.Unix(1700000000, 0)),
		Nap: []Nap{{
			UID:      "1000001",
			Timezone: 8,
			List: []NapItem{{
				GachaType: NapExclusiveChannel,
				ItemID:    "1041",
				Time:      "2024-07-04 12:00:00",
				ID:        "1720000000000000001",
			}},
		}},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.NotContains(t, raw, "hk4e")
	require.NotContains(t, raw, "hkrpg")
	require.Contains(t, raw, "nap")

	info := raw["info"].(map[string]any)
	require.Equal(t, float64(1700000000), info["export_timestamp"])
	require.Equal(t, "v4.0", info["version"])

	item := raw["nap"].([]any)[0].(map[string]any)["list"].([]any)[0].(map[string]any)
	require.Equal(t, "2", item["gacha_type"])
	require.NotContains(t, item, "gacha_id")
	require.NotContains(t, item, "name")
}

func TestParseDocument(t *testing.T) {
	input := `{
		"info": {"export_timestamp": "1700000000", "export_app": "x", "export_app_version": "1", "version": "v4.0"},
		"hk4e": [{
			"uid": "100000001", "timezone": 8, "lang": "zh-cn",
			"list": [{"uigf_gacha_type": "301", "gacha_type": "400", "item_id": "", "time": "2024-01-01 00:00:00", "id": "1"}]
		}]
	}`

	doc, err := ParseDocument([]byte(input))
	require.NoError(t, err)
	require.Equal(t, Timestamp(1700000000), doc.Info.ExportTimestamp)
	require.Len(t, doc.Hk4e, 1)
	require.Equal(t, UID("100000001"), doc.Hk4e[0].UID)
	require.NotNil(t, doc.Hk4e[0].Lang)
	require.Equal(t, LangZhCN, *doc.Hk4e[0].Lang)
	require.Equal(t, Hk4eCharacterEventWish2, doc.Hk4e[0].List[0].GachaType)
	require.Equal(t, Hk4eUIGFCharacterEventWish, doc.Hk4e[0].List[0].UIGFGachaType)
	require.False(t, doc.Empty())

	_, err = ParseDocument([]byte(`{"info": {}, "nap": [{"uid": 1, "timezone": 8, "list": [{"gacha_type": "9"}]}]}`))
	require.Error(t, err)
}
