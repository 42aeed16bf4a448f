package gacha

import (
	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
	"github.com/hpungsan/gachalog/internal/uigf"
)

// InferTimezone guesses a Genshin Impact account's UTC offset from its uid.
// Accounts starting with 6 are America, 7 Europe, and all others use UTC+8.
func InferTimezone(uid string) int {
	if uid == "" {
		return 8
	}
	switch uid[0] {
	case '6':
		return -5
	case '7':
		return 1
	}
	return 8
}

// timezoneFunc resolves a category's UTC offset.
type timezoneFunc func(log *CategoryLog, uid string) (int, error)

func hk4eTimezone(log *CategoryLog, uid string) (int, error) {
	if log.RegionTimeZone != nil {
		return *log.RegionTimeZone, nil
	}
	return InferTimezone(uid), nil
}

func reportedTimezone(f game.Family) timezoneFunc {
	return func(log *CategoryLog, _ string) (int, error) {
		if log.RegionTimeZone == nil {
			return 0, errors.NewMissingTimezone(string(f))
		}
		return *log.RegionTimeZone, nil
	}
}

func checkRequired(r RawRecord) error {
	if r.ID == "" {
		return errors.NewInvalidRecord(r.ID, "id")
	}
	if r.Time == "" {
		return errors.NewInvalidRecord(r.ID, "time")
	}
	return nil
}

// NormalizeHk4e converts a raw Genshin Impact record.
func NormalizeHk4e(r RawRecord) (uigf.Hk4eItem, error) {
	if err := checkRequired(r); err != nil {
		return uigf.Hk4eItem{}, err
	}
	gt, ok := uigf.ParseHk4eGachaType(r.GachaType)
	if !ok {
		return uigf.Hk4eItem{}, errors.NewInvalidCategoryCode(string(game.Hk4e), r.GachaType)
	}
	return uigf.Hk4eItem{
		UIGFGachaType: gt.UIGF(),
		GachaType:     gt,
		ItemID:        r.ItemID,
		Count:         r.Count,
		Time:          r.Time,
		Name:          r.Name,
		ItemType:      r.ItemType,
		RankType:      r.RankType,
		ID:            r.ID,
	}, nil
}

// NormalizeHkrpg converts a raw Honkai: Star Rail record. gacha_id is required.
func NormalizeHkrpg(r RawRecord) (uigf.HkrpgItem, error) {
	if err := checkRequired(r); err != nil {
		return uigf.HkrpgItem{}, err
	}
	if r.GachaID == "" {
		return uigf.HkrpgItem{}, errors.NewInvalidRecord(r.ID, "gacha_id")
	}
	gt, ok := uigf.ParseHkrpgGachaType(r.GachaType)
	if !ok {
		return uigf.HkrpgItem{}, errors.NewInvalidCategoryCode(string(game.Hkrpg), r.GachaType)
	}
	return uigf.HkrpgItem{
		GachaID:   r.GachaID,
		GachaType: gt,
		ItemID:    r.ItemID,
		Count:     r.Count,
		Time:      r.Time,
		Name:      r.Name,
		ItemType:  r.ItemType,
		RankType:  r.RankType,
		ID:        r.ID,
	}, nil
}

// NormalizeNap converts a raw Zenless Zone Zero record.
func NormalizeNap(r RawRecord) (uigf.NapItem, error) {
	if err := checkRequired(r); err != nil {
		return uigf.NapItem{}, err
	}
	gt, ok := uigf.ParseNapGachaType(r.GachaType)
	if !ok {
		return uigf.NapItem{}, errors.NewInvalidCategoryCode(string(game.Nap), r.GachaType)
	}
	return uigf.NapItem{
		GachaID:   r.GachaID,
		GachaType: gt,
		ItemID:    r.ItemID,
		Count:     r.Count,
		Time:      r.Time,
		Name:      r.Name,
		ItemType:  r.ItemType,
		RankType:  r.RankType,
		ID:        r.ID,
	}, nil
}
