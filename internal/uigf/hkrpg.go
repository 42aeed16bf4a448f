package uigf

// Hkrpg holds one Honkai: Star Rail account's warps.
type Hkrpg struct {
	UID      UID           `json:"uid"`
	Timezone int           `json:"timezone"`
	Lang     *LanguageCode `json:"lang,omitempty"`
	List     []HkrpgItem   `json:"list"`
}

// HkrpgItem is one Honkai: Star Rail warp.
type HkrpgItem struct {
	GachaID   string         `json:"gacha_id"`
	GachaType HkrpgGachaType `json:"gacha_type"`
	ItemID    string         `json:"item_id"`
	Count     string         `json:"count,omitempty"`
	Time      string         `json:"time"`
	Name      string         `json:"name,omitempty"`
	ItemType  string         `json:"item_type,omitempty"`
	RankType  string         `json:"rank_type,omitempty"`
	ID        string         `json:"id"`
}

// HkrpgGachaType is a warp banner.
type HkrpgGachaType int

const (
	HkrpgStellarWarp HkrpgGachaType = iota + 1
	HkrpgDepartureWarp
	HkrpgCharacterEventWarp
	HkrpgLightConeEventWarp
	HkrpgCharacterCollaborationWarp
	HkrpgLightConeCollaborationWarp
)

var hkrpgGachaTypes = newCatalog("hkrpg gacha_type",
	entry[HkrpgGachaType]{HkrpgStellarWarp, "1"},
	entry[HkrpgGachaType]{HkrpgDepartureWarp, "2"},
	entry[HkrpgGachaType]{HkrpgCharacterEventWarp, "11"},
	entry[HkrpgGachaType]{HkrpgLightConeEventWarp, "12"},
	entry[HkrpgGachaType]{HkrpgCharacterCollaborationWarp, "21"},
	entry[HkrpgGachaType]{HkrpgLightConeCollaborationWarp, "22"},
)

// HkrpgGachaTypes returns every banner in query order.
func HkrpgGachaTypes() []HkrpgGachaType { return hkrpgGachaTypes.all() }

// ParseHkrpgGachaType maps an API code to its banner.
func ParseHkrpgGachaType(code string) (HkrpgGachaType, bool) { return hkrpgGachaTypes.parse(code) }

func (t HkrpgGachaType) String() string { return hkrpgGachaTypes.code(t) }

func (t HkrpgGachaType) MarshalJSON() ([]byte, error) { return hkrpgGachaTypes.marshal(t) }

func (t *HkrpgGachaType) UnmarshalJSON(data []byte) error {
	v, err := hkrpgGachaTypes.unmarshal(data)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
