package uigf

// Nap holds one Zenless Zone Zero account's signal searches.
type Nap struct {
	UID      UID           `json:"uid"`
	Timezone int           `json:"timezone"`
	Lang     *LanguageCode `json:"lang,omitempty"`
	List     []NapItem     `json:"list"`
}

// NapItem is one Zenless Zone Zero signal search.
type NapItem struct {
	GachaID   string       `json:"gacha_id,omitempty"`
	GachaType NapGachaType `json:"gacha_type"`
	ItemID    string       `json:"item_id"`
	Count     string       `json:"count,omitempty"`
	Time      string       `json:"time"`
	Name      string       `json:"name,omitempty"`
	ItemType  string       `json:"item_type,omitempty"`
	RankType  string       `json:"rank_type,omitempty"`
	ID        string       `json:"id"`
}

// NapGachaType is a signal search channel.
type NapGachaType int

const (
	NapStableChannel NapGachaType = iota + 1
	NapExclusiveChannel
	NapWEngineChannel
	NapBangbooChannel
)

var napGachaTypes = newCatalog("nap gacha_type",
	entry[NapGachaType]{NapStableChannel, "1"},
	entry[NapGachaType]{NapExclusiveChannel, "2"},
	entry[NapGachaType]{NapWEngineChannel, "3"},
	entry[NapGachaType]{NapBangbooChannel, "5"},
)

// NapGachaTypes returns every channel in query order.
func NapGachaTypes() []NapGachaType { return napGachaTypes.all() }

// ParseNapGachaType maps an API code to its channel.
func ParseNapGachaType(code string) (NapGachaType, bool) { return napGachaTypes.parse(code) }

func (t NapGachaType) String() string { return napGachaTypes.code(t) }

func (t NapGachaType) MarshalJSON() ([]byte, error) { return napGachaTypes.marshal(t) }

func (t *NapGachaType) UnmarshalJSON(data []byte) error {
	v, err := napGachaTypes.unmarshal(data)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
