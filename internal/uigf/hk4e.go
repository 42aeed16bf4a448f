package uigf

// Hk4e holds one Genshin Impact account's pulls.
type Hk4e struct {
	UID      UID           `json:"uid"`
	Timezone int           `json:"timezone"`
	Lang     *LanguageCode `json:"lang,omitempty"`
	List     []Hk4eItem    `json:"list"`
}

// Hk4eItem is one Genshin Impact pull.
type Hk4eItem struct {
	// UIGFGachaType groups banners that share pity, e.g. both character event wishes.
	UIGFGachaType Hk4eUIGFGachaType `json:"uigf_gacha_type"`
	GachaType     Hk4eGachaType     `json:"gacha_type"`
	ItemID        string            `json:"item_id"`
	Count         string            `json:"count,omitempty"`
	// Time is local to the collection's timezone.
	Time     string `json:"time"`
	Name     string `json:"name,omitempty"`
	ItemType string `json:"item_type,omitempty"`
	RankType string `json:"rank_type,omitempty"`
	ID       string `json:"id"`
}

// Hk4eGachaType is a wish banner as reported by the vendor API.
type Hk4eGachaType int

const (
	Hk4ePermanentWish Hk4eGachaType = iota + 1
	Hk4eNoviceWish
	Hk4eCharacterEventWish
	Hk4eWeaponEventWish
	Hk4eCharacterEventWish2
	Hk4eChronicledWish
)

var hk4eGachaTypes = newCatalog("hk4e gacha_type",
	entry[Hk4eGachaType]{Hk4ePermanentWish, "100"},
	entry[Hk4eGachaType]{Hk4eNoviceWish, "200"},
	entry[Hk4eGachaType]{Hk4eCharacterEventWish, "301"},
	entry[Hk4eGachaType]{Hk4eWeaponEventWish, "302"},
	entry[Hk4eGachaType]{Hk4eCharacterEventWish2, "400"},
	entry[Hk4eGachaType]{Hk4eChronicledWish, "500"},
)

// Hk4eGachaTypes returns every banner in query order.
func Hk4eGachaTypes() []Hk4eGachaType { return hk4eGachaTypes.all() }

// ParseHk4eGachaType maps an API code to its banner.
func ParseHk4eGachaType(code string) (Hk4eGachaType, bool) { return hk4eGachaTypes.parse(code) }

func (t Hk4eGachaType) String() string { return hk4eGachaTypes.code(t) }

func (t Hk4eGachaType) MarshalJSON() ([]byte, error) { return hk4eGachaTypes.marshal(t) }

func (t *Hk4eGachaType) UnmarshalJSON(data []byte) error {
	v, err := hk4eGachaTypes.unmarshal(data)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UIGF returns the interchange bucket for the banner.
func (t Hk4eGachaType) UIGF() Hk4eUIGFGachaType {
	switch t {
	case Hk4ePermanentWish:
		return Hk4eUIGFPermanentWish
	case Hk4eNoviceWish:
		return Hk4eUIGFNoviceWish
	case Hk4eCharacterEventWish, Hk4eCharacterEventWish2:
		return Hk4eUIGFCharacterEventWish
	case Hk4eWeaponEventWish:
		return Hk4eUIGFWeaponEventWish
	case Hk4eChronicledWish:
		return Hk4eUIGFChronicledWish
	}
	return 0
}

// Hk4eUIGFGachaType is the coarser interchange bucket of a wish banner.
type Hk4eUIGFGachaType int

const (
	Hk4eUIGFPermanentWish Hk4eUIGFGachaType = iota + 1
	Hk4eUIGFNoviceWish
	Hk4eUIGFCharacterEventWish
	Hk4eUIGFWeaponEventWish
	Hk4eUIGFChronicledWish
)

var hk4eUIGFGachaTypes = newCatalog("hk4e uigf_gacha_type",
	entry[Hk4eUIGFGachaType]{Hk4eUIGFPermanentWish, "100"},
	entry[Hk4eUIGFGachaType]{Hk4eUIGFNoviceWish, "200"},
	entry[Hk4eUIGFGachaType]{Hk4eUIGFCharacterEventWish, "301"},
	entry[Hk4eUIGFGachaType]{Hk4eUIGFWeaponEventWish, "302"},
	entry[Hk4eUIGFGachaType]{Hk4eUIGFChronicledWish, "500"},
)

// Hk4eUIGFGachaTypes returns every interchange bucket.
func Hk4eUIGFGachaTypes() []Hk4eUIGFGachaType { return hk4eUIGFGachaTypes.all() }

func (t Hk4eUIGFGachaType) String() string { return hk4eUIGFGachaTypes.code(t) }

func (t Hk4eUIGFGachaType) MarshalJSON() ([]byte, error) { return hk4eUIGFGachaTypes.marshal(t) }

func (t *Hk4eUIGFGachaType) UnmarshalJSON(data []byte) error {
	v, err := hk4eUIGFGachaTypes.unmarshal(data)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
