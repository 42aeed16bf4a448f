// Package game names the supported titles and the local file conventions
// of their clients.
package game

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Family is one supported title, independent of server region.
type Family string

const (
	Hk4e  Family = "hk4e"  // Genshin Impact
	Hkrpg Family = "hkrpg" // Honkai: Star Rail
	Nap   Family = "nap"   // Zenless Zone Zero
)

// Families lists every title in export order.
var Families = []Family{Hk4e, Hkrpg, Nap}

// DisplayName returns the title's English name.
func (f Family) DisplayName() string {
	switch f {
	case Hk4e:
		return "Genshin Impact"
	case Hkrpg:
		return "Honkai: Star Rail"
	case Nap:
		return "Zenless Zone Zero"
	}
	return string(f)
}

// DataFolders returns the install folder names the client log mentions.
func (f Family) DataFolders() []string {
	switch f {
	case Hk4e:
		return []string{"GenshinImpact_Data", "YuanShen_Data"}
	case Hkrpg:
		return []string{"StarRail_Data"}
	case Nap:
		return []string{"ZenlessZoneZero_Data"}
	}
	return nil
}

// TopRank is the rank_type of the rarest items.
func (f Family) TopRank() string {
	if f == Nap {
		return "4"
	}
	return "5"
}

// Region selects the mainland or global client.
type Region string

const (
	CN     Region = "cn"
	Global Region = "global"
)

// RegionFor maps the CLI --global switch to a Region.
func RegionFor(global bool) Region {
	if global {
		return Global
	}
	return CN
}

// Type is a title installed for one region.
type Type struct {
	Family Family
	Region Region
}

var logPaths = map[Type]string{
	{Hk4e, CN}:      "miHoYo/原神/output_log.txt",
	{Hk4e, Global}:  "miHoYo/Genshin Impact/output_log.txt",
	{Hkrpg, CN}:     "miHoYo/崩坏：星穹铁道/Player.log",
	{Hkrpg, Global}: "miHoYo/Cognosphere/Star Rail/Player.log",
	{Nap, CN}:       "miHoYo/绝区零/Player.log",
	{Nap, Global}:   "miHoYo/ZenlessZoneZero/Player.log",
}

// LogPath returns the client log location under the LocalLow directory.
func (t Type) LogPath(localLow string) string {
	return filepath.Join(localLow, filepath.FromSlash(logPaths[t]))
}

// String returns the compact name used on the command line, e.g. "hk4ecn".
func (t Type) String() string {
	return string(t.Family) + string(t.Region)
}

// Parse accepts the compact names produced by Type.String.
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t := range logPaths {
		if t.String() == s {
			return t, nil
		}
	}
	return Type{}, fmt.Errorf("invalid game %q (want one of %s)", s, strings.Join(Names(), ", "))
}

// ParseFamily accepts "hk4e", "hkrpg" or "nap".
func ParseFamily(s string) (Family, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Families {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid title %q (want hk4e, hkrpg or nap)", s)
}

// Names lists every compact game name in a stable order.
func Names() []string {
	names := make([]string, 0, len(logPaths))
	for _, f := range Families {
		for _, r := range []Region{CN, Global} {
			names = append(names, Type{f, r}.String())
		}
	}
	return names
}
