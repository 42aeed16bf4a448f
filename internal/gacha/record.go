package gacha

import (
	"encoding/json"
	"fmt"
)

// RawRecord is one pull as returned by the vendor API. Every field is text.
type RawRecord struct {
	UID       string `json:"uid"`
	GachaID   string `json:"gacha_id,omitempty"`
	GachaType string `json:"gacha_type"`
	ItemID    string `json:"item_id"`
	Count     string `json:"count,omitempty"`
	Time      string `json:"time"`
	Name      string `json:"name,omitempty"`
	Lang      string `json:"lang,omitempty"`
	ItemType  string `json:"item_type,omitempty"`
	RankType  string `json:"rank_type,omitempty"`
	ID        string `json:"id"`
}

// Response is the envelope of every gacha log API reply.
type Response struct {
	Retcode int           `json:"retcode"`
	Message string        `json:"message"`
	Data    *ResponseData `json:"data"`
}

// ResponseData is one page of a category.
type ResponseData struct {
	Page           flexString  `json:"page,omitempty"`
	Size           flexString  `json:"size,omitempty"`
	List           []RawRecord `json:"list"`
	Region         string      `json:"region,omitempty"`
	RegionTimeZone *int        `json:"region_time_zone,omitempty"`
}

// CategoryLog is every record of one category in server order, with the
// region details reported alongside them.
type CategoryLog struct {
	Code           string
	Records        []RawRecord
	Region         string
	RegionTimeZone *int
}

// flexString accepts a JSON string or number. Titles disagree on which one
// they send for page counters.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(n.String())
	return nil
}
