// Package uigf implements the UIGF v4.0 interchange document: the envelope,
// the per-title collections and the fixed category catalogs.
package uigf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Version is the interchange format version written to Info.Version.
const Version = "v4.0"

// Document is a UIGF v4.0 export. Titles without data are omitted.
type Document struct {
	Info  Info    `json:"info"`
	Hk4e  []Hk4e  `json:"hk4e,omitempty"`
	Hkrpg []Hkrpg `json:"hkrpg,omitempty"`
	Nap   []Nap   `json:"nap,omitempty"`
}

// Info is the document envelope.
type Info struct {
	ExportTimestamp Timestamp `json:"export_timestamp"`
	ExportApp       string    `json:"export_app"`
	ExportAppVer    string    `json:"export_app_version"`
	Version         string    `json:"version"`
}

// NewInfo stamps an envelope for the given app.
func NewInfo(app, appVersion string, now time.Time) Info {
	return Info{
		ExportTimestamp: Timestamp(now.Unix()),
		ExportApp:       app,
		ExportAppVer:    appVersion,
		Version:         Version,
	}
}

// Empty reports whether the document carries no collections.
func (d *Document) Empty() bool {
	return len(d.Hk4e) == 0 && len(d.Hkrpg) == 0 && len(d.Nap) == 0
}

// ParseDocument decodes a document, rejecting unknown category codes.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse uigf document: %w", err)
	}
	return &doc, nil
}

// UID is an account id. Numeric ids are written as JSON numbers,
// and both numbers and strings are accepted when reading.
type UID string

func (u UID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseUint(string(u), 10, 64); err == nil {
		return []byte(strconv.FormatUint(n, 10)), nil
	}
	return json.Marshal(string(u))
}

func (u *UID) UnmarshalJSON(data []byte) error {
	s, err := stringOrNumber(data)
	if err != nil {
		return fmt.Errorf("uigf: uid: %w", err)
	}
	*u = UID(s)
	return nil
}

// Timestamp is an export time in Unix seconds, accepted as number or string.
type Timestamp int64

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := stringOrNumber(data)
	if err != nil {
		return fmt.Errorf("uigf: export_timestamp: %w", err)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("uigf: export_timestamp: %w", err)
	}
	*t = Timestamp(n)
	return nil
}

func stringOrNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
