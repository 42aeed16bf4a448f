package gacha

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hpungsan/gachalog/internal/errors"
)

// PageSize is the number of records requested per page.
const PageSize = 20

// endpointKeys are the query parameters kept on a validated endpoint.
var endpointKeys = map[string]bool{
	"authkey":     true,
	"authkey_ver": true,
	"sign_type":   true,
	"game_biz":    true,
	"lang":        true,
}

// Endpoint is a gacha log URL reduced to its authorization parameters.
// Callers add category and cursor parameters per request.
type Endpoint struct {
	u *url.URL
}

// Sanitize keeps only the recognized query parameters of u, in their
// original order and with their original values.
func Sanitize(u *url.URL) *Endpoint {
	clean := *u
	clean.Fragment = ""
	clean.RawFragment = ""

	kept := make([]string, 0, len(endpointKeys))
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !endpointKeys[key] {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			// Malformed escape: pass the value through untouched.
			kept = append(kept, url.QueryEscape(key)+"="+rawValue)
			continue
		}
		kept = append(kept, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	clean.RawQuery = strings.Join(kept, "&")
	clean.ForceQuery = false
	return &Endpoint{u: &clean}
}

// ParseEndpoint parses a user-supplied URL and sanitizes it.
func ParseEndpoint(raw string) (*Endpoint, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid url: %v", err))
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, errors.NewInvalidRequest("url must be http or https")
	}
	if u.Host == "" {
		return nil, errors.NewInvalidRequest("url has no host")
	}
	ep := Sanitize(u)
	if !ep.hasValue("authkey") {
		return nil, errors.NewInvalidRequest("url has no authkey parameter")
	}
	return ep, nil
}

// hasValue reports whether key is present with a non-empty value. It reads
// the raw query so a value kept with a malformed escape still counts.
func (e *Endpoint) hasValue(key string) bool {
	for _, pair := range strings.Split(e.u.RawQuery, "&") {
		if k, v, _ := strings.Cut(pair, "="); k == key && v != "" {
			return true
		}
	}
	return false
}

// URL returns a copy of the endpoint URL.
func (e *Endpoint) URL() *url.URL {
	u := *e.u
	return &u
}

func (e *Endpoint) String() string {
	return e.u.String()
}

// pageURL returns the request URL for one page of a category.
// The category code is sent twice because the API reads both names.
func (e *Endpoint) pageURL(code, endID string) string {
	extra := url.Values{}
	extra.Set("gacha_type", code)
	extra.Set("real_gacha_type", code)
	extra.Set("size", strconv.Itoa(PageSize))
	if endID != "" {
		extra.Set("end_id", endID)
	}

	u := *e.u
	if u.RawQuery == "" {
		u.RawQuery = extra.Encode()
	} else {
		u.RawQuery += "&" + extra.Encode()
	}
	return u.String()
}
