package gacha

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
)

// fakeAPI serves a deterministic gacha log keyed by gacha_type.
type fakeAPI struct {
	mu       sync.Mutex
	records  map[string][]RawRecord
	retcodes map[string]int
	timezone *int
	// absentAtEnd serves "data": null instead of an empty list once a
	// category is exhausted.
	absentAtEnd bool
	requests    []url.Values
}

func newFakeAPI(t *testing.T, api *fakeAPI) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := r.URL.Query()
	f.requests = append(f.requests, q)
	w.Header().Set("Content-Type", "application/json")

	code := q.Get("gacha_type")
	if rc, ok := f.retcodes[code]; ok && rc != 0 {
		_ = json.NewEncoder(w).Encode(map[string]any{"retcode": rc, "message": "authkey timeout", "data": nil})
		return
	}
	if q.Get("authkey") == "" {
		_ = json.NewEncoder(w).Encode(map[string]any{"retcode": -100, "message": "authkey error", "data": nil})
		return
	}

	all := f.records[code]
	start := 0
	if end := q.Get("end_id"); end != "" {
		for i, rec := range all {
			if rec.ID == end {
				start = i + 1
				break
			}
		}
	}
	size, _ := strconv.Atoi(q.Get("size"))
	if size <= 0 {
		size = PageSize
	}
	stop := min(start+size, len(all))
	page := all[start:stop]

	if len(page) == 0 && f.absentAtEnd {
		_ = json.NewEncoder(w).Encode(map[string]any{"retcode": 0, "message": "OK", "data": nil})
		return
	}

	data := map[string]any{
		"page":   strconv.Itoa(start/size + 1),
		"size":   strconv.Itoa(size),
		"list":   page,
		"region": "cn_gf01",
	}
	if f.timezone != nil {
		data["region_time_zone"] = *f.timezone
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"retcode": 0, "message": "OK", "data": data})
}

func (f *fakeAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) requestAt(i int) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

// makeRecords returns n records newest first, as the API delivers them.
func makeRecords(uid, code string, n int) []RawRecord {
	out := make([]RawRecord, n)
	for i := range out {
		seq := n - i
		out[i] = RawRecord{
			UID:       uid,
			GachaID:   "gid-" + code,
			GachaType: code,
			ItemID:    strconv.Itoa(10000 + seq),
			Count:     "1",
			Time:      fmt.Sprintf("2024-01-01 00:%02d:%02d", seq/60%60, seq%60),
			Name:      fmt.Sprintf("Item %d", seq),
			Lang:      "zh-cn",
			ItemType:  "Weapon",
			RankType:  "3",
			ID:        fmt.Sprintf("17000%s%08d", code, seq),
		}
	}
	return out
}

func intPtr(v int) *int { return &v }

func testEndpoint(t *testing.T, srv *httptest.Server) *Endpoint {
	t.Helper()
	ep, err := ParseEndpoint(srv.URL + "/common/gacha_record/api/getGachaLog?authkey_ver=1&sign_type=2&authkey=secret&game_biz=hkrpg_cn&lang=zh-cn&end_id=")
	if err != nil {
		t.Fatalf("ParseEndpoint() error = %v", err)
	}
	return ep
}

func testClient() *Client {
	return &Client{HTTP: &http.Client{}, PageDelay: 0}
}
