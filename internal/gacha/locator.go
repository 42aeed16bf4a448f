package gacha

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
)

// chunkDelimiter separates cache entries in data_2. It is left over from
// HTTP/1.1 chunk framing in the raw cache.
const chunkDelimiter = "1/0/"

// cacheBlob is the cache file inside the newest webCaches subdirectory.
var cacheBlob = filepath.Join("Cache", "Cache_Data", "data_2")

// candidatePattern matches a gacha log URL up to its end_id marker.
var candidatePattern = regexp.MustCompile(
	`https://[^\s"'<>\x{FFFD}]+?/api/getGachaLog\?[^\s"'<>\x{FFFD}]*?authkey=[^\s"'<>\x{FFFD}]+?end_id=`)

// Validator reports whether a candidate URL is accepted by the live API.
type Validator func(ctx context.Context, u *url.URL) bool

// Locator finds a working gacha log endpoint from a client's local files.
type Locator struct {
	// LocalLow is the directory holding the vendor's client logs
	// (%USERPROFILE%/AppData/LocalLow on Windows).
	LocalLow string

	// Validate probes a candidate. Candidates are tried in priority order
	// and the first accepted one wins.
	Validate Validator

	Logger *slog.Logger
}

// Discover locates the client log for t, follows it to the install
// directory and returns the freshest cached URL that passes validation.
func (l *Locator) Discover(ctx context.Context, t game.Type) (*Endpoint, error) {
	logPath := t.LogPath(l.LocalLow)
	data, err := os.ReadFile(logPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewLogNotFound(logPath, nil)
		}
		return nil, errors.NewLogNotFound(logPath, err)
	}

	dataDir, ok := FindDataPath(DecodeLossy(data), t.Family)
	if !ok {
		return nil, errors.NewPathPatternNotFound(logPath)
	}
	l.logger().Debug("found game data path", "game", t.String(), "path", dataDir)

	return l.DiscoverInDataPath(ctx, dataDir)
}

// DiscoverInDataPath scans the web cache under a game data directory.
func (l *Locator) DiscoverInDataPath(ctx context.Context, dataDir string) (*Endpoint, error) {
	cacheDir, err := LatestCacheDir(filepath.Join(filepath.FromSlash(dataDir), "webCaches"))
	if err != nil {
		return nil, err
	}

	blobPath := filepath.Join(cacheDir, cacheBlob)
	blob, err := os.ReadFile(blobPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewFileNotFound(blobPath)
		}
		return nil, errors.NewInternal(err)
	}

	candidates := Candidates(DecodeLossy(blob))
	for i, c := range candidates {
		if ctx.Err() != nil {
			return nil, errors.NewCancelled("discovery")
		}
		l.logger().Debug("probing candidate", "index", i, "host", c.Host)
		if l.Validate(ctx, c) {
			return Sanitize(c), nil
		}
	}
	return nil, errors.NewNoValidCandidate(len(candidates))
}

func (l *Locator) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// dataPathPatterns holds one install-path pattern per title. A path is an
// absolute drive-letter or POSIX path ending in one of the title's data
// folders, starting a line or following a space, quote, bracket, '=', ',' or ':'.
var dataPathPatterns = func() map[game.Family]*regexp.Regexp {
	m := make(map[game.Family]*regexp.Regexp, len(game.Families))
	for _, f := range game.Families {
		folders := make([]string, len(f.DataFolders()))
		for i, name := range f.DataFolders() {
			folders[i] = regexp.QuoteMeta(name)
		}
		m[f] = regexp.MustCompile(`(?m)(?:^|[\s'"=(\[,:])((?:[A-Za-z]:)?/[^\r\n:*?"<>|]*?(?:` + strings.Join(folders, "|") + `))`)
	}
	return m
}()

// FindDataPath returns the first install data directory for f named in a client log.
func FindDataPath(logText string, f game.Family) (string, bool) {
	re, ok := dataPathPatterns[f]
	if !ok {
		return "", false
	}
	m := re.FindStringSubmatch(logText)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LatestCacheDir returns the immediate subdirectory of root with the newest
// modification time. Ties go to the lexicographically greatest name.
func LatestCacheDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", errors.NewCacheDirNotFound(root)
	}

	var (
		best     string
		bestTime time.Time
	)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		mt := info.ModTime()
		if best == "" || mt.After(bestTime) || (mt.Equal(bestTime) && e.Name() > best) {
			best, bestTime = e.Name(), mt
		}
	}
	if best == "" {
		return "", errors.NewCacheDirNotFound(root)
	}
	return filepath.Join(root, best), nil
}

// DecodeLossy converts bytes to text, replacing invalid UTF-8 with U+FFFD.
// It never fails: the cache blob interleaves binary and text.
func DecodeLossy(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

// Candidates extracts gacha log URLs from decoded cache text, freshest first:
// chunks are visited last to first, and matches within a chunk in order.
// Repeated URLs keep only their first position.
func Candidates(text string) []*url.URL {
	chunks := strings.Split(text, chunkDelimiter)
	seen := make(map[string]bool)
	var out []*url.URL
	for i := len(chunks) - 1; i >= 0; i-- {
		for _, m := range candidatePattern.FindAllString(chunks[i], -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			u, err := url.Parse(m)
			if err != nil {
				continue
			}
			out = append(out, u)
		}
	}
	return out
}
