package ops

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/gachalog/internal/db"
	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/gacha"
	"github.com/hpungsan/gachalog/internal/game"
	"github.com/hpungsan/gachalog/internal/uigf"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Families []game.Family
	Region   game.Region // default: cn

	// URL skips discovery. Only valid with a single title.
	URL string

	// Path is the output file. When empty the document is written to Out.
	Path string
	Out  io.Writer
}

// ExportedCollection describes one collection in the written document.
type ExportedCollection struct {
	Game       string `json:"game"`
	UID        string `json:"uid"`
	Items      int    `json:"items"`
	Categories int    `json:"categories"`
}

// SkippedTitle is a title that produced no collection in a multi-title export.
type SkippedTitle struct {
	Game    string           `json:"game"`
	Code    errors.ErrorCode `json:"code,omitempty"`
	Message string           `json:"message"`
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path        string               `json:"path,omitempty"`
	Collections []ExportedCollection `json:"collections"`
	Skipped     []SkippedTitle       `json:"skipped,omitempty"`
	ExportedAt  int64                `json:"exported_at"`
}

// Export fetches each requested title and writes one UIGF document.
// With a single title any failure is returned. With several, a failing
// title is skipped and the export fails only when none succeed.
func Export(ctx context.Context, rt *Runtime, input ExportInput) (*ExportOutput, error) {
	if len(input.Families) == 0 {
		return nil, errors.NewInvalidRequest("at least one title is required")
	}
	if input.URL != "" && len(input.Families) > 1 {
		return nil, errors.NewInvalidRequest("url can only be used with a single title")
	}
	if input.Path == "" && input.Out == nil {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Path != "" {
		if err := ValidatePath(input.Path, PathCheckWrite); err != nil {
			return nil, err
		}
	}

	region := input.Region
	if region == "" {
		region = game.CN
	}

	var explicit *gacha.Endpoint
	if input.URL != "" {
		var err error
		if explicit, err = gacha.ParseEndpoint(input.URL); err != nil {
			return nil, err
		}
	}

	log := rt.logger()
	agg := &gacha.Aggregator{Fetcher: rt.Fetcher, Logger: log}

	var (
		cols    []*gacha.Collection
		skipped []SkippedTitle
	)
	for _, f := range input.Families {
		t := game.Type{Family: f, Region: region}
		col, err := exportTitle(ctx, rt, agg, t, explicit)
		if err != nil {
			if len(input.Families) == 1 || ctx.Err() != nil || errors.Is(err, errors.ErrCancelled) {
				return nil, err
			}
			log.Warn("skipping title", "game", t.String(), "err", err)
			skip := SkippedTitle{Game: string(f), Message: err.Error()}
			if gErr, ok := errors.As(err); ok {
				skip.Code = gErr.Code
				skip.Message = gErr.Message
			}
			skipped = append(skipped, skip)
			continue
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		gErr := errors.NewNoDataFound("any title")
		gErr.Details["skipped"] = skipped
		return nil, gErr
	}

	now := rt.now()
	doc := Assemble(cols, now, rt.Version)
	if err := WriteDocument(doc, input.Path, input.Out); err != nil {
		return nil, err
	}

	out := &ExportOutput{
		Path:        input.Path,
		Collections: make([]ExportedCollection, 0, len(cols)),
		Skipped:     skipped,
		ExportedAt:  now.Unix(),
	}
	for _, c := range cols {
		out.Collections = append(out.Collections, ExportedCollection{
			Game:       string(c.Family),
			UID:        c.UID(),
			Items:      c.Items(),
			Categories: c.Categories(),
		})
	}

	rt.recordExport(out, region)
	return out, nil
}

func exportTitle(ctx context.Context, rt *Runtime, agg *gacha.Aggregator, t game.Type, ep *gacha.Endpoint) (*gacha.Collection, error) {
	if ep == nil {
		if rt.Locator == nil {
			return nil, errors.NewInvalidRequest("no url given and discovery is unavailable")
		}
		var err error
		if ep, err = rt.Locator.Discover(ctx, t); err != nil {
			return nil, err
		}
	}
	return agg.FetchFamily(ctx, ep, t.Family)
}

// Assemble builds the export document from fetched collections, in the
// order given.
func Assemble(cols []*gacha.Collection, now time.Time, version string) *uigf.Document {
	doc := &uigf.Document{Info: uigf.NewInfo(AppName, version, now)}
	for _, c := range cols {
		c.AddTo(doc)
	}
	return doc
}

// WriteDocument writes doc as compact JSON. With a path the file is
// replaced atomically; otherwise the document and a newline go to w.
func WriteDocument(doc *uigf.Document, path string, w io.Writer) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("encode document: %w", err))
	}

	if path == "" {
		if w == nil {
			return errors.NewInvalidRequest("path is required")
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return errors.NewInternal(fmt.Errorf("write document: %w", err))
		}
		return nil
	}

	if err := ValidatePath(path, PathCheckWrite); err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes data to a temp file next to path, syncs it and
// renames it into place. An existing file survives any failure.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}

	// Close before rename (required on Windows).
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink swapped in since validation.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest("path must not be a symlink")
	}

	// On Windows, os.Rename fails if the destination exists. The existing
	// file is kept rather than risking a delete followed by a failed rename.
	if err := os.Rename(tempPath, path); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(path); statErr == nil {
				return errors.NewInvalidRequest("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return nil
}

// DefaultExportPath returns ~/.gachalog/exports/<titles>-<timestamp>.json.
func DefaultExportPath(families []game.Family, now time.Time) (string, error) {
	dir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}

	name := "all"
	if len(families) < len(game.Families) {
		parts := make([]string, len(families))
		for i, f := range families {
			parts[i] = string(f)
		}
		name = strings.Join(parts, "-")
	}

	filename := fmt.Sprintf("%s-%s.json", SanitizeForFilename(name), now.Format("2006-01-02T150405"))
	return filepath.Join(dir, filename), nil
}

// recordExport adds one ledger row per collection. Failures are logged only.
func (rt *Runtime) recordExport(out *ExportOutput, region game.Region) {
	if rt.DB == nil {
		return
	}

	var output *string
	if out.Path != "" {
		if abs, err := filepath.Abs(out.Path); err == nil {
			output = &abs
		} else {
			output = &out.Path
		}
	}
	regionName := string(region)
	entropy := ulid.Monotonic(rand.Reader, 0)
	ts := ulid.Timestamp(time.Unix(out.ExportedAt, 0))

	for _, c := range out.Collections {
		id, err := ulid.New(ts, entropy)
		if err != nil {
			rt.logger().Warn("ledger: generate id", "err", err)
			return
		}
		rec := &db.ExportRecord{
			ID:         id.String(),
			Game:       c.Game,
			Region:     &regionName,
			UID:        c.UID,
			Items:      c.Items,
			Categories: c.Categories,
			Output:     output,
			ExportedAt: out.ExportedAt,
		}
		if err := db.InsertExport(rt.DB, rec); err != nil {
			rt.logger().Warn("ledger: record export", "game", c.Game, "err", err)
		}
	}
}
