package ops

import (
	"fmt"
	"io"
	"strings"

	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/report"
	"github.com/hpungsan/gachalog/internal/uigf"
)

// maxDocumentBytes bounds how much of a document Summary will read.
const maxDocumentBytes = 64 << 20

// Summary formats.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// SummaryInput contains parameters for the Summary operation.
type SummaryInput struct {
	Path   string
	Format string // md (default) or html
}

// SummaryOutput contains the rendered report and the structured data behind it.
type SummaryOutput struct {
	Path        string              `json:"path"`
	Format      string              `json:"format"`
	Collections []report.Collection `json:"collections"`
	Rendered    string              `json:"rendered"`
}

// Summary reads an exported document and renders a pull summary.
func Summary(input SummaryInput) (*SummaryOutput, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatHTML {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown format %q (want md or html)", input.Format))
	}

	doc, err := ReadDocument(input.Path)
	if err != nil {
		return nil, err
	}

	out := &SummaryOutput{
		Path:        input.Path,
		Format:      format,
		Collections: report.Analyze(doc),
	}
	if out.Collections == nil {
		out.Collections = []report.Collection{}
	}
	if format == FormatHTML {
		if out.Rendered, err = report.HTML(doc); err != nil {
			return nil, errors.NewInternal(err)
		}
	} else {
		out.Rendered = report.Markdown(doc)
	}
	return out, nil
}

// ReadDocument loads a UIGF document from path.
func ReadDocument(path string) (*uigf.Document, error) {
	if err := ValidatePath(path, PathCheckRead); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(path)
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open document: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes+1))
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read document: %w", err))
	}
	if len(data) > maxDocumentBytes {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("document exceeds %d bytes", maxDocumentBytes))
	}

	doc, err := uigf.ParseDocument(data)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}
	return doc, nil
}
