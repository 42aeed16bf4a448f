package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
	"github.com/hpungsan/gachalog/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	rt *ops.Runtime
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(rt *ops.Runtime) *Handlers {
	return &Handlers{rt: rt}
}

// Request types for each tool

// URLRequest represents the arguments for gacha_url.
type URLRequest struct {
	Game string `json:"game"`
}

// ExportRequest represents the arguments for gacha_export.
type ExportRequest struct {
	Game   string `json:"game"`
	Global bool   `json:"global,omitempty"`
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
}

// SummaryRequest represents the arguments for gacha_summary.
type SummaryRequest struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
}

// LedgerListRequest represents the arguments for ledger_list.
type LedgerListRequest struct {
	Game   string `json:"game,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// HandleURL handles the gacha_url tool call.
func (h *Handlers) HandleURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[URLRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.URL(ctx, h.rt, ops.URLInput{Game: input.Game})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleExport handles the gacha_export tool call. Stdout carries the MCP
// transport, so the document always goes to a file.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	families, err := parseFamilies(input.Game)
	if err != nil {
		return errorResult(err), nil
	}

	path := strings.TrimSpace(input.Path)
	if path == "" {
		if path, err = ops.DefaultExportPath(families, time.Now()); err != nil {
			return errorResult(err), nil
		}
	}

	result, err := ops.Export(ctx, h.rt, ops.ExportInput{
		Families: families,
		Region:   game.RegionFor(input.Global),
		URL:      input.URL,
		Path:     path,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSummary handles the gacha_summary tool call.
func (h *Handlers) HandleSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SummaryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Summary(ops.SummaryInput{
		Path:   input.Path,
		Format: input.Format,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleLedgerList handles the ledger_list tool call.
func (h *Handlers) HandleLedgerList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LedgerListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListLedger(h.rt.DB, ops.LedgerInput{
		Game:   input.Game,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

func parseFamilies(s string) ([]game.Family, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return game.Families, nil
	}
	f, err := game.ParseFamily(s)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}
	return []game.Family{f}, nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if gErr, ok := errors.As(err); ok {
		msg := gErr.Message
		// Keep wrapper context such as "gacha_type 301 page 2: ".
		if full := err.Error(); full != gErr.Error() {
			msg = strings.TrimSuffix(full, gErr.Error()) + gErr.Message
		}
		errorObj := map[string]any{
			"code":    gErr.Code,
			"message": msg,
			"status":  gErr.Status,
		}
		if gErr.Code != errors.ErrInternal && gErr.Details != nil {
			errorObj["details"] = gErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
