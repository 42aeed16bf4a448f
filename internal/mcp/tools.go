package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/gachalog/internal/game"
)

var urlToolDef = mcp.NewTool(
	"gacha_url",
	mcp.WithDescription("Find the gacha log URL cached by a locally installed game client. "+
		"Reads the client log and web cache, then returns the first cached URL the API accepts."),
	mcp.WithString("game",
		mcp.Required(),
		mcp.Description("Title and region"),
		mcp.Enum(game.Names()...),
	),
)

var exportToolDef = mcp.NewTool(
	"gacha_export",
	mcp.WithDescription("Fetch the complete pull history of one title, or all titles, and write it as a UIGF v4.0 JSON file. "+
		"Returns the file path and per-account counts."),
	mcp.WithString("game",
		mcp.Required(),
		mcp.Description("hk4e, hkrpg, nap or all"),
		mcp.Enum("hk4e", "hkrpg", "nap", "all"),
	),
	mcp.WithBoolean("global",
		mcp.Description("Use the global client instead of the mainland one"),
	),
	mcp.WithString("url",
		mcp.Description("Gacha log URL to use instead of discovery (single title only)"),
	),
	mcp.WithString("path",
		mcp.Description("Output .json file (default: ~/.gachalog/exports/<game>-<timestamp>.json)"),
	),
)

var summaryToolDef = mcp.NewTool(
	"gacha_summary",
	mcp.WithDescription("Summarize an exported UIGF file: pulls per banner, top-rank drops and current pity."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("UIGF .json file"),
	),
	mcp.WithString("format",
		mcp.Description("Rendered report format"),
		mcp.Enum("md", "html"),
	),
)

var ledgerListToolDef = mcp.NewTool(
	"ledger_list",
	mcp.WithDescription("List past export runs, newest first. Records counts and output paths only."),
	mcp.WithString("game",
		mcp.Description("Filter by title: hk4e, hkrpg or nap"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum rows (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Rows to skip"),
	),
)
