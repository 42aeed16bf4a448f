// Package mcp serves the gachalog operations as MCP tools over stdio.
package mcp

import (
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/gachalog/internal/config"
	"github.com/hpungsan/gachalog/internal/ops"
)

// KnownTypes lists the tool types accepted by disabled_types.
var KnownTypes = []string{"gacha", "ledger"}

// toolEntry pairs a tool definition with its type and a handler factory.
type toolEntry struct {
	def     mcp.Tool
	kind    string
	handler func(*Handlers) server.ToolHandlerFunc
}

var toolRegistry = map[string]toolEntry{
	"gacha_url": {
		def:     urlToolDef,
		kind:    "gacha",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleURL },
	},
	"gacha_export": {
		def:     exportToolDef,
		kind:    "gacha",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"gacha_summary": {
		def:     summaryToolDef,
		kind:    "gacha",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSummary },
	},
	"ledger_list": {
		def:     ledgerListToolDef,
		kind:    "ledger",
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLedgerList },
	},
}

// AllToolNames returns every registered tool name, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns the names that are not registered tools.
func ValidateDisabledTools(names []string) []string {
	return unknownNames(names, func(n string) bool {
		_, ok := toolRegistry[n]
		return ok
	})
}

// ValidateDisabledTypes returns the names that are not known tool types.
func ValidateDisabledTypes(names []string) []string {
	return unknownNames(names, func(n string) bool {
		for _, t := range KnownTypes {
			if t == n {
				return true
			}
		}
		return false
	})
}

func unknownNames(names []string, known func(string) bool) []string {
	unknown := make([]string, 0)
	for _, n := range names {
		if !known(n) {
			unknown = append(unknown, n)
		}
	}
	return unknown
}

// GetTypeForTool returns the type a tool belongs to ("gacha_export" → "gacha").
func GetTypeForTool(toolName string) string {
	if e, ok := toolRegistry[toolName]; ok {
		return e.kind
	}
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// ExpandTypesToTools returns the sorted tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}
	tools := make([]string, 0)
	for _, name := range AllToolNames() {
		for _, t := range types {
			if toolRegistry[name].kind == t {
				tools = append(tools, name)
				break
			}
		}
	}
	return tools
}

// disabledSet merges disabled_tools and disabled_types. ledger_list is
// also off when the runtime has no ledger.
func disabledSet(rt *ops.Runtime, cfg *config.Config) map[string]bool {
	disabled := make(map[string]bool)
	for _, name := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[name] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	if rt.DB == nil {
		disabled["ledger_list"] = true
	}
	return disabled
}

// NewServer creates an MCP server with every enabled tool registered.
func NewServer(rt *ops.Runtime, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer("gachalog", version, server.WithToolCapabilities(true))

	h := NewHandlers(rt)
	disabled := disabledSet(rt, cfg)
	for _, name := range AllToolNames() {
		if disabled[name] {
			continue
		}
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run serves the tools on stdin/stdout until stdin closes.
func Run(rt *ops.Runtime, cfg *config.Config, version string) error {
	return server.ServeStdio(NewServer(rt, cfg, version))
}
