package ops

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/gachalog/internal/db"
	"github.com/hpungsan/gachalog/internal/errors"
	"github.com/hpungsan/gachalog/internal/game"
)

// LedgerInput contains parameters for the ListLedger operation.
type LedgerInput struct {
	Game   string // optional title filter: hk4e, hkrpg or nap
	Limit  int
	Offset int
}

// LedgerOutput contains the result of the ListLedger operation.
type LedgerOutput struct {
	Items      []db.ExportRecord `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// ListLedger lists recorded export runs, newest first.
func ListLedger(database *sql.DB, input LedgerInput) (*LedgerOutput, error) {
	if database == nil {
		return nil, errors.NewInvalidRequest("export ledger is disabled")
	}

	filter := ""
	if strings.TrimSpace(input.Game) != "" {
		f, err := game.ParseFamily(input.Game)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		filter = string(f)
	}

	limit := normalizeLimit(input.Limit, DefaultListLimit, MaxListLimit)
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := db.ListExports(database, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.ExportRecord{}
	}

	return &LedgerOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}
