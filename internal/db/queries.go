package db

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/gachalog/internal/errors"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.GachaError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// ExportRecord is one collection written by an export run.
// The ledger never stores pulls or endpoints.
type ExportRecord struct {
	ID         string  `json:"id"`
	Game       string  `json:"game"`
	Region     *string `json:"region,omitempty"`
	UID        string  `json:"uid"`
	Items      int     `json:"items"`
	Categories int     `json:"categories"`
	// Output is the file written, or nil for stdout.
	Output     *string `json:"output,omitempty"`
	ExportedAt int64   `json:"exported_at"`
}

// InsertExport records one exported collection.
func InsertExport(db *sql.DB, r *ExportRecord) error {
	query := `
		INSERT INTO exports (
			id, game, region, uid, items, categories, output, exported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		r.ID, r.Game, toNullString(r.Region), r.UID,
		r.Items, r.Categories, toNullString(r.Output), r.ExportedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// ListExports returns export records newest first, plus the total count.
// An empty game matches every title.
func ListExports(db *sql.DB, game string, limit, offset int) ([]ExportRecord, int, error) {
	where := ""
	args := []any{}
	if game != "" {
		where = "WHERE game = ?"
		args = append(args, game)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM exports "+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, game, region, uid, items, categories, output, exported_at
		FROM exports ` + where + `
		ORDER BY exported_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []ExportRecord
	for rows.Next() {
		var (
			r              ExportRecord
			region, output sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Game, &region, &r.UID, &r.Items, &r.Categories, &output, &r.ExportedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		r.Region = fromNullString(region)
		r.Output = fromNullString(output)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return out, total, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite reports both UNIQUE and PRIMARY KEY violations this way
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
