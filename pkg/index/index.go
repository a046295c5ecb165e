// Package index keeps a sqlite history of the weekly notes that were created.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-weekly/pkg/models"
)

// Index manages the weekly note history
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex opens (and if needed creates) the history database at dbPath
func NewIndex(dbPath string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	schema := `
	CREATE TABLE IF NOT EXISTS weekly_notes (
		vault TEXT NOT NULL,
		path TEXT NOT NULL,
		title TEXT,
		content TEXT,
		week_start TIMESTAMP,
		created_at TIMESTAMP,
		PRIMARY KEY (vault, path)
	);

	CREATE INDEX IF NOT EXISTS idx_weekly_notes_week_start ON weekly_notes(week_start);
	`
	if _, err := idx.db.Exec(schema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS weekly_notes_fts USING fts5(
			vault UNINDEXED,
			path UNINDEXED,
			title,
			content,
			tokenize = 'porter unicode61'
		);
		`
		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// RecordNote stores or replaces a created weekly note together with its content
func (idx *Index) RecordNote(ctx context.Context, note *models.WeeklyNote, content string) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM weekly_notes WHERE vault = ? AND path = ?", note.Vault, note.Path); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO weekly_notes (vault, path, title, content, week_start, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, note.Vault, note.Path, note.Title, content, note.WeekStart, note.CreatedAt)
	if err != nil {
		return err
	}

	if idx.useFTS {
		if _, err := tx.ExecContext(ctx, "DELETE FROM weekly_notes_fts WHERE vault = ? AND path = ?", note.Vault, note.Path); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO weekly_notes_fts (vault, path, title, content)
			VALUES (?, ?, ?, ?)
		`, note.Vault, note.Path, note.Title, content)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Options for listing and searching
type Options struct {
	Vault string
	Limit int
}

func (o *Options) normalize() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.Limit <= 0 {
		o.Limit = 50
	}
	return o
}

// List returns recorded weekly notes, newest week first
func (idx *Index) List(ctx context.Context, opts *Options) ([]*models.WeeklyNote, error) {
	opts = opts.normalize()

	var conditions []string
	var args []any
	if opts.Vault != "" {
		conditions = append(conditions, "vault = ?")
		args = append(args, opts.Vault)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT vault, path, title, week_start, created_at
		FROM weekly_notes
		%s
		ORDER BY week_start DESC, created_at DESC
		LIMIT ?
	`, whereClause)
	args = append(args, opts.Limit)

	return idx.query(ctx, query, args...)
}

// Search finds recorded weekly notes whose title or content matches query
func (idx *Index) Search(ctx context.Context, query string, opts *Options) ([]*models.WeeklyNote, error) {
	opts = opts.normalize()

	var conditions []string
	var args []any
	var stmt string

	if idx.useFTS {
		if opts.Vault != "" {
			conditions = append(conditions, "m.vault = ?")
			args = append(args, opts.Vault)
		}
		conditions = append(conditions, "weekly_notes_fts MATCH ?")
		args = append(args, query)

		stmt = fmt.Sprintf(`
			SELECT m.vault, m.path, m.title, m.week_start, m.created_at
			FROM weekly_notes_fts f
			JOIN weekly_notes m ON f.vault = m.vault AND f.path = m.path
			WHERE %s
			ORDER BY rank
			LIMIT ?
		`, strings.Join(conditions, " AND "))
	} else {
		if opts.Vault != "" {
			conditions = append(conditions, "vault = ?")
			args = append(args, opts.Vault)
		}
		pattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
		conditions = append(conditions, "(title LIKE ? OR content LIKE ?)")
		args = append(args, pattern, pattern)

		stmt = fmt.Sprintf(`
			SELECT vault, path, title, week_start, created_at
			FROM weekly_notes
			WHERE %s
			ORDER BY week_start DESC
			LIMIT ?
		`, strings.Join(conditions, " AND "))
	}
	args = append(args, opts.Limit)

	return idx.query(ctx, stmt, args...)
}

func (idx *Index) query(ctx context.Context, stmt string, args ...any) ([]*models.WeeklyNote, error) {
	rows, err := idx.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.WeeklyNote
	for rows.Next() {
		note := &models.WeeklyNote{Created: true}
		if err := rows.Scan(&note.Vault, &note.Path, &note.Title, &note.WeekStart, &note.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, note)
	}

	return results, rows.Err()
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}
