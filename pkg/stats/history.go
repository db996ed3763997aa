package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/scrutinytools/devtools/pkg/logger"
)

var historyLog = logger.New("stats:history")

// Snapshot is one stored scan with its per-language counts collapsed into
// repository totals.
type Snapshot struct {
	ID      int64
	Folder  string
	TakenAt time.Time
	Code    int
	Test    int
	Comment int
	Blank   int
}

// History persists scan summaries in SQLite so line counts can be compared
// over time.
type History struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

const historySchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    folder   TEXT    NOT NULL,
    taken_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_languages (
    snapshot_id   INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    language      TEXT    NOT NULL,
    code_lines    INTEGER NOT NULL,
    test_lines    INTEGER NOT NULL,
    comment_lines INTEGER NOT NULL,
    blank_lines   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_folder ON snapshots(folder, taken_at DESC);
`

// OpenHistory opens or creates the snapshot database at path.
func OpenHistory(path string) (*History, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	historyLog.Printf("Opened history database %s", path)
	return &History{db: db}, nil
}

// Close closes the database handle.
func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Save stores one scan summary and returns the new snapshot id.
func (h *History) Save(ctx context.Context, folder string, summaries []LanguageSummary) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if h == nil || h.db == nil {
		return 0, fmt.Errorf("history is not configured")
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (folder, taken_at) VALUES (?, ?)`,
		folder, toMillis(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot id: %w", err)
	}

	for _, s := range summaries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_languages
			   (snapshot_id, language, code_lines, test_lines, comment_lines, blank_lines)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, string(s.Language), s.Code, s.Test, s.Comment, s.Blank); err != nil {
			return 0, fmt.Errorf("insert snapshot language: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}
	historyLog.Printf("Saved snapshot %d for %s", id, folder)
	return id, nil
}

// List returns the most recent snapshots for a folder, newest first.
func (h *History) List(ctx context.Context, folder string, limit int) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h == nil || h.db == nil {
		return nil, fmt.Errorf("history is not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT s.id, s.folder, s.taken_at,
		        COALESCE(SUM(l.code_lines), 0),
		        COALESCE(SUM(l.test_lines), 0),
		        COALESCE(SUM(l.comment_lines), 0),
		        COALESCE(SUM(l.blank_lines), 0)
		   FROM snapshots s
		   LEFT JOIN snapshot_languages l ON l.snapshot_id = s.id
		  WHERE s.folder = ?
		  GROUP BY s.id
		  ORDER BY s.taken_at DESC, s.id DESC
		  LIMIT ?`,
		folder, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var takenAt int64
		if err := rows.Scan(&snap.ID, &snap.Folder, &takenAt,
			&snap.Code, &snap.Test, &snap.Comment, &snap.Blank); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.TakenAt = fromMillis(takenAt)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}
