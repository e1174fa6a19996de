package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/pkg/filesystem"
	"github.com/doeshing/foxbrief/internal/ports"
)

// SQLiteStore persists report runs in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.foxbrief/history/history.db database.
// When the database cannot be opened it degrades to the jsonl file store.
func NewSQLiteStore() *SQLiteStore {
	path := filepath.Join(filesystem.UserHomeDir(), ".foxbrief", "history", "history.db")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		workspace_slug TEXT,
		thread_slug TEXT,
		ioc_count INTEGER,
		question_count INTEGER,
		turns_ok INTEGER,
		turns_failed INTEGER,
		status TEXT
	);`)
	return err
}

// Save inserts a new run record.
func (s *SQLiteStore) Save(record domain.RunRecord) error {
	if s.db == nil {
		return (&FileStore{path: jsonlPath(s.path)}).Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO runs
		(timestamp, workspace_slug, thread_slug, ioc_count, question_count, turns_ok, turns_failed, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339),
		record.WorkspaceSlug,
		record.ThreadSlug,
		record.IOCCount,
		record.QuestionCount,
		record.TurnsOK,
		record.TurnsFailed,
		record.Status,
	)
	return err
}

// Records returns run entries, newest first (limit/search optional). Search
// matches workspace or thread slug.
func (s *SQLiteStore) Records(limit int, search string) ([]domain.RunRecord, error) {
	if s.db == nil {
		return (&FileStore{path: jsonlPath(s.path)}).Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, workspace_slug, thread_slug, ioc_count, question_count, turns_ok, turns_failed, status FROM runs")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE workspace_slug LIKE ? OR thread_slug LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ts string
		if err := rows.Scan(&ts, &rec.WorkspaceSlug, &rec.ThreadSlug, &rec.IOCCount,
			&rec.QuestionCount, &rec.TurnsOK, &rec.TurnsFailed, &rec.Status); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func jsonlPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "history.jsonl")
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
