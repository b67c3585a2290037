// Package index maintains an ephemeral SQLite query index derived from the
// archive document. The JSON document stays the source of truth; the index
// is rebuilt whenever the document's hash no longer matches the one recorded
// at the last rebuild. Deleting the index file is always safe.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mwhitt/arc/internal/archive"
)

// Index wraps the SQLite database derived from one archive document.
type Index struct {
	db   *sql.DB
	path string
}

// Hit is one search result.
type Hit struct {
	Index             string `json:"Index"`
	Title             string `json:"Title"`
	AuthorOrPublisher string `json:"author_or_publisher"`
	ContentMode       string `json:"content_mode"`
	CreatedAt         string `json:"created_at"`
}

// PathFor derives the index file path from the document path:
// archive_db.json -> archive_db.idx.db.
func PathFor(documentPath string) string {
	ext := filepath.Ext(documentPath)
	return strings.TrimSuffix(documentPath, ext) + ".idx.db"
}

// Open opens or creates the index at path.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}

	return &Index{db: db, path: path}, nil
}

// Close closes the underlying database.
func (x *Index) Close() error {
	return x.db.Close()
}

func createSchema(db *sql.DB) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS records (
			seq INTEGER PRIMARY KEY,
			idx TEXT NOT NULL,
			title TEXT NOT NULL,
			pub_time TEXT,
			author TEXT,
			content_mode TEXT NOT NULL,
			content TEXT,
			created_at TEXT,
			custom_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_records_idx ON records(idx);

		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			seq,
			title,
			author,
			body
		);

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	_, err := db.Exec(ddl)
	return err
}

// Rebuild clears the index and repopulates it from the given records.
// body resolves the searchable text for a record; it is consulted once per
// record and may return empty for bodies that cannot be extracted.
func (x *Index) Rebuild(records []*archive.Record, body func(*archive.Record) string) (int, error) {
	tx, err := x.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return 0, fmt.Errorf("clearing records table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM records_fts"); err != nil {
		return 0, fmt.Errorf("clearing FTS table: %w", err)
	}

	recStmt, err := tx.Prepare(`
		INSERT INTO records (seq, idx, title, pub_time, author, content_mode, content, created_at, custom_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer recStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO records_fts (seq, title, author, body)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing FTS insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, rec := range records {
		customJSON, err := json.Marshal(rec.CustomFields)
		if err != nil {
			return 0, fmt.Errorf("encoding custom fields for record %d: %w", i+1, err)
		}

		if _, err := recStmt.Exec(i+1, rec.Index, rec.Title, rec.Time,
			rec.AuthorOrPublisher, string(rec.ContentMode), rec.Content,
			rec.CreatedAt, string(customJSON)); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i+1, err)
		}

		text := ""
		if body != nil {
			text = body(rec)
		}
		if _, err := ftsStmt.Exec(i+1, rec.Title, rec.AuthorOrPublisher, text); err != nil {
			return 0, fmt.Errorf("indexing record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(records), nil
}

// Search runs a full-text query over titles, authors, and bodies.
func (x *Index) Search(query string, limit int) ([]Hit, error) {
	fts := PrepareFTSQuery(query)
	if fts == "" {
		return nil, nil
	}

	rows, err := x.db.Query(`
		SELECT r.idx, r.title, r.author, r.content_mode, r.created_at
		FROM records_fts
		JOIN records r ON r.seq = records_fts.seq
		WHERE records_fts MATCH ?
		ORDER BY records_fts.rank
		LIMIT ?`, fts, limit)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Index, &h.Title, &h.AuthorOrPublisher, &h.ContentMode, &h.CreatedAt); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// NeedsRebuild reports whether the stored source hash differs from hash.
func (x *Index) NeedsRebuild(hash string) (bool, error) {
	stored, err := x.StoredHash()
	if err != nil {
		return true, err
	}
	return stored != hash, nil
}

// StoredHash retrieves the source document hash recorded at the last rebuild.
func (x *Index) StoredHash() (string, error) {
	var hash sql.NullString
	err := x.db.QueryRow("SELECT value FROM _meta WHERE key = 'source_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

// SetStoredHash records the source document hash.
func (x *Index) SetStoredHash(hash string) error {
	_, err := x.db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('source_hash', ?)`, hash)
	return err
}

// LastRebuildTime retrieves the time of the last rebuild, zero if never.
func (x *Index) LastRebuildTime() (time.Time, error) {
	var timeStr sql.NullString
	err := x.db.QueryRow("SELECT value FROM _meta WHERE key = 'last_rebuild'").Scan(&timeStr)
	if err == sql.ErrNoRows || !timeStr.Valid {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, timeStr.String)
}

// SetLastRebuildTime records the time of the last rebuild.
func (x *Index) SetLastRebuildTime(t time.Time) error {
	_, err := x.db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('last_rebuild', ?)`,
		t.Format(time.RFC3339))
	return err
}

// ComputeSourceHash computes a SHA256 hash of the document at path.
// A missing document hashes as empty content.
func ComputeSourceHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// PrepareFTSQuery escapes special characters for FTS5 queries.
func PrepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
