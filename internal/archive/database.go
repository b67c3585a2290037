package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDatabaseFile is the database filename used when nothing else is
// configured.
const DefaultDatabaseFile = "archive_db.json"

// Database is the in-memory form of one archive document: a schema and the
// records that share it. It is loaded wholesale and rewritten wholesale on
// save. Concurrent writers are not guarded against; the last save wins.
type Database struct {
	Schema  *Schema   `json:"schema"`
	Records []*Record `json:"records"`

	path string
}

// New returns an empty database with the default schema, bound to path.
func New(path string) *Database {
	return &Database{
		Schema: DefaultSchema(),
		path:   path,
	}
}

// Open loads the database document at path. A missing file yields a fresh
// database with the default schema; an unreadable or malformed file yields
// a StorageError.
func Open(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(path), nil
		}
		return nil, &StorageError{Op: "load", Path: path, Err: err}
	}

	db := &Database{path: path}
	if err := json.Unmarshal(data, db); err != nil {
		return nil, &StorageError{Op: "load", Path: path, Err: fmt.Errorf("parsing document: %w", err)}
	}
	if db.Schema == nil {
		db.Schema = DefaultSchema()
	}
	db.Schema.normalize()
	return db, nil
}

// Path returns the document path this database is bound to.
func (db *Database) Path() string {
	return db.path
}

// Save rewrites the document atomically (temp file + rename in the same
// directory). The whole document is serialized on every save.
func (db *Database) Save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(db); err != nil {
		return &StorageError{Op: "save", Path: db.path, Err: fmt.Errorf("encoding document: %w", err)}
	}

	dir := filepath.Dir(db.path)
	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return &StorageError{Op: "save", Path: db.path, Err: err}
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return &StorageError{Op: "save", Path: db.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &StorageError{Op: "save", Path: db.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "save", Path: db.path, Err: err}
	}

	if err := os.Rename(tmpPath, db.path); err != nil {
		return &StorageError{Op: "save", Path: db.path, Err: err}
	}

	success = true
	return nil
}

// AddCustomField declares a custom field on the schema.
func (db *Database) AddCustomField(name, description string) error {
	return db.Schema.AddCustomField(name, description)
}

// AddRecord validates the record against the schema and appends it.
// created_at is stamped if the record does not carry one.
func (db *Database) AddRecord(rec *Record) error {
	if err := rec.Validate(db.Schema); err != nil {
		return err
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().Format(time.RFC3339)
	}
	if rec.CustomFields == nil {
		rec.CustomFields = NewFieldMap()
	}
	db.Records = append(db.Records, rec)
	return nil
}

// List returns the records in insertion order. The slice is a copy; the
// records themselves are shared.
func (db *Database) List() []*Record {
	out := make([]*Record, len(db.Records))
	copy(out, db.Records)
	return out
}

// FindByIndex returns the first record whose Index matches, or nil.
func (db *Database) FindByIndex(index string) *Record {
	for _, rec := range db.Records {
		if rec.Index == index {
			return rec
		}
	}
	return nil
}

// DeleteByIndex removes the first record whose Index matches. It returns
// an error if no record matches.
func (db *Database) DeleteByIndex(index string) error {
	for i, rec := range db.Records {
		if rec.Index == index {
			db.Records = append(db.Records[:i], db.Records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record %q not found", index)
}
