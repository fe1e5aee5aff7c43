package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const renamesBucketName = "renames"

// JournalFileName is the journal kept inside a receipts directory when no
// other path is configured
const JournalFileName = ".renomeador.db"

// JournalPath returns path, or the default journal file of dir when path is empty
func JournalPath(dir, path string) string {
	if path != "" {
		return path
	}
	return filepath.Join(dir, JournalFileName)
}

// DB defines the interface for the rename journal
type DB interface {
	// SaveRename stores a journal entry
	SaveRename(record *RenameRecord) error

	// GetRename retrieves a journal entry by ID
	GetRename(id string) (*RenameRecord, error)

	// ListRenames returns all journal entries, oldest first
	ListRenames() ([]*RenameRecord, error)

	// ListRun returns the journal entries of one run, oldest first
	ListRun(runID string) ([]*RenameRecord, error)

	// DeleteRename removes a journal entry
	DeleteRename(id string) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(renamesBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// OpenJournal opens the journal at path. With create unset a missing file
// is not created and OpenJournal returns nil, nil, so read-only modes leave
// no trace.
func OpenJournal(path string, create bool) (*BoltDB, error) {
	if !create {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
	}
	return NewBoltDB(path)
}

// SaveRename saves a journal entry to the database
func (b *BoltDB) SaveRename(record *RenameRecord) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(renamesBucketName))
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling rename: %w", err)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// GetRename retrieves a journal entry by ID
func (b *BoltDB) GetRename(id string) (*RenameRecord, error) {
	var record *RenameRecord
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(renamesBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("rename not found: %s", id)
		}
		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRenames returns all journal entries
func (b *BoltDB) ListRenames() ([]*RenameRecord, error) {
	return b.list(func(*RenameRecord) bool { return true })
}

// ListRun returns the journal entries written by one run
func (b *BoltDB) ListRun(runID string) ([]*RenameRecord, error) {
	return b.list(func(r *RenameRecord) bool { return r.RunID == runID })
}

func (b *BoltDB) list(keep func(*RenameRecord) bool) ([]*RenameRecord, error) {
	records := make([]*RenameRecord, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(renamesBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var record RenameRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling rename: %w", err)
			}
			if keep(&record) {
				records = append(records, &record)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// keys are random IDs, so order by time
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RenamedAt.Before(records[j].RenamedAt)
	})
	return records, nil
}

// DeleteRename removes a journal entry from the database
func (b *BoltDB) DeleteRename(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(renamesBucketName))
		return bucket.Delete([]byte(id))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
