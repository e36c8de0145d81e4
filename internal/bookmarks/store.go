package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Adda-Baaj/newsdesk/internal/domain"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "newsdesk"
	// StorageKey is the fixed key the whole bookmark set is stored under.
	StorageKey = "bookmarks"
)

// Store persists the full bookmark set.
type Store interface {
	Load() ([]domain.Article, error)
	Save(items []domain.Article) error
}

// BoltStore keeps the bookmark set as one JSON value in a bbolt file. The file
// is opened per Load or Save, so other processes can use it in between.
type BoltStore struct {
	path    string
	timeout time.Duration
}

// OpenBoltStore prepares the bbolt file at path, creating it if needed.
func OpenBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		return nil, errors.New("bookmark store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bookmark store dir: %w", err)
	}

	s := &BoltStore{path: path, timeout: 2 * time.Second}
	db, err := s.open(false)
	if err != nil {
		return nil, err
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("close bookmark store: %w", err)
	}
	return s, nil
}

// open takes a shared lock when readOnly is set and an exclusive one otherwise.
func (s *BoltStore) open(readOnly bool) (*bolt.DB, error) {
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: s.timeout, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("open bookmark store: %w", err)
	}
	return db, nil
}

// Load returns the stored set, or an empty set when nothing was saved yet.
func (s *BoltStore) Load() ([]domain.Article, error) {
	db, err := s.open(true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var raw []byte
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(StorageKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	return decode(raw)
}

// Save overwrites the stored set with items.
func (s *BoltStore) Save(items []domain.Article) error {
	raw, err := encode(items)
	if err != nil {
		return err
	}

	db, err := s.open(false)
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(StorageKey), raw)
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("close bookmark store: %w", err)
	}
	return nil
}

// Close is a no-op; the file is never held between calls.
func (s *BoltStore) Close() error {
	return nil
}

// MemoryStore keeps the serialized set in memory.
type MemoryStore struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decode(s.raw)
}

func (s *MemoryStore) Save(items []domain.Article) error {
	raw, err := encode(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}

func encode(items []domain.Article) ([]byte, error) {
	if items == nil {
		items = []domain.Article{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode bookmarks: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) ([]domain.Article, error) {
	if len(raw) == 0 {
		return []domain.Article{}, nil
	}
	var items []domain.Article
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	if items == nil {
		items = []domain.Article{}
	}
	return items, nil
}
