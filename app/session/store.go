package session

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrNoSession means no token is stored; the user must log in.
	ErrNoSession = errors.New("no stored session")
)

// Fixed keys for persisted client-side state. These never change across
// releases; old stores must keep working.
const (
	keyToken    = "session:token"
	keyUserID   = "session:userId"
	keyUsername = "session:username"
	keyTheme    = "pref:theme"
)

// DefaultTheme is used until the user picks one.
const DefaultTheme = "light"

// Session is the identity loaded once at startup and immutable for the
// lifetime of the view.
type Session struct {
	UserID   int64
	Username string
	Token    string
}

// Store keeps session identity and preferences in a local Badger DB.
type Store struct {
	db       *badger.DB
	mutex    sync.RWMutex
	dbPath   string
	isTestDB bool
}

// NewStore opens the store at path. An empty path creates a unique
// temporary store that is wiped on Close, for tests.
func NewStore(path string) (*Store, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "instafeed_test_store_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %v", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	if isTest {
		if err := db.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to drop all keys: %v", err)
		}
	}
	return &Store{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
	}, nil
}

// Close closes the store and removes it entirely when it is a test store.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.db.Close(); err != nil {
		return err
	}
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test store: %v", err)
		}
	}
	return nil
}

// SaveSession persists the identity written at login.
func (s *Store) SaveSession(sess Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyToken), []byte(sess.Token)); err != nil {
			return err
		}
		if err := txn.Set([]byte(keyUserID), []byte(strconv.FormatInt(sess.UserID, 10))); err != nil {
			return err
		}
		return txn.Set([]byte(keyUsername), []byte(sess.Username))
	})
}

// LoadSession reads the stored identity. A missing or empty token yields
// ErrNoSession; the caller should send the user to login.
func (s *Store) LoadSession() (Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var sess Session
	err := s.db.View(func(txn *badger.Txn) error {
		token, err := getString(txn, keyToken)
		if err != nil {
			return err
		}
		sess.Token = token

		rawID, err := getString(txn, keyUserID)
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return fmt.Errorf("corrupt userId %q: %v", rawID, err)
		}
		sess.UserID = id

		sess.Username, err = getString(txn, keyUsername)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) || (err == nil && sess.Token == "") {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Clear drops the identity keys. The theme preference survives logout.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{keyToken, keyUserID, keyUsername} {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Theme returns the stored display theme, or DefaultTheme.
func (s *Store) Theme() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	theme := DefaultTheme
	_ = s.db.View(func(txn *badger.Txn) error {
		stored, err := getString(txn, keyTheme)
		if err == nil && stored != "" {
			theme = stored
		}
		return nil
	})
	return theme
}

// SetTheme persists the display theme preference.
func (s *Store) SetTheme(theme string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyTheme), []byte(theme))
	})
}

func getString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return "", err
	}
	var out string
	err = item.Value(func(val []byte) error {
		out = string(val)
		return nil
	})
	return out, err
}
