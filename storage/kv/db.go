// Package kv implements core.Store on top of plain JSON files, one file per
// collection key. The whole collection is rewritten on every Write; there is
// no record-level locking and concurrent writers race at collection
// granularity (last writer wins).
package kv

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var _ core.Store = (*DB)(nil)

// DB is a file-backed core.Store rooted at a single directory.
type DB struct {
	dir string
	mu  sync.RWMutex
	log core.Logger // nil disables logging
}

// Open ensures dir exists and returns a store over it. log may be nil.
func Open(dir string, log core.Logger) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	return &DB{dir: dir, log: log}, nil
}

func (db *DB) path(key string) string {
	return filepath.Join(db.dir, key+".json")
}

func (db *DB) logError(msg string, err error) {
	if db.log != nil {
		db.log.Error(msg, "error", err)
	}
}

// Read loads the collection stored under key into dst. A missing file or
// malformed JSON reads as false so callers fall back to an empty collection.
func (db *DB) Read(key string, dst interface{}) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	data, err := ioutil.ReadFile(db.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			db.logError("kv: reading "+key, err)
		}
		return false
	}
	if err = json.Unmarshal(data, dst); err != nil {
		db.logError("kv: decoding "+key, err)
		return false
	}
	return true
}

// Write atomically replaces the collection stored under key: the new
// contents are written to a temp file in the same directory and renamed
// over the old one, so readers never observe a partial document.
func (db *DB) Write(key string, v interface{}) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		db.logError("kv: encoding "+key, err)
		return false
	}

	tmp := filepath.Join(db.dir, key+"."+uuid.New().String()+".tmp")
	if err = ioutil.WriteFile(tmp, data, 0o644); err != nil {
		db.logError("kv: writing "+key, err)
		return false
	}
	if err = os.Rename(tmp, db.path(key)); err != nil {
		_ = os.Remove(tmp)
		db.logError("kv: replacing "+key, err)
		return false
	}
	return true
}

// Delete removes key from the store. Deleting an absent key succeeds.
func (db *DB) Delete(key string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := os.Remove(db.path(key)); err != nil && !os.IsNotExist(err) {
		db.logError("kv: deleting "+key, err)
		return false
	}
	return true
}

// Watch signals writes to key made by other processes sharing the same data
// directory until ctx is done. Events coalesce; receivers re-read the
// collection rather than consuming payloads.
func (db *DB) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	if err = watcher.Add(db.dir); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrap(err, "watching data directory")
	}

	name := key + ".json"
	ch := make(chan struct{}, 1)
	go func() {
		defer func() { _ = watcher.Close() }()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case ch <- struct{}{}:
				default: // an event is already pending
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				db.logError("kv: watching "+key, err)
			}
		}
	}()
	return ch, nil
}
