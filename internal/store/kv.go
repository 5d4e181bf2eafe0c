package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Get returns the raw value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

// Put stores value under key, replacing any previous value.
func (db *DB) Put(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now') * 1000)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (db *DB) Delete(ctx context.Context, key string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return err
}

// LoadFriends returns the stored collection. A missing slot yields an empty,
// non-nil collection.
func (db *DB) LoadFriends(ctx context.Context) ([]engine.Friend, error) {
	raw, err := db.Get(ctx, config.StoreKeyFriends)
	if errors.Is(err, ErrNotFound) {
		return []engine.Friend{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}

	friends := []engine.Friend{}
	if err := json.Unmarshal([]byte(raw), &friends); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}
	if friends == nil {
		friends = []engine.Friend{}
	}
	return friends, nil
}

// SaveFriends validates friends and writes the whole collection.
func (db *DB) SaveFriends(ctx context.Context, friends []engine.Friend) error {
	if err := engine.ValidateCollection(friends); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}
	if friends == nil {
		friends = []engine.Friend{}
	}

	data, err := json.Marshal(friends)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}
	if err := db.Put(ctx, config.StoreKeyFriends, string(data)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}

	slog.Debug(config.MsgCollectionSet,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyCount, len(friends))
	return nil
}

// Onboarded reports whether the welcome screen was dismissed.
func (db *DB) Onboarded(ctx context.Context) (bool, error) {
	raw, err := db.Get(ctx, config.StoreKeyOnboarded)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(raw)
}

// SetOnboarded records the onboarding flag.
func (db *DB) SetOnboarded(ctx context.Context, done bool) error {
	return db.Put(ctx, config.StoreKeyOnboarded, strconv.FormatBool(done))
}

// ClearAll erases every stored value. The schema is kept.
func (db *DB) ClearAll(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM kv"); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreClear, err)
	}
	slog.Info(config.MsgDataCleared, config.LogKeyComponent, config.CompStore)
	return nil
}
