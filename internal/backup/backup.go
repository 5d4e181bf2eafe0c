// Package backup reads and writes the portable JSON backup of the collection.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

var (
	// ErrInvalidBackup is returned when the document has no friends array.
	ErrInvalidBackup = errors.New(config.ErrInvalidBackup)
	// ErrParseBackup is returned when the document is not valid JSON.
	ErrParseBackup = errors.New(config.ErrParseBackup)
)

// File is the on-disk backup document.
type File struct {
	Friends    []engine.Friend `json:"friends"`
	ExportDate time.Time       `json:"exportDate"`
	Version    string          `json:"version"`
}

// Export writes friends as an indented backup document stamped with now.
func Export(w io.Writer, friends []engine.Friend, now time.Time) error {
	if friends == nil {
		friends = []engine.Friend{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", config.BackupJSONIndent)
	if err := enc.Encode(File{Friends: friends, ExportDate: now.UTC(), Version: config.BackupVersion}); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncodeBackup, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompBackup,
		config.LogKeyCount, len(friends))
	return nil
}

// Import reads a backup document and returns the collection it holds.
// The result is meant to replace the current collection as a whole.
//
// Older files without a version or export date are accepted; only the
// friends array is required.
func Import(r io.Reader) ([]engine.Friend, error) {
	var doc struct {
		Friends json.RawMessage `json:"friends"`
		Version string          `json:"version"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseBackup, err)
	}

	raw := bytes.TrimSpace(doc.Friends)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidBackup
	}

	friends := []engine.Friend{}
	if err := json.Unmarshal(raw, &friends); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseBackup, err)
	}
	if err := engine.ValidateCollection(friends); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	slog.Info(config.MsgImportBackup,
		config.LogKeyComponent, config.CompBackup,
		config.LogKeyCount, len(friends),
		config.LogKeyVersion, doc.Version)
	return friends, nil
}

// FileName returns the suggested file name of a backup taken at now.
func FileName(now time.Time) string {
	return config.BackupFilePrefix + now.Format(config.DateFormatFullDash) + config.ExtJSON
}
