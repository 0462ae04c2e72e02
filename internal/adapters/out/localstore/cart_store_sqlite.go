// internal/adapters/out/localstore/cart_store_sqlite.go
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	cartdom "gamestore/internal/domain/cart"
)

// CartStoreSQLite implements cart.FallbackStore for anonymous sessions:
// one JSON-serialized line array per device id, kept in a local sqlite
// file. This is the server-side rendition of the browser's
// localStorage "cart" key.
type CartStoreSQLite struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS device_carts (
	device_id  TEXT PRIMARY KEY,
	cart_json  TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Open opens (creating if needed) the sqlite file at path.
func Open(path string) (*CartStoreSQLite, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("localstore: path is empty")
	}

	db, err := sql.Open("sqlite3", p)
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", p, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: init schema: %w", err)
	}

	return &CartStoreSQLite{db: db}, nil
}

// Load returns (nil, nil) when the device has no stored cart.
// A row that fails to parse is reported as an error; the synchronizer
// treats that as "start empty".
func (s *CartStoreSQLite) Load(ctx context.Context, deviceID string) ([]cartdom.Line, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("localstore: store is not open")
	}
	id := strings.TrimSpace(deviceID)
	if id == "" {
		return nil, errors.New("localstore: deviceID is empty")
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT cart_json FROM device_carts WHERE device_id = ?`, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localstore: load device=%s: %w", id, err)
	}

	var lines []cartdom.Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("localstore: parse cart device=%s: %w", id, err)
	}
	return lines, nil
}

// Save upserts the full line array for the device.
func (s *CartStoreSQLite) Save(ctx context.Context, deviceID string, lines []cartdom.Line) error {
	if s == nil || s.db == nil {
		return errors.New("localstore: store is not open")
	}
	id := strings.TrimSpace(deviceID)
	if id == "" {
		return errors.New("localstore: deviceID is empty")
	}

	if lines == nil {
		lines = []cartdom.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("localstore: encode cart device=%s: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO device_carts (device_id, cart_json, updated_at) VALUES (?, ?, ?)
ON CONFLICT(device_id) DO UPDATE SET cart_json = excluded.cart_json, updated_at = excluded.updated_at`,
		id, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("localstore: save device=%s: %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *CartStoreSQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
