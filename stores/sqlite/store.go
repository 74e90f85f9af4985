package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"shopmart/core"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// sqliteStore keeps one row per user, so concurrent saves for different
// users never touch each other's carts. This is the per-user keyed upgrade
// over the shared-blob filesystem backend.
type sqliteStore struct {
	db *sql.DB
}

// NewStore creates a new SQLite-based store.
func NewStore(dataSourceName string) *sqliteStore {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}

	cartTableStmt := `
	CREATE TABLE IF NOT EXISTS carts (
		user_id TEXT PRIMARY KEY,
		items BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err = db.Exec(cartTableStmt); err != nil {
		log.Fatalf("failed to create carts table: %v", err)
	}

	return &sqliteStore{db}
}

// Load returns the persisted cart for a user, or an empty cart if none.
func (s *sqliteStore) Load(ctx context.Context, userID string) (core.Cart, error) {
	log := logrus.WithField("user_id", userID)

	var items []byte
	err := s.db.QueryRowContext(ctx, "SELECT items FROM carts WHERE user_id = ?", userID).Scan(&items)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("No persisted cart for user, returning empty")
			return core.Cart{}, nil
		}
		log.WithError(err).Error("Failed to load cart")
		return nil, err
	}

	var cart core.Cart
	if err := json.Unmarshal(items, &cart); err != nil {
		log.WithError(err).Error("Failed to unmarshal cart row")
		return nil, err
	}
	return cart, nil
}

// Save upserts the user's cart row.
func (s *sqliteStore) Save(ctx context.Context, userID string, cart core.Cart) error {
	log := logrus.WithFields(logrus.Fields{"user_id": userID, "items": len(cart)})

	data, err := json.Marshal(cart)
	if err != nil {
		log.WithError(err).Error("Failed to marshal cart for saving")
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO carts (user_id, items, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at`,
		userID, data, time.Now())
	if err != nil {
		log.WithError(err).Error("Failed to save cart")
		return err
	}
	log.Debug("Cart saved")
	return nil
}
