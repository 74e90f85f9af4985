package filesystem

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"shopmart/core"

	"github.com/sirupsen/logrus"
)

// fsStore persists every user's cart in one shared JSON file mapping
// userID to cart, rewritten wholesale on every save. The mutex serializes
// writers within this process only: a second process pointed at the same
// file can still interleave read-modify-write cycles and the last writer's
// blob wins, silently dropping the other's update. That limitation is
// inherited from the storefront this service models; the sqlite and s3
// backends store per-user records and do not share it.
type fsStore struct {
	filePath string
	mu       sync.Mutex
}

// NewStore creates a filesystem-based store writing to filePath.
func NewStore(filePath string) *fsStore {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		log.Fatalf("failed to create storage directory: %v", err)
	}
	return &fsStore{filePath: filePath}
}

// readAll loads the full userID->cart mapping from disk. A missing file is
// an empty mapping, not an error.
func (s *fsStore) readAll() (map[string]core.Cart, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]core.Cart{}, nil
		}
		return nil, err
	}

	carts := map[string]core.Cart{}
	if len(data) == 0 {
		return carts, nil
	}
	if err := json.Unmarshal(data, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

// Load returns the persisted cart for a user, or an empty cart if none.
func (s *fsStore) Load(ctx context.Context, userID string) (core.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"user_id": userID, "file_path": s.filePath})

	carts, err := s.readAll()
	if err != nil {
		log.WithError(err).Error("Failed to read cart file")
		return nil, err
	}

	cart, ok := carts[userID]
	if !ok {
		log.Debug("No persisted cart for user, returning empty")
		return core.Cart{}, nil
	}
	log.WithField("items", len(cart)).Debug("Cart loaded from file")
	return cart, nil
}

// Save rewrites the whole blob with the user's cart replaced.
func (s *fsStore) Save(ctx context.Context, userID string, cart core.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"user_id": userID, "file_path": s.filePath})

	carts, err := s.readAll()
	if err != nil {
		log.WithError(err).Error("Failed to read cart file before save")
		return err
	}
	carts[userID] = cart

	data, err := json.Marshal(carts)
	if err != nil {
		log.WithError(err).Error("Failed to marshal cart file")
		return err
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		log.WithError(err).Error("Failed to write cart file")
		return err
	}
	log.WithField("items", len(cart)).Debug("Cart saved to file")
	return nil
}
