package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
)

type blobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	WishlistKey(ownerKey string) string
}

// localSet is the owner-scoped wishlist membership persisted as one JSON
// blob. It is the authoritative copy; the database rows are the remote sync
// target.
type localSet struct {
	blobs blobStore
	ttl   time.Duration
}

func newLocalSet(blobs blobStore, ttl time.Duration) *localSet {
	return &localSet{blobs: blobs, ttl: ttl}
}

// load returns the owner's liked product ids. Missing or corrupt blobs yield
// an empty set.
func (s *localSet) load(ctx context.Context, ownerKey string) ([]uuid.UUID, error) {
	raw, err := s.blobs.Get(ctx, s.blobs.WishlistKey(ownerKey))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}

	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

func (s *localSet) save(ctx context.Context, ownerKey string, ids []uuid.UUID) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode wishlist")
	}
	if err := s.blobs.Set(ctx, s.blobs.WishlistKey(ownerKey), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist wishlist")
	}
	return nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
