package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
)

type blobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(ownerKey string) string
}

// ErrCorruptCart marks a blob that no longer parses; callers reset to empty.
var ErrCorruptCart = errors.New("cart blob corrupt")

// Store persists the whole cart as one JSON blob per owner. The blob TTL
// doubles as abandoned-cart expiry.
type Store struct {
	blobs blobStore
	ttl   time.Duration
}

// NewStore builds a cart store over the provided Redis-backed blob storage.
func NewStore(blobs blobStore, ttl time.Duration) (*Store, error) {
	if blobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blob store is required")
	}
	if ttl <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart ttl must be positive")
	}
	return &Store{blobs: blobs, ttl: ttl}, nil
}

// Load rehydrates the owner's cart. A missing key yields an empty cart; an
// unreadable blob yields ErrCorruptCart.
func (s *Store) Load(ctx context.Context, ownerKey string) (Cart, error) {
	raw, err := s.blobs.Get(ctx, s.blobs.CartKey(ownerKey))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Cart{}, nil
		}
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return Cart{}, ErrCorruptCart
	}
	return cart, nil
}

// Save writes the full cart blob, refreshing the TTL on every mutation.
func (s *Store) Save(ctx context.Context, ownerKey string, cart Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.blobs.Set(ctx, s.blobs.CartKey(ownerKey), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

// Delete removes the owner's cart blob.
func (s *Store) Delete(ctx context.Context, ownerKey string) error {
	if err := s.blobs.Del(ctx, s.blobs.CartKey(ownerKey)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}
