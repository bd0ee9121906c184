package webstorage

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/codetesla51/stash/codec"
	"github.com/codetesla51/stash/expiry"
	"github.com/codetesla51/stash/store"
)

// Accessor implements the storage operations once, parameterized by Kind.
// It keeps no state between calls beyond its configuration.
type Accessor struct {
	stores             map[Kind]store.Store
	mode               RuntimeMode
	persistenceAllowed bool
	logger             *zap.Logger
	now                func() time.Time
}

// NewAccessor binds durable and session to their kinds. A nil store is
// treated as permanently unavailable.
func NewAccessor(durable, session store.Store, opts ...Option) *Accessor {
	a := &Accessor{
		stores: map[Kind]store.Store{
			Durable: durable,
			Session: session,
		},
		mode:               Production,
		persistenceAllowed: true,
		logger:             zap.NewNop(),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mode returns the configured runtime mode.
func (a *Accessor) Mode() RuntimeMode {
	return a.mode
}

func (a *Accessor) lookup(kind Kind, key string) (codec.Entry, error) {
	if !a.canUse(kind) {
		return codec.Entry{State: codec.Absent}, nil
	}
	s := a.stores[kind]

	raw, ok, err := s.Get(key)
	if err != nil {
		return codec.Entry{}, fmt.Errorf("get %q: %w", key, err)
	}
	if !ok {
		return codec.Entry{State: codec.Absent}, nil
	}

	entry := codec.Decode(raw, a.now().UnixMilli())
	if entry.State == codec.Expired {
		a.logger.Debug("evicting expired entry",
			zap.Stringer("kind", kind),
			zap.String("key", key),
			zap.Int64("expires_at", entry.ExpiresAt))
		if err := s.Delete(key); err != nil {
			return codec.Entry{}, fmt.Errorf("evict %q: %w", key, err)
		}
		return codec.Entry{State: codec.Absent}, nil
	}
	return entry, nil
}

// Get returns the value stored under key, or nil when it is absent, expired
// or the store is unavailable. JSON values decode the way encoding/json
// decodes into an interface; foreign non-JSON values come back as strings.
func (a *Accessor) Get(kind Kind, key string) (any, error) {
	entry, err := a.lookup(kind, key)
	if err != nil {
		return nil, err
	}

	switch entry.State {
	case codec.Foreign:
		return entry.Raw, nil
	case codec.Bare, codec.Live:
		var value any
		if err := json.Unmarshal(entry.Value, &value); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		return value, nil
	default:
		return nil, nil
	}
}

// GetInto decodes the value stored under key into dst and reports whether
// there was one. A foreign value can only be read into a *string.
func (a *Accessor) GetInto(kind Kind, key string, dst any) (bool, error) {
	entry, err := a.lookup(kind, key)
	if err != nil {
		return false, err
	}

	switch entry.State {
	case codec.Foreign:
		sp, ok := dst.(*string)
		if !ok {
			return false, fmt.Errorf("decode %q: stored value is not JSON", key)
		}
		*sp = entry.Raw
		return true, nil
	case codec.Bare, codec.Live:
		if err := json.Unmarshal(entry.Value, dst); err != nil {
			return false, fmt.Errorf("decode %q: %w", key, err)
		}
		return true, nil
	default:
		return false, nil
	}
}

// Set stores value under key. A malformed expiry returns an error in
// Development mode and silently skips the write otherwise.
func (a *Accessor) Set(kind Kind, key string, value any, opts ...SetOption) error {
	if !a.canUse(kind) {
		return nil
	}

	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	deadline, hasExpiry, err := expiry.Normalize(o.expire, a.now())
	if err != nil {
		if a.mode == Development {
			return err
		}
		a.logger.Debug("dropping write with invalid expiry",
			zap.Stringer("kind", kind),
			zap.String("key", key),
			zap.Error(err))
		return nil
	}

	raw, err := codec.Encode(value, deadline, hasExpiry)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	if err := a.stores[kind].Set(key, raw); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (a *Accessor) Remove(kind Kind, key string) error {
	if !a.canUse(kind) {
		return nil
	}
	if err := a.stores[kind].Delete(key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (a *Accessor) Clear(kind Kind) error {
	if !a.canUse(kind) {
		return nil
	}
	if err := a.stores[kind].Clear(); err != nil {
		return fmt.Errorf("clear %s: %w", kind, err)
	}
	return nil
}

// Keys lists the keys of the store. A filter keeps only listed keys and wins
// over an exclude list when both are given.
func (a *Accessor) Keys(kind Kind, opts ...KeysOption) ([]string, error) {
	if !a.canUse(kind) {
		return []string{}, nil
	}

	var o keysOptions
	for _, opt := range opts {
		opt(&o)
	}

	keys, err := a.stores[kind].Keys()
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", kind, err)
	}

	switch {
	case len(o.filter) > 0:
		return slices.DeleteFunc(keys, func(k string) bool {
			return !slices.Contains(o.filter, k)
		}), nil
	case len(o.exclude) > 0:
		return slices.DeleteFunc(keys, func(k string) bool {
			return slices.Contains(o.exclude, k)
		}), nil
	default:
		return keys, nil
	}
}

// KeyAt returns the key at index in the store's native ordering.
func (a *Accessor) KeyAt(kind Kind, index int) (string, bool, error) {
	if !a.canUse(kind) {
		return "", false, nil
	}
	key, ok, err := a.stores[kind].Key(index)
	if err != nil {
		return "", false, fmt.Errorf("key %d: %w", index, err)
	}
	return key, ok, nil
}

// Length returns the entry count, or 0 when the store is unavailable or
// cannot be counted.
func (a *Accessor) Length(kind Kind) int {
	if !a.canUse(kind) {
		return 0
	}
	n, err := a.stores[kind].Len()
	if err != nil {
		a.logger.Debug("length failed", zap.Stringer("kind", kind), zap.Error(err))
		return 0
	}
	return n
}
