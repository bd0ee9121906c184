package webstorage

import (
	"time"

	"go.uber.org/zap"

	"github.com/codetesla51/stash/expiry"
)

// Option configures an Accessor.
type Option func(*Accessor)

// WithMode sets the runtime mode. The default is Production.
func WithMode(mode RuntimeMode) Option {
	return func(a *Accessor) { a.mode = mode }
}

// WithPersistenceAllowed sets the environment capability flag. When false,
// no store is ever considered usable. The default is true.
func WithPersistenceAllowed(allowed bool) Option {
	return func(a *Accessor) { a.persistenceAllowed = allowed }
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Accessor) { a.logger = logger }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Accessor) { a.now = now }
}

// SetOption configures a single write.
type SetOption func(*setOptions)

type setOptions struct {
	expire expiry.Spec
}

// WithExpire stores the value with an expiry, e.g. WithExpire(expiry.In("2h"))
// or WithExpire(expiry.AtTime(deadline)).
func WithExpire(spec expiry.Spec) SetOption {
	return func(o *setOptions) { o.expire = spec }
}

// KeysOption narrows the result of Keys.
type KeysOption func(*keysOptions)

type keysOptions struct {
	filter  []string
	exclude []string
}

// WithFilter keeps only the listed keys. It takes precedence over WithExclude.
func WithFilter(keys ...string) KeysOption {
	return func(o *keysOptions) { o.filter = append(o.filter, keys...) }
}

// WithExclude drops the listed keys. It is ignored when a filter is set.
func WithExclude(keys ...string) KeysOption {
	return func(o *keysOptions) { o.exclude = append(o.exclude, keys...) }
}
