package webstorage

import "github.com/codetesla51/stash/store"

// Storage is the public surface for one store kind. Every method delegates to
// the shared Accessor.
type Storage struct {
	kind     Kind
	accessor *Accessor
}

func (s *Storage) Kind() Kind { return s.kind }

// Length is evaluated on every call.
func (s *Storage) Length() int {
	return s.accessor.Length(s.kind)
}

func (s *Storage) Key(index int) (string, bool, error) {
	return s.accessor.KeyAt(s.kind, index)
}

func (s *Storage) SetItem(key string, value any, opts ...SetOption) error {
	return s.accessor.Set(s.kind, key, value, opts...)
}

func (s *Storage) GetItem(key string) (any, error) {
	return s.accessor.Get(s.kind, key)
}

func (s *Storage) GetInto(key string, dst any) (bool, error) {
	return s.accessor.GetInto(s.kind, key, dst)
}

func (s *Storage) Keys(opts ...KeysOption) ([]string, error) {
	return s.accessor.Keys(s.kind, opts...)
}

func (s *Storage) Clear() error {
	return s.accessor.Clear(s.kind)
}

func (s *Storage) RemoveItem(key string) error {
	return s.accessor.Remove(s.kind, key)
}

// Client holds the durable (Local) and session-scoped (Session) facades.
type Client struct {
	Local   *Storage
	Session *Storage
}

// New builds a Client over the two stores.
func New(durable, session store.Store, opts ...Option) *Client {
	return NewClient(NewAccessor(durable, session, opts...))
}

// NewClient builds a Client over an existing Accessor.
func NewClient(a *Accessor) *Client {
	return &Client{
		Local:   &Storage{kind: Durable, accessor: a},
		Session: &Storage{kind: Session, accessor: a},
	}
}

// Storage returns the facade bound to kind.
func (c *Client) Storage(kind Kind) *Storage {
	if kind == Session {
		return c.Session
	}
	return c.Local
}
