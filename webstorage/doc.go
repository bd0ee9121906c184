// Package webstorage layers expiry, JSON encoding, availability detection and
// filtered key listing over two independent string stores: a durable one and
// a session-scoped one.
//
// An Accessor owns one store.Store per Kind and implements every operation
// once. Storage binds an Accessor to a single Kind, and Client carries the
// Local and Session bindings.
//
// Every operation first probes its store. When the store cannot be used it
// degrades to a default (nil, no-op, empty, zero) without returning an error.
package webstorage
