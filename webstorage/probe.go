package webstorage

import "go.uber.org/zap"

// ProbeKey is written and removed again to test whether a store accepts writes.
const ProbeKey = "stash@storage_support"

// canUse reports whether the store bound to kind is usable. A store that
// rejects the probe write but already holds entries still counts as usable,
// so a full or read-only store passes and later writes to it can fail.
func (a *Accessor) canUse(kind Kind) bool {
	if !a.persistenceAllowed {
		return false
	}
	s := a.stores[kind]
	if s == nil {
		return false
	}

	err := s.Set(ProbeKey, "true")
	if err == nil {
		err = s.Delete(ProbeKey)
	}
	if err == nil {
		return true
	}

	n, lenErr := s.Len()
	if lenErr != nil {
		a.logger.Debug("store unavailable",
			zap.Stringer("kind", kind),
			zap.Error(err),
			zap.NamedError("len_error", lenErr))
		return false
	}
	if n > 0 {
		a.logger.Debug("probe write failed on non-empty store, treating as available",
			zap.Stringer("kind", kind),
			zap.Int("entries", n),
			zap.Error(err))
		return true
	}

	a.logger.Debug("store unavailable", zap.Stringer("kind", kind), zap.Error(err))
	return false
}

// CanUse reports whether the store bound to kind is usable right now.
func (a *Accessor) CanUse(kind Kind) bool {
	return a.canUse(kind)
}
