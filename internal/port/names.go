package port

import "decorate/internal/domain"

// NameLoader loads the set of function names to decorate.
type NameLoader interface {
	LoadNames(path string) (domain.NameSet, error)
}
