package port

import "decorate/internal/domain"

// Rewriter transforms source lines one to one.
type Rewriter interface {
	// Rewrite returns the transformed lines and the declarations it decorated.
	// The result always has the same length as lines.
	Rewrite(lines []string, names domain.NameSet) ([]string, []domain.Match)
}
