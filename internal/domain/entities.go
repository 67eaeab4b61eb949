package domain

// NameSet is the set of function names eligible for decoration.
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from names. Duplicates collapse.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int {
	return len(s)
}

// Match records a declaration line that was decorated.
type Match struct {
	Line int    `json:"line"`
	Name string `json:"name"`
}

type FileResult struct {
	Path    string  `json:"path"`
	Lines   int     `json:"lines"`
	Matches []Match `json:"matches,omitempty"`
	Written bool    `json:"written"`
}

type WalkResult struct {
	Files          []FileResult `json:"files"`
	FilesScanned   int          `json:"files_scanned"`
	FilesDecorated int          `json:"files_decorated"`
	Decorations    int          `json:"decorations"`
}
