package port

// SourceStore reads and rewrites whole source files as raw lines.
// Each line keeps its original terminator.
type SourceStore interface {
	Load(path string) ([]string, error)

	Save(path string, lines []string) error
}
