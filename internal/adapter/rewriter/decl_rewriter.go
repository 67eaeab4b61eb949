package rewriter

import (
	"fmt"
	"regexp"
	"strings"

	"decorate/internal/domain"
)

const (
	DefaultMarker  = "M68K_FAST_FUNC"
	DefaultComment = "/* In SRAM */"
)

// declPattern matches a whole line, terminator excluded.
var declPattern = regexp.MustCompile(`^static void ([^(]*)\(void\)$`)

// DeclRewriter decorates single-line `static void name(void)` declarations
// whose name is in the name set.
type DeclRewriter struct {
	marker  string
	comment string
}

func NewDeclRewriter(marker, comment string) *DeclRewriter {
	if marker == "" {
		marker = DefaultMarker
	}
	if comment == "" {
		comment = DefaultComment
	}
	return &DeclRewriter{
		marker:  marker,
		comment: comment,
	}
}

func (r *DeclRewriter) Rewrite(lines []string, names domain.NameSet) ([]string, []domain.Match) {
	out := make([]string, len(lines))
	var matches []domain.Match

	for i, line := range lines {
		body, term := splitTerminator(line)

		name, ok := MatchDecl(body)
		if !ok || !names.Contains(name) {
			out[i] = line
			continue
		}

		if term == "" {
			term = "\n"
		}
		out[i] = r.Decorate(name) + term
		matches = append(matches, domain.Match{Line: i + 1, Name: name})
	}

	return out, matches
}

// Decorate returns the decorated declaration for name, without terminator.
func (r *DeclRewriter) Decorate(name string) string {
	return fmt.Sprintf("static void %s(%s)(void) %s", r.marker, name, r.comment)
}

// MatchDecl reports the function name declared by body. An empty name never
// matches, so a blank entry in the name list decorates nothing.
func MatchDecl(body string) (string, bool) {
	m := declPattern.FindStringSubmatch(body)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

func splitTerminator(line string) (body, term string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}
