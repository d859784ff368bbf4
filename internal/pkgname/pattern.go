package pkgname

import (
	"regexp"
	"strings"
)

type patternKind int

const (
	kindExact patternKind = iota
	kindInequality
	kindGlob
)

// Pattern is a parsed dependency pattern: exact full name, stem+inequality+
// Dewey version, stem+glob, brace alternation, or a combination of these.
// Parsing happens once in ParsePattern; Stem and Satisfies are then cheap
// lookups/matches instead of re-punching the original string.
type Pattern struct {
	raw     string
	stem    string
	kind    patternKind
	op      string
	version string
	matcher []*regexp.Regexp // one compiled matcher per brace-expanded alternative
}

var inequalityOps = []string{">=", "<=", ">", "<"}

// ParsePattern parses a raw dependency pattern string once.
func ParsePattern(raw string) Pattern {
	p := Pattern{raw: raw, stem: StemFromDepend(raw)}

	cut := strings.IndexAny(raw, "{<>[]?*")
	if cut < 0 {
		p.kind = kindExact
		p.matcher = []*regexp.Regexp{regexp.MustCompile("^" + regexp.QuoteMeta(raw) + "$")}
		return p
	}

	rest := raw[cut:]
	if op, ver, ok := splitInequality(rest); ok {
		p.kind = kindInequality
		p.op = op
		p.version = ver
		return p
	}

	p.kind = kindGlob
	for _, alt := range expandBraces(raw) {
		p.matcher = append(p.matcher, translateGlob(alt))
	}
	return p
}

func splitInequality(rest string) (op, version string, ok bool) {
	for _, candidate := range inequalityOps {
		if strings.HasPrefix(rest, candidate) {
			return candidate, rest[len(candidate):], true
		}
	}
	return "", "", false
}

// expandBraces expands a (possibly nested-free) set of {a,b,c} alternations
// into the cartesian product of literal strings.
func expandBraces(s string) []string {
	open := strings.IndexByte(s, '{')
	if open < 0 {
		return []string{s}
	}
	depth := 0
	closeIdx := -1
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return []string{s}
	}

	prefix := s[:open]
	suffix := s[closeIdx+1:]
	alternatives := strings.Split(s[open+1:closeIdx], ",")

	var results []string
	for _, alt := range alternatives {
		for _, tail := range expandBraces(suffix) {
			results = append(results, prefix+alt+tail)
		}
	}
	return results
}

// translateGlob converts a glob-ish pattern (supporting * ? and [..]
// character classes) into an anchored regexp, escaping every other
// regex metacharacter literally.
func translateGlob(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteByte('^')
	i := 0
	for i < len(glob) {
		c := glob[i]
		switch c {
		case '*':
			b.WriteString(".*")
			i++
		case '?':
			b.WriteString(".")
			i++
		case '[':
			end := strings.IndexByte(glob[i:], ']')
			if end < 0 {
				b.WriteString(regexp.QuoteMeta(glob[i:]))
				i = len(glob)
				continue
			}
			b.WriteString(glob[i : i+end+1])
			i += end + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	b.WriteByte('$')
	return regexp.MustCompile(b.String())
}

// Stem returns the reduced package-name stem for this pattern.
func (p Pattern) Stem() string {
	return p.stem
}

// Satisfies reports whether full matches this pattern.
func (p Pattern) Satisfies(full string) bool {
	switch p.kind {
	case kindExact:
		return p.matcher[0].MatchString(full)
	case kindInequality:
		f, ok := ParseFull(full)
		if !ok || f.Stem != p.stem {
			return false
		}
		cmp := (Dewey{}).Compare(f.Version, p.version)
		switch p.op {
		case ">=":
			return cmp >= 0
		case ">":
			return cmp > 0
		case "<=":
			return cmp <= 0
		case "<":
			return cmp < 0
		}
		return false
	case kindGlob:
		for _, m := range p.matcher {
			if m.MatchString(full) {
				return true
			}
		}
		return false
	}
	return false
}
