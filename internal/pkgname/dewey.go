// Package pkgname implements the name/version primitives of the pkgsrc
// "full name" grammar: stem-version parsing, Dewey version comparison, and
// dependency pattern matching.
package pkgname

import (
	"regexp"
	"strconv"
	"strings"
)

var nbSuffixRe = regexp.MustCompile(`^(.*?)nb(\d+)$`)

var modifierRank = map[string]int{
	"alpha": 0,
	"beta":  1,
	"pre":   2,
	"rc":    3,
	"":      4, // plain numeric token, i.e. a final release
}

// Dewey compares two dot-separated version strings using pkgsrc's ordering:
// numeric tokens compared left to right, alphabetic modifiers ordered
// alpha < beta < pre < rc < release, and a trailing nbN release tag folded
// in as an additional numeric comparison after the dotted tokens.
type Dewey struct{}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (Dewey) Compare(a, b string) int {
	aMain, aNb := splitNbSuffix(a)
	bMain, bNb := splitNbSuffix(b)

	aTok := strings.Split(aMain, ".")
	bTok := strings.Split(bMain, ".")

	n := len(aTok)
	if len(bTok) > n {
		n = len(bTok)
	}

	for i := 0; i < n; i++ {
		var at, bt string
		if i < len(aTok) {
			at = aTok[i]
		}
		if i < len(bTok) {
			bt = bTok[i]
		}
		if c := compareToken(at, bt); c != 0 {
			return c
		}
	}

	if aNb != bNb {
		if aNb < bNb {
			return -1
		}
		return 1
	}
	return 0
}

func splitNbSuffix(v string) (main string, nb int) {
	if m := nbSuffixRe.FindStringSubmatch(v); m != nil {
		n, _ := strconv.Atoi(m[2])
		return m[1], n
	}
	return v, 0
}

// numericModifierRe splits a token like "5alpha3" into "5", "alpha", "3".
var numericModifierRe = regexp.MustCompile(`^(\d*)([a-zA-Z]*)(\d*)$`)

func parseToken(tok string) (num int64, mod string, modNum int64) {
	m := numericModifierRe.FindStringSubmatch(tok)
	if m == nil {
		return 0, "", 0
	}
	if m[1] != "" {
		num, _ = strconv.ParseInt(m[1], 10, 64)
	}
	mod = strings.ToLower(m[2])
	if m[3] != "" {
		modNum, _ = strconv.ParseInt(m[3], 10, 64)
	}
	if _, known := modifierRank[mod]; !known {
		// Unknown modifier text: treat as part of a final release so it
		// never silently outranks a recognized pre-release tag.
		mod = ""
	}
	return num, mod, modNum
}

func compareToken(a, b string) int {
	aNum, aMod, aModNum := parseToken(a)
	bNum, bMod, bModNum := parseToken(b)

	if aNum != bNum {
		if aNum < bNum {
			return -1
		}
		return 1
	}

	aRank, bRank := modifierRank[aMod], modifierRank[bMod]
	if aRank != bRank {
		if aRank < bRank {
			return -1
		}
		return 1
	}

	if aModNum != bModNum {
		if aModNum < bModNum {
			return -1
		}
		return 1
	}
	return 0
}
