package evaluate

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	numberRunRe = regexp.MustCompile(`\d+(?:[., ]\d+)*`)
	signRe      = regexp.MustCompile(`(?:^|=)\s*-$`)

	yesWords = []string{"si", "sí", "yes", "correcto", "verdadero", "cierto"}
	noWords  = []string{"no", "falso", "incorrecto"}
)

// Normalize lowercases s, strips diacritics, collapses whitespace and trims
// surrounding punctuation other than a sign. "¡Sí!" becomes "si".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	out = strings.Join(strings.Fields(out), " ")
	return strings.TrimFunc(out, func(r rune) bool {
		return r != '-' && (unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r))
	})
}

// NumericTokens returns the numbers written in s, in order. "1.500" and
// "1 500" are read as thousands-grouped integers, "3,5" and "3.5" as
// decimals. A "-" at the start or right after "=" is a sign.
func NumericTokens(s string) []float64 {
	return numericTokens(s, readMode{groupSpaces: true})
}

// readMode selects how ambiguous separators inside a digit run are read.
// Without groupSpaces, "96 100 104" reads as three numbers rather than
// 96100 and 104. With commaList, "1,13" reads as 1 and 13 rather than 1.13.
type readMode struct {
	groupSpaces bool
	commaList   bool
}

var listModes = []readMode{
	{groupSpaces: true},
	{groupSpaces: false},
	{groupSpaces: true, commaList: true},
	{groupSpaces: false, commaList: true},
}

func numericTokens(s string, mode readMode) []float64 {
	var out []float64
	for _, loc := range numberRunRe.FindAllStringIndex(s, -1) {
		nums := splitRun(s[loc[0]:loc[1]], mode)
		if len(nums) > 0 && signRe.MatchString(s[:loc[0]]) {
			nums[0] = -nums[0]
		}
		out = append(out, nums...)
	}
	return out
}

// splitRun interprets a run of digit groups joined by single ".", "," or
// " " separators.
func splitRun(run string, mode readMode) []float64 {
	var groups []string
	var seps []byte
	start := 0
	for i := 0; i < len(run); i++ {
		if c := run[i]; c == '.' || c == ',' || c == ' ' {
			groups = append(groups, run[start:i])
			seps = append(seps, c)
			start = i + 1
		}
	}
	groups = append(groups, run[start:])

	// More than one comma means a list such as "1,2,3".
	commaDecimal := !mode.commaList && strings.Count(run, ",") == 1

	var out []float64
	for i := 0; i < len(groups); {
		intPart := groups[i]
		lead := len(groups[i])
		j := i + 1
		// Thousands groups: exactly three digits after a 1-3 digit lead.
		for j < len(groups) && lead <= 3 && len(groups[j]) == 3 &&
			(seps[j-1] == '.' || (seps[j-1] == ' ' && mode.groupSpaces)) {
			intPart += groups[j]
			j++
		}
		value := intPart
		if j < len(groups) {
			sep := seps[j-1]
			if sep == '.' || (sep == ',' && commaDecimal) {
				value += "." + groups[j]
				j++
			}
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			out = append(out, f)
		}
		i = j
	}
	return out
}

// Equivalent reports whether given matches the expected answer loosely:
// normalized text equality, yes/no polarity, the last number for a single
// expected number, or the same set of numbers for an expected list.
func Equivalent(expected, given string) bool {
	ne, ng := Normalize(expected), Normalize(given)
	if ng == "" {
		return false
	}
	if ne == ng {
		return true
	}

	if ne == "si" || ne == "no" {
		got, ok := polarity(ng)
		return ok && got == (ne == "si")
	}

	wantNums := NumericTokens(expected)
	switch {
	case len(wantNums) == 1:
		for _, mode := range listModes[:2] {
			got := numericTokens(given, mode)
			if len(got) > 0 && got[len(got)-1] == wantNums[0] {
				return true
			}
		}
	case len(wantNums) > 1:
		candidates := []string{given}
		if tail, ok := answerTail(ng); ok {
			candidates = append(candidates, tail)
		}
		for _, c := range candidates {
			for _, mode := range listModes {
				if sameSet(wantNums, numericTokens(c, mode)) {
					return true
				}
			}
		}
	}
	return false
}

// answerTail returns what follows the last "son", "es", ":" or "=" in a
// normalized answer, so "los multiplos de 9 entre 30 y 50 son 36 y 45"
// is judged on "36 y 45".
func answerTail(ng string) (string, bool) {
	cut := -1
	for _, marker := range []string{" son ", " es ", ":", "="} {
		if i := strings.LastIndex(ng, marker); i >= 0 && i+len(marker) > cut {
			cut = i + len(marker)
		}
	}
	if cut < 0 || cut >= len(ng) {
		return "", false
	}
	return ng[cut:], true
}

// polarity finds the first yes/no word in a normalized answer.
func polarity(s string) (bool, bool) {
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if slices.Contains(yesWords, w) {
			return true, true
		}
		if slices.Contains(noWords, w) {
			return false, true
		}
	}
	return false, false
}

func sameSet(a, b []float64) bool {
	if len(b) == 0 {
		return false
	}
	sa, sb := dedupSorted(a), dedupSorted(b)
	return slices.Equal(sa, sb)
}

func dedupSorted(nums []float64) []float64 {
	out := slices.Clone(nums)
	slices.Sort(out)
	return slices.Compact(out)
}
