package problemgen

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns are matched against the whole question after normalizeQuestion,
// so stories and multi-step statements never match.
var (
	numPat = `(\d{1,3}(?:\.\d{3})+|\d+)`

	binaryRe   = regexp.MustCompile(`^` + numPat + `\s*([+\-x×*:÷/])\s*` + numPat + `$`)
	doubleRe   = regexp.MustCompile(`^el doble de ` + numPat + `$`)
	halfRe     = regexp.MustCompile(`^la mitad de ` + numPat + `$`)
	percentRe  = regexp.MustCompile(`^el ` + numPat + `\s*% de ` + numPat + `$`)
	divisorsRe = regexp.MustCompile(`^(?:escribe )?(?:todos )?los divisores de ` + numPat + `$`)
	rangeRe    = regexp.MustCompile(`^(?:escribe )?(?:todos )?los m[uú]ltiplos de ` + numPat + ` (?:que hay )?entre (?:el )?` + numPat + ` y (?:el )?` + numPat + `$`)
	isMultRe   = regexp.MustCompile(`^es (?:el )?` + numPat + ` (?:un )?m[uú]ltiplo de ` + numPat + `$`)
	isDivRe    = regexp.MustCompile(`^es (?:el )?` + numPat + ` (?:un )?divisor de ` + numPat + `$`)

	questionPrefixes = []string{"calcula:", "calcula", "cuánto es", "cuanto es", "cuál es", "cual es", "halla"}
)

// DeriveAnswer recomputes the expected answer of a pure arithmetic question
// such as "Calcula: 4500 : 90", "La mitad de 860", "Escribe todos los
// divisores de 24" or "¿Es 72 múltiplo de 8?". Anything else is reported as
// not derivable. Lists are rendered "1, 2, 3" and yes/no as "Sí"/"No".
func DeriveAnswer(question string) (string, bool) {
	q := normalizeQuestion(question)

	if m := binaryRe.FindStringSubmatch(q); m != nil {
		a, b := parseNum(m[1]), parseNum(m[3])
		switch m[2] {
		case "+":
			return strconv.Itoa(a + b), true
		case "-":
			return strconv.Itoa(a - b), true
		case "x", "×", "*":
			return strconv.Itoa(a * b), true
		case ":", "÷", "/":
			if b == 0 || a%b != 0 {
				return "", false
			}
			return strconv.Itoa(a / b), true
		}
	}
	if m := doubleRe.FindStringSubmatch(q); m != nil {
		return strconv.Itoa(2 * parseNum(m[1])), true
	}
	if m := halfRe.FindStringSubmatch(q); m != nil {
		n := parseNum(m[1])
		if n%2 != 0 {
			return "", false
		}
		return strconv.Itoa(n / 2), true
	}
	if m := percentRe.FindStringSubmatch(q); m != nil {
		p, n := parseNum(m[1]), parseNum(m[2])
		if (p*n)%100 != 0 {
			return "", false
		}
		return strconv.Itoa(p * n / 100), true
	}
	if m := divisorsRe.FindStringSubmatch(q); m != nil {
		if d := Divisors(parseNum(m[1])); len(d) > 0 {
			return joinInts(d), true
		}
		return "", false
	}
	if m := rangeRe.FindStringSubmatch(q); m != nil {
		if ms := MultiplesBetween(parseNum(m[1]), parseNum(m[2]), parseNum(m[3])); len(ms) > 0 {
			return joinInts(ms), true
		}
		return "", false
	}
	if m := isMultRe.FindStringSubmatch(q); m != nil {
		k := parseNum(m[2])
		if k == 0 {
			return "", false
		}
		return yesNo(IsMultiple(parseNum(m[1]), k)), true
	}
	if m := isDivRe.FindStringSubmatch(q); m != nil {
		k := parseNum(m[1])
		if k == 0 {
			return "", false
		}
		return yesNo(IsMultiple(parseNum(m[2]), k)), true
	}
	return "", false
}

// normalizeQuestion lowercases, drops question marks and a trailing "=" or
// ".", collapses whitespace and strips a leading "Calcula:"-style prefix.
func normalizeQuestion(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("¿", " ", "?", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, " .=")

	for _, p := range questionPrefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			s = strings.TrimSpace(rest)
			break
		}
	}
	return s
}

// parseNum parses an integer that may use "." as a thousands separator.
func parseNum(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ".", ""))
	return n
}
