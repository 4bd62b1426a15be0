package gradstate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// FormatNumber returns the decimal text JavaScript produces for x
// (Number.prototype.toString): shortest round-trip digits, fixed notation
// for 1e-6 <= |x| < 1e21 and exponential notation otherwise.
//
// Generated markup and query strings use it so that numbers read back
// with ParseNumber (or strconv.ParseFloat) give the exact same float.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	sign := ""
	if x < 0 {
		sign, x = "-", -x
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(x, 'e', -1, 64), "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	e, _ := strconv.Atoi(exp)
	n, k := e+1, len(digits) // n is the position of the decimal point
	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}
	expSign := "+"
	if e < 0 {
		expSign, e = "-", -e
	}
	if k == 1 {
		return sign + digits + "e" + expSign + strconv.Itoa(e)
	}
	return sign + digits[:1] + "." + digits[1:] + "e" + expSign + strconv.Itoa(e)
}

var numberPrefixRe = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseNumber mimics JavaScript parseFloat: leading white space is
// skipped and the longest numeric prefix is parsed. NaN is returned when
// no prefix matches.
func ParseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := numberPrefixRe.FindString(s)
	if m == "" {
		return math.NaN()
	}
	if strings.HasSuffix(m, "Infinity") {
		if m[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// out of range values come back as +-Inf, like in JavaScript
	f, _ := strconv.ParseFloat(m, 64)
	return f
}
