// Package flexver converts arbitrary version-like strings into a
// best-effort four-component version plus leftover fragments. It never
// fails: every input maps to a (version, leftover, status) result, so
// callers can treat malformed vendor strings as ordinary data.
package flexver

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Unset marks a version component that could not be filled.
const Unset = -1

const (
	// maxComponent is the largest value a single component may hold.
	// Larger numeric runs are clamped and the remainder reported as leftover.
	maxComponent = math.MaxInt32

	numComponents = 4
)

// Version is a four-component dotted version. Components fill left to
// right; a component equal to Unset implies every component to its
// right is Unset as well. A Version is immutable once produced by Parse.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// noVersion is returned for input that yields no usable components.
var noVersion = Version{Unset, Unset, Unset, Unset}

// String renders the set components dot-joined, e.g. "1.2.3.4" or "1.2".
// A fully unset version renders as the empty string.
func (v Version) String() string {
	var sb strings.Builder
	for i, c := range v.components() {
		if c == Unset {
			break
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(c))
	}
	return sb.String()
}

func (v Version) components() [numComponents]int {
	return [numComponents]int{v.Major, v.Minor, v.Build, v.Revision}
}

// Leftover holds the substrings that could not be mapped into version
// components: one slot per component, plus a fifth slot for dotted
// segments beyond the fourth.
type Leftover [numComponents + 1]string

// Empty reports whether no leftover text was recorded.
func (l Leftover) Empty() bool {
	return l == Leftover{}
}

// Result is the outcome of a Parse call.
type Result struct {
	Version  Version
	Leftover Leftover
	Status   Status
}

// Parse converts s into a best-effort Version. It first attempts a
// strict conversion of the dot-separated segments (non-negative base-10
// integers within the int32 range, at most four used); segments beyond
// the fourth are rejoined into the last leftover slot. When the strict
// conversion fails, segments are stripped right to left until a prefix
// parses, and the first failed segment is salvaged by its longest
// leading digit run: values above 2147483647 are clamped with the
// arithmetic remainder prepended to the leftover, and every later
// component is forced to Unset with its original text preserved.
//
// Surrounding whitespace is trimmed; nothing else is normalized. A bare
// numeric segment such as "1" parses cleanly with the remaining
// components Unset.
func Parse(s string) Result {
	segments := strings.Split(strings.TrimSpace(s), ".")

	head := segments
	if len(head) > numComponents {
		head = segments[:numComponents]
	}

	if values, ok := parseStrict(head); ok {
		res := Result{Version: newVersion(values), Status: StatusOK}
		if len(segments) > numComponents {
			res.Leftover[numComponents] = strings.Join(segments[numComponents:], ".")
			res.Status = StatusOKExcess
		}
		return res
	}

	// Strip segments right to left until a prefix converts.
	for n := len(head) - 1; n >= 1; n-- {
		if values, ok := parseStrict(segments[:n]); ok {
			return salvage(segments, values, n)
		}
	}
	return salvage(segments, nil, 0)
}

// parseStrict converts 1..4 dot-separated segments, requiring every
// segment to be a plain run of ASCII digits within the int32 range.
func parseStrict(segments []string) ([]int, bool) {
	if len(segments) == 0 || len(segments) > numComponents {
		return nil, false
	}
	values := make([]int, 0, len(segments))
	for _, seg := range segments {
		if seg == "" || !isAllDigits(seg) {
			return nil, false
		}
		v, err := strconv.ParseInt(seg, 10, 64)
		if err != nil || v > maxComponent {
			return nil, false
		}
		values = append(values, int(v))
	}
	return values, true
}

// salvage builds the result for input whose segment at index failed
// (0-based) could not be used verbatim. values holds the components
// that parsed cleanly before it.
func salvage(segments []string, values []int, failed int) Result {
	seg := segments[failed]
	run := leadingDigits(seg)

	if failed == 0 && run == "" {
		// Not even a numeric prefix: no version can be produced.
		return Result{Version: noVersion, Status: StatusMalformed}
	}

	var res Result
	if run != "" {
		value, remainder := clampDigits(run)
		values = append(values, value)
		suffix := seg[len(run):]
		if remainder == "" {
			// A plain pre-release style suffix like "-beta3" drops its
			// separator; a clamp remainder keeps it ("53-beta5").
			suffix = strings.TrimPrefix(suffix, "-")
		}
		res.Leftover[failed] = remainder + suffix
	} else {
		res.Leftover[failed] = seg
	}

	// Everything past the first failure is preserved verbatim: one
	// segment per slot, anything beyond the fourth rejoined with dots.
	for i := failed + 1; i < len(segments) && i < numComponents; i++ {
		res.Leftover[i] = segments[i]
	}
	if len(segments) > numComponents {
		res.Leftover[numComponents] = strings.Join(segments[numComponents:], ".")
	}

	res.Version = newVersion(values)
	res.Status = failedStatus(failed)
	return res
}

// clampDigits converts a digit run to a component value. Runs above
// maxComponent are clamped and the arithmetic difference returned as a
// decimal string.
func clampDigits(run string) (int, string) {
	v, err := strconv.ParseInt(run, 10, 64)
	switch {
	case err == nil && v <= maxComponent:
		return int(v), ""
	case err == nil:
		return maxComponent, strconv.FormatInt(v-maxComponent, 10)
	default:
		// Beyond int64: do the subtraction in big integers.
		n := new(big.Int)
		n.SetString(run, 10)
		n.Sub(n, big.NewInt(maxComponent))
		return maxComponent, n.String()
	}
}

func newVersion(values []int) Version {
	v := noVersion
	for i, value := range values {
		switch i {
		case 0:
			v.Major = value
		case 1:
			v.Minor = value
		case 2:
			v.Build = value
		case 3:
			v.Revision = value
		}
	}
	return v
}

// leadingDigits returns the longest leading run of ASCII digits in s.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
