// Package params normalizes the loosely-typed header arguments of an Ada
// block into a typed Params record.
//
// Hosts pass arguments as a map whose values may be strings, symbols
// (anything implementing fmt.Stringer), or JSON scalars. Parse trims and
// coerces them, applies defaults for absent keys, and rejects tokens it does
// not recognize instead of silently treating them as false.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidParameter indicates a parameter value that cannot be coerced.
var ErrInvalidParameter = errors.New("invalid parameter")

// Recognized parameter keys.
const (
	KeyUnit       = "unit"
	KeyAdaVersion = "ada-version"
	KeyAssertions = "assertions"
	KeyProve      = "prove"
	KeyMode       = "mode"
	KeyLevel      = "level"
)

// Params is the normalized parameter set of one block.
type Params struct {
	// Unit fixes the artifact base name. Empty means anonymous naming.
	Unit string `json:"unit,omitempty"`

	// AdaVersion overrides the configured language version. Zero means
	// "use the configured default".
	AdaVersion int `json:"adaVersion,omitempty"`

	// Assertions enables the configured assertion flag.
	Assertions bool `json:"assertions,omitempty"`

	// Prove switches from compile-and-run to formal verification.
	Prove bool `json:"prove,omitempty"`

	// Mode is passed to the verifier as --mode=<Mode> when non-empty.
	Mode string `json:"mode,omitempty"`

	// Level is passed to the verifier as --level=<Level> when non-empty.
	Level string `json:"level,omitempty"`
}

// EffectiveVersion returns the block's version override, or defaultVersion
// when the block does not set one.
func (p Params) EffectiveVersion(defaultVersion int) int {
	if p.AdaVersion != 0 {
		return p.AdaVersion
	}
	return defaultVersion
}

// Parse normalizes a raw parameter mapping. Keys are trimmed, lower-cased,
// and stripped of a leading colon. Unknown keys are ignored. Two raw keys that
// normalize to the same key are rejected.
func Parse(raw map[string]any) (Params, error) {
	values, err := normalizeKeys(raw)
	if err != nil {
		return Params{}, err
	}

	var p Params
	if s, ok := values[KeyUnit].(string); ok {
		p.Unit = strings.TrimSpace(s)
	}
	if s, ok := values[KeyMode].(string); ok {
		p.Mode = strings.TrimSpace(s)
	}
	if s, ok := values[KeyLevel].(string); ok {
		p.Level = strings.TrimSpace(s)
	}

	if p.AdaVersion, err = ParseVersion(values[KeyAdaVersion]); err != nil {
		return Params{}, fmt.Errorf("%s: %w", KeyAdaVersion, err)
	}
	if p.Assertions, err = ParseBool(values[KeyAssertions]); err != nil {
		return Params{}, fmt.Errorf("%s: %w", KeyAssertions, err)
	}
	if p.Prove, err = ParseBool(values[KeyProve]); err != nil {
		return Params{}, fmt.Errorf("%s: %w", KeyProve, err)
	}
	return p, nil
}

func normalizeKeys(raw map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(raw))
	origin := make(map[string]string, len(raw))
	for _, k := range keys {
		norm := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(k), ":"))
		if prev, dup := origin[norm]; dup {
			return nil, fmt.Errorf("%w: %q and %q both set %s", ErrInvalidParameter, prev, k, norm)
		}
		origin[norm] = k
		out[norm] = raw[k]
	}
	return out, nil
}

// ParseBool coerces a flag value. Only the canonical token "t" and the Go
// value true are true. Absence, "", "nil" and the Go value false are false.
// Anything else, "true" and "T" included, is ErrInvalidParameter.
func ParseBool(v any) (bool, error) {
	var s string
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	default:
		return false, fmt.Errorf("%w: unsupported flag value of type %T", ErrInvalidParameter, v)
	}
	switch s {
	case "t":
		return true, nil
	case "", "nil":
		return false, nil
	}
	return false, fmt.Errorf("%w: unrecognized flag value %q, want t or nil", ErrInvalidParameter, s)
}

// ParseVersion coerces a language version code. Absence and "" are 0.
// Negative and non-integral values are ErrInvalidParameter.
func ParseVersion(v any) (int, error) {
	var n int64
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt32 {
			return 0, fmt.Errorf("%w: version %d out of range", ErrInvalidParameter, x)
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%w: version %v is not an integer", ErrInvalidParameter, x)
		}
		n = int64(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: version %q is not an integer", ErrInvalidParameter, x.String())
		}
		n = i
	default:
		s, ok := token(v)
		if !ok {
			return 0, fmt.Errorf("%w: unsupported version value of type %T", ErrInvalidParameter, v)
		}
		if s == "" {
			return 0, nil
		}
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: version %q is not an integer", ErrInvalidParameter, s)
		}
		n = i
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: version %d out of range", ErrInvalidParameter, n)
	}
	return int(n), nil
}

// token returns the trimmed textual form of a string or symbol value.
func token(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case fmt.Stringer:
		return strings.TrimSpace(x.String()), true
	}
	return "", false
}
