package artifact

import (
	"strings"
	"unicode"
)

// reservedWords are the Ada 2022 reserved words. None of them may be used as
// a unit or project name.
var reservedWords = map[string]struct{}{
	"abort": {}, "abs": {}, "abstract": {}, "accept": {}, "access": {},
	"aliased": {}, "all": {}, "and": {}, "array": {}, "at": {},
	"begin": {}, "body": {}, "case": {}, "constant": {}, "declare": {},
	"delay": {}, "delta": {}, "digits": {}, "do": {}, "else": {},
	"elsif": {}, "end": {}, "entry": {}, "exception": {}, "exit": {},
	"for": {}, "function": {}, "generic": {}, "goto": {}, "if": {},
	"in": {}, "interface": {}, "is": {}, "limited": {}, "loop": {},
	"mod": {}, "new": {}, "not": {}, "null": {}, "of": {},
	"or": {}, "others": {}, "out": {}, "overriding": {}, "package": {},
	"parallel": {}, "pragma": {}, "private": {}, "procedure": {}, "protected": {},
	"raise": {}, "range": {}, "record": {}, "rem": {}, "renames": {},
	"requeue": {}, "return": {}, "reverse": {}, "select": {}, "separate": {},
	"some": {}, "subtype": {}, "synchronized": {}, "tagged": {}, "task": {},
	"terminate": {}, "then": {}, "type": {}, "until": {}, "use": {},
	"when": {}, "while": {}, "with": {}, "xor": {},
}

// IsIdentifier reports whether s is usable as an Ada compilation unit name:
// a letter followed by letters, digits, and single underscores, not ending in
// an underscore, and not a reserved word.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	underscore := false
	for i, r := range s {
		switch {
		case i == 0:
			if !unicode.IsLetter(r) {
				return false
			}
		case r == '_':
			if underscore {
				return false
			}
			underscore = true
			continue
		case unicode.IsLetter(r), unicode.IsDigit(r):
		default:
			return false
		}
		underscore = false
	}
	if underscore {
		return false
	}
	_, reserved := reservedWords[strings.ToLower(s)]
	return !reserved
}
