package grammar

import (
	"unicode"
)

type runeRange struct {
	lo, hi rune
}

// CharSet is a set of characters defined like regular expression character class
// without brackets: "A-Za-z_", "^\r\n". Leading "^" inverts the set.
// Escapes \n, \r, \t, \f, \v denote control characters, \s, \d, \w and their
// upper-case forms denote (inverted) character classes, any other escaped
// character denotes itself.
type CharSet struct {
	spec    string
	negate  bool
	ranges  []runeRange
	classes []func(rune) bool
}

// ParseCharSet parses character set specification.
func ParseCharSet(spec string) (CharSet, error) {
	cs := CharSet{spec: spec}
	rs := []rune(spec)
	if len(rs) > 0 && rs[0] == '^' {
		cs.negate = true
		rs = rs[1:]
	}

	i := 0
	next := func() (r rune, class func(rune) bool, e error) {
		r = rs[i]
		i++
		if r != '\\' {
			return
		}
		if i >= len(rs) {
			return 0, nil, charSetError(spec, "trailing backslash")
		}

		r = rs[i]
		i++
		switch r {
		case 'n':
			r = '\n'
		case 'r':
			r = '\r'
		case 't':
			r = '\t'
		case 'f':
			r = '\f'
		case 'v':
			r = '\v'
		case 's', 'S', 'd', 'D', 'w', 'W':
			class = escapeClass(r)
		}
		return
	}

	for i < len(rs) {
		lo, class, e := next()
		if e != nil {
			return CharSet{}, e
		}
		if class != nil {
			cs.classes = append(cs.classes, class)
			continue
		}

		hi := lo
		if i+1 < len(rs) && rs[i] == '-' {
			i++
			var hiClass func(rune) bool
			hi, hiClass, e = next()
			if e != nil {
				return CharSet{}, e
			}
			if hiClass != nil {
				return CharSet{}, charSetError(spec, "character class used as range bound")
			}
			if hi < lo {
				return CharSet{}, charSetError(spec, "reversed range")
			}
		}
		cs.ranges = append(cs.ranges, runeRange{lo, hi})
	}

	return cs, nil
}

// RangeSet creates character set containing characters from lo to hi inclusive.
func RangeSet(lo, hi rune) CharSet {
	return CharSet{spec: string(lo) + "-" + string(hi), ranges: []runeRange{{lo, hi}}}
}

// SpaceSet is the set of whitespace characters.
var SpaceSet = CharSet{spec: `\s`, classes: []func(rune) bool{unicode.IsSpace}}

func escapeClass(r rune) func(rune) bool {
	var class func(rune) bool
	switch unicode.ToLower(r) {
	case 's':
		class = unicode.IsSpace
	case 'd':
		class = unicode.IsDigit
	case 'w':
		class = func(r rune) bool {
			return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		}
	}
	if unicode.IsUpper(r) {
		return func(r rune) bool {
			return !class(r)
		}
	}
	return class
}

// Contains tells whether r belongs to the set.
func (cs CharSet) Contains(r rune) bool {
	return cs.contains(r) != cs.negate
}

func (cs CharSet) contains(r rune) bool {
	for _, rr := range cs.ranges {
		if r >= rr.lo && r <= rr.hi {
			return true
		}
	}
	for _, class := range cs.classes {
		if class(r) {
			return true
		}
	}
	return false
}

// String returns set specification.
func (cs CharSet) String() string {
	return cs.spec
}

// IsZero tells whether the set is not defined.
func (cs CharSet) IsZero() bool {
	return cs.spec == "" && !cs.negate && cs.ranges == nil && cs.classes == nil
}
