package pattern

import (
	"strings"
	"unicode"
)

// GenerateRegularExpressionAndNameList builds an anchored regex source for
// parts (honoring opts' delimiter for bare wildcards) and the ordered list
// of capture-group names aligned with that regex's capture groups.
func GenerateRegularExpressionAndNameList(parts []Part, opts Options) (source string, names []string) {
	var b strings.Builder

	b.WriteByte('^')

	for _, part := range parts {
		if part.Kind == FixedText {
			if part.Modifier == ModifierNone {
				b.WriteString(EscapeRegexpString(part.Value))
			} else {
				b.WriteString("(?:")
				b.WriteString(EscapeRegexpString(part.Value))
				b.WriteString(")")
				b.WriteString(part.Modifier.String())
			}

			continue
		}

		names = append(names, part.Name)

		rv := regexpSourceFor(part, opts)

		switch {
		case part.Prefix == "" && part.Suffix == "":
			switch part.Modifier {
			case ModifierNone, ModifierOptional:
				b.WriteByte('(')
				b.WriteString(rv)
				b.WriteByte(')')
				b.WriteString(part.Modifier.String())
			default: // ZeroOrMore, OneOrMore
				b.WriteString("((?:")
				b.WriteString(rv)
				b.WriteString(")")
				b.WriteString(part.Modifier.String())
				b.WriteByte(')')
			}
		case part.Modifier == ModifierNone || part.Modifier == ModifierOptional:
			b.WriteString("(?:")
			b.WriteString(EscapeRegexpString(part.Prefix))
			b.WriteByte('(')
			b.WriteString(rv)
			b.WriteByte(')')
			b.WriteString(EscapeRegexpString(part.Suffix))
			b.WriteByte(')')
			b.WriteString(part.Modifier.String())
		default:
			trailing := ""
			if part.Modifier == ModifierZeroOrMore {
				trailing = "?"
			}

			escPrefix := EscapeRegexpString(part.Prefix)
			escSuffix := EscapeRegexpString(part.Suffix)

			b.WriteString("(?:")
			b.WriteString(escPrefix)
			b.WriteString("((?:")
			b.WriteString(rv)
			b.WriteString(")(?:")
			b.WriteString(escSuffix)
			b.WriteString(escPrefix)
			b.WriteString("(?:")
			b.WriteString(rv)
			b.WriteString("))*)")
			b.WriteString(escSuffix)
			b.WriteByte(')')
			b.WriteString(trailing)
		}
	}

	b.WriteByte('$')

	return b.String(), names
}

func regexpSourceFor(part Part, opts Options) string {
	switch part.Kind {
	case SegmentWildcard:
		return opts.SegmentWildcardRegexp()
	case FullWildcard:
		return FullWildcardRegexpValue
	default: // Regexp
		return part.Value
	}
}

// GeneratePatternString walks parts with one-part lookahead to reproduce a
// minimal source string that re-tokenizes and re-parses to an equivalent
// part list.
func GeneratePatternString(parts []Part, opts Options) string {
	var b strings.Builder

	for i, part := range parts {
		var prev, next *Part

		if i > 0 {
			prev = &parts[i-1]
		}

		if i+1 < len(parts) {
			next = &parts[i+1]
		}

		if part.Kind == FixedText {
			if part.Modifier == ModifierNone {
				b.WriteString(EscapePatternString(part.Value))
			} else {
				b.WriteByte('{')
				b.WriteString(EscapePatternString(part.Value))
				b.WriteByte('}')
				b.WriteString(part.Modifier.String())
			}

			continue
		}

		customName := !isASCIIDigitsOnly(part.Name)
		needsGrouping := partNeedsGrouping(part, prev, next, opts, customName)

		if needsGrouping {
			b.WriteByte('{')
		}

		b.WriteString(EscapePatternString(part.Prefix))

		if customName {
			b.WriteByte(':')
			b.WriteString(part.Name)
		}

		switch part.Kind {
		case Regexp:
			b.WriteByte('(')
			b.WriteString(part.Value)
			b.WriteByte(')')
		case SegmentWildcard:
			if !customName {
				b.WriteByte('(')
				b.WriteString(opts.SegmentWildcardRegexp())
				b.WriteByte(')')
			}
		case FullWildcard:
			if !customName && fullWildcardReparsesAsAsterisk(part, prev, needsGrouping) {
				b.WriteByte('*')
			} else {
				b.WriteString("(.*)")
			}
		}

		suffix := part.Suffix

		if part.Kind == SegmentWildcard && customName && suffix != "" && startsWithNameContinue(suffix) {
			b.WriteByte('\\')
		}

		b.WriteString(EscapePatternString(suffix))

		if needsGrouping {
			b.WriteByte('}')
		}

		b.WriteString(part.Modifier.String())
	}

	return b.String()
}

func isASCIIDigitsOnly(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func isNameContinueCodePoint(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func startsWithNameContinue(s string) bool {
	if s == "" {
		return false
	}

	r := []rune(s)[0]

	return isNameContinueCodePoint(r)
}

func partNeedsGrouping(part Part, prev, next *Part, opts Options, customName bool) bool {
	if part.Suffix != "" {
		return true
	}

	if part.Prefix != "" && part.Prefix != opts.Prefix {
		return true
	}

	if part.Kind == SegmentWildcard && customName && part.Modifier == ModifierNone &&
		part.Prefix == "" && part.Suffix == "" && next != nil {
		if next.IsFixedText() {
			if r := firstRune(next.Value); r != 0 && isNameContinueCodePoint(r) {
				return true
			}
		} else if next.Name != "" {
			if d := []rune(next.Name)[0]; d >= '0' && d <= '9' {
				return true
			}
		}
	}

	if part.Prefix == "" && prev != nil && prev.IsFixedText() {
		if last := lastRune(prev.Value); last != 0 && opts.Prefix != "" && string(last) == opts.Prefix {
			return true
		}
	}

	return false
}

func fullWildcardReparsesAsAsterisk(part Part, prev *Part, needsGrouping bool) bool {
	if needsGrouping {
		return true
	}

	if part.Prefix != "" {
		return true
	}

	if prev == nil {
		return true
	}

	if prev.IsFixedText() {
		return true
	}

	if prev.Modifier != ModifierNone {
		return true
	}

	return false
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return 0
}

func lastRune(s string) rune {
	var last rune

	for _, r := range s {
		last = r
	}

	return last
}
