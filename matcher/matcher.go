package matcher

import (
	"regexp"
	"strings"

	"github.com/hueristiq/hq-go-urlpattern/pattern"
)

// Kind identifies which evaluation strategy a Matcher uses.
type Kind uint8

const (
	// Literal matches input that equals a fixed string exactly.
	Literal Kind = iota
	// SingleCapture matches any (optionally non-empty, optionally
	// delimiter-free) remaining input as one capture.
	SingleCapture
	// RegexFallback delegates to the component's full compiled regex.
	RegexFallback
)

// Matcher is the compiled fast-path evaluator for one Component.
type Matcher struct {
	Kind Kind

	// Prefix and Suffix are literal runs peeled from the part list; Match
	// requires input to start/end with them before consulting the inner
	// strategy on what remains.
	Prefix string
	Suffix string

	// Value is not set by Compile nor read by Match: a Literal matcher
	// compares input against Prefix+Suffix.
	Value string

	// Filter is the single delimiter rune a SingleCapture's middle slice
	// must not contain ("" means no filter).
	Filter     string
	AllowEmpty bool

	// Regexp backs RegexFallback; GroupNames mirrors the component's
	// group_name_list, and Match sizes RegexFallback captures to it.
	Regexp     *regexp.Regexp
	GroupNames []string
}

// Compile specializes parts (under opts) into the fastest Matcher shape
// that agrees with the full regex on every input (§4.D matcher agreement).
// compiledRegexp and groupNames are the already-synthesized full component
// regex and its group_name_list, used verbatim for the RegexFallback case.
func Compile(parts []pattern.Part, opts pattern.Options, compiledRegexp *regexp.Regexp, groupNames []string) *Matcher {
	// The literal fast paths compare case-sensitively, so a case-insensitive
	// component always uses its regex.
	if opts.IgnoreCase {
		return &Matcher{Kind: RegexFallback, Regexp: compiledRegexp, GroupNames: groupNames}
	}

	leadEnd := 0
	for leadEnd < len(parts) && isBareFixedText(parts[leadEnd]) {
		leadEnd++
	}

	tailStart := len(parts)
	for tailStart > leadEnd && isBareFixedText(parts[tailStart-1]) {
		tailStart--
	}

	var prefixB, suffixB strings.Builder
	for _, p := range parts[:leadEnd] {
		prefixB.WriteString(p.Value)
	}

	for _, p := range parts[tailStart:] {
		suffixB.WriteString(p.Value)
	}

	middle := parts[leadEnd:tailStart]

	switch {
	case len(middle) == 0:
		return &Matcher{Kind: Literal, Prefix: prefixB.String(), Suffix: suffixB.String()}
	case len(middle) == 1 && middle[0].Kind == pattern.FullWildcard && middle[0].Modifier == pattern.ModifierNone:
		return &Matcher{
			Kind:       SingleCapture,
			Prefix:     prefixB.String() + middle[0].Prefix,
			Suffix:     middle[0].Suffix + suffixB.String(),
			AllowEmpty: true,
			Filter:     "",
			GroupNames: groupNames,
		}
	case len(middle) == 1 && middle[0].Kind == pattern.SegmentWildcard && middle[0].Modifier == pattern.ModifierNone:
		return &Matcher{
			Kind:       SingleCapture,
			Prefix:     prefixB.String() + middle[0].Prefix,
			Suffix:     middle[0].Suffix + suffixB.String(),
			AllowEmpty: false,
			Filter:     opts.Delimiter,
			GroupNames: groupNames,
		}
	default:
		return &Matcher{Kind: RegexFallback, Regexp: compiledRegexp, GroupNames: groupNames}
	}
}

func isBareFixedText(p pattern.Part) bool {
	return p.Kind == pattern.FixedText && p.Modifier == pattern.ModifierNone
}

// Match reports whether input matches, returning capture strings aligned
// with GroupNames (for RegexFallback) or a single whole-remainder capture
// (for SingleCapture), or no captures (for Literal).
func (m *Matcher) Match(input string) (groups []string, ok bool) {
	switch m.Kind {
	case Literal:
		return nil, input == m.Prefix+m.Suffix
	case SingleCapture:
		if len(input) < len(m.Prefix)+len(m.Suffix) {
			return nil, false
		}

		if !strings.HasPrefix(input, m.Prefix) || !strings.HasSuffix(input, m.Suffix) {
			return nil, false
		}

		middle := input[len(m.Prefix) : len(input)-len(m.Suffix)]

		if !m.AllowEmpty && middle == "" {
			return nil, false
		}

		if m.Filter != "" && strings.Contains(middle, m.Filter) {
			return nil, false
		}

		return []string{middle}, true
	default: // RegexFallback
		match := m.Regexp.FindStringSubmatch(input)
		if match == nil {
			return nil, false
		}

		groups = make([]string, len(m.GroupNames))
		copy(groups, match[1:])

		return groups, true
	}
}
