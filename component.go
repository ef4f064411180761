package urlpattern

import (
	"regexp"

	"github.com/hueristiq/hq-go-urlpattern/internal/schemes"
	"github.com/hueristiq/hq-go-urlpattern/matcher"
	"github.com/hueristiq/hq-go-urlpattern/pattern"
	"github.com/hueristiq/hq-go-urlpattern/tokenizer"
)

// componentIndex names the fixed slot a component occupies in UrlPattern's
// eight-element array, in the order spec.md §3 defines: protocol, username,
// password, hostname, port, pathname, search, hash.
type componentIndex int

const (
	idxProtocol componentIndex = iota
	idxUsername
	idxPassword
	idxHostname
	idxPort
	idxPathname
	idxSearch
	idxHash
	numComponents
)

var componentNames = [numComponents]string{
	idxProtocol: "protocol",
	idxUsername: "username",
	idxPassword: "password",
	idxHostname: "hostname",
	idxPort:     "port",
	idxPathname: "pathname",
	idxSearch:   "search",
	idxHash:     "hash",
}

// Component is a single compiled URL component: a pattern string, its
// regular expression, the ordered names of its capture groups, and the
// specialized Matcher built from the same part list.
type Component struct {
	PatternString   string
	Regexp          *regexp.Regexp
	GroupNameList   []string
	Matcher         *matcher.Matcher
	HasRegexpGroups bool
}

// compileComponent runs a pattern substring through the three-stage pipeline
// (tokenizer → pattern parser → regex/pattern-string synthesizer) and
// specializes a Matcher from the resulting part list (§4.A-§4.D).
func compileComponent(patternStr string, opts pattern.Options, encode pattern.EncodeFunc) (*Component, error) {
	tokens, err := tokenizer.Tokenize(patternStr, tokenizer.Strict)
	if err != nil {
		return nil, err
	}

	parts, err := pattern.Parse(tokens, opts, encode)
	if err != nil {
		return nil, err
	}

	source, names := pattern.GenerateRegularExpressionAndNameList(parts, opts)
	if opts.IgnoreCase {
		source = "(?i)" + source
	}

	re, err := regexp.Compile(source)
	if err != nil {
		return nil, &RegExpCompileError{Source: source, Err: err}
	}

	hasRegexpGroups := false

	for _, part := range parts {
		if part.Kind == pattern.Regexp {
			hasRegexpGroups = true

			break
		}
	}

	return &Component{
		PatternString:   pattern.GeneratePatternString(parts, opts),
		Regexp:          re,
		GroupNameList:   names,
		Matcher:         matcher.Compile(parts, opts, re, names),
		HasRegexpGroups: hasRegexpGroups,
	}, nil
}

// matchesSpecialScheme reports whether a compiled protocol Component's regex
// accepts any of the six special scheme names (§4.E's
// should_treat_as_standard_url test, reapplied here for §4.F's pathname
// option selection).
func matchesSpecialScheme(protocolComponent *Component) bool {
	for _, scheme := range schemes.Special {
		if protocolComponent.Regexp.MatchString(scheme) {
			return true
		}
	}

	return false
}
