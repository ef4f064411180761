package urlpattern

import (
	"net/url"
	"strings"

	"github.com/hueristiq/hq-go-urlpattern/constructor"
	"github.com/hueristiq/hq-go-urlpattern/internal/schemes"
	"github.com/hueristiq/hq-go-urlpattern/internal/urlutil"
)

// baseURLParser resolves an init record's BaseURL string. It is package
// state rather than per-call construction because building it re-indexes
// the TLD suffix array (internal/urlutil.New), and every UrlPatternInit in
// a process can share one read-only instance.
var baseURLParser = urlutil.New()

// initKind selects how processInit canonicalizes each present field: Pattern
// keeps values verbatim (they are pattern syntax, not literal URL text);
// Url runs every field through its real canonicalization callback, per
// spec.md §4.F step 2.
type initKind uint8

const (
	// patternKind is used when building a UrlPattern from a constructor
	// string or an init record (NewFromInit).
	patternKind initKind = iota
	// urlKind is used when resolving a match-time UrlPatternInit (ExecInit).
	urlKind
)

// resolvedInit is the eight-component output of processInit: values holds each
// component's resolved string, and present tracks whether it was ever set
// by base-URL seeding or by an explicit init field, as opposed to having no
// information at all (which compile-time defaults to "*" and match-time
// defaults to "").
type resolvedInit struct {
	values  [numComponents]string
	present [numComponents]bool
}

// UrlPatternInit is the structured, per-component counterpart to a single
// constructor string (§3 "UrlPatternInit"). A nil field means that
// component was not mentioned.
type UrlPatternInit struct {
	Protocol *string
	Username *string
	Password *string
	Hostname *string
	Port     *string
	Pathname *string
	Search   *string
	Hash     *string
	BaseURL  *string
}

// processInit runs §4.F steps 1-3 (base-URL seeding, per-field
// canonicalization, pathname resolution). Step 4 (default-port elision) is
// the caller's responsibility, since §4.G explicitly scopes match-time
// processing to steps 1-3 only.
func processInit(init UrlPatternInit, kind initKind) (*resolvedInit, error) {
	result := &resolvedInit{}

	var (
		baseIsSet           bool
		baseCannotBeABase   bool
		basePathname        string
	)

	if init.BaseURL != nil {
		baseURL, err := baseURLParser.Parse(*init.BaseURL)
		if err != nil {
			return nil, &UrlParseError{Err: err}
		}

		baseIsSet = true
		baseCannotBeABase = baseURL.Opaque != ""
		basePathname = baseURL.Path

		if baseCannotBeABase {
			basePathname = baseURL.Opaque
		}

		seedFromBaseURL(result, baseURL.URL, baseCannotBeABase)
	}

	if err := processField(result, idxProtocol, init.Protocol, kind, processProtocol); err != nil {
		return nil, err
	}

	if err := processField(result, idxUsername, init.Username, kind, processPassthroughOrCanon(canonicalizeUsername)); err != nil {
		return nil, err
	}

	if err := processField(result, idxPassword, init.Password, kind, processPassthroughOrCanon(canonicalizePassword)); err != nil {
		return nil, err
	}

	if err := processField(result, idxHostname, init.Hostname, kind, processHostname); err != nil {
		return nil, err
	}

	if err := processField(result, idxPort, init.Port, kind, processPort(result)); err != nil {
		return nil, err
	}

	if err := processField(result, idxSearch, init.Search, kind, processSearch); err != nil {
		return nil, err
	}

	if err := processField(result, idxHash, init.Hash, kind, processHash); err != nil {
		return nil, err
	}

	// Pathname is processed last among the explicit fields because its Url
	// canonicalization depends on the already-resolved protocol.
	if err := processField(result, idxPathname, init.Pathname, kind, processPathname(result)); err != nil {
		return nil, err
	}

	if init.Pathname != nil {
		resolvePathnamePrefix(result, *init.Pathname, kind, baseIsSet, baseCannotBeABase, basePathname)
	}

	return result, nil
}

func seedFromBaseURL(result *resolvedInit, baseURL *url.URL, cannotBeABase bool) {
	setResolved(result, idxProtocol, baseURL.Scheme)
	setResolved(result, idxUsername, baseURL.User.Username())

	password, _ := baseURL.User.Password()
	setResolved(result, idxPassword, password)

	setResolved(result, idxHostname, baseURL.Hostname())
	setResolved(result, idxPort, baseURL.Port())

	if cannotBeABase {
		setResolved(result, idxPathname, baseURL.Opaque)
	} else {
		setResolved(result, idxPathname, baseURL.EscapedPath())
	}

	setResolved(result, idxSearch, baseURL.RawQuery)
	setResolved(result, idxHash, baseURL.EscapedFragment())
}

func setResolved(result *resolvedInit, idx componentIndex, value string) {
	result.values[idx] = value
	result.present[idx] = true
}

// fieldProcessor canonicalizes one init field's raw value for the given
// kind; it may consult other already-resolved fields via closure.
type fieldProcessor func(value string, kind initKind) (string, error)

func processField(result *resolvedInit, idx componentIndex, raw *string, kind initKind, process fieldProcessor) error {
	if raw == nil {
		return nil
	}

	processed, err := process(*raw, kind)
	if err != nil {
		return err
	}

	setResolved(result, idx, processed)

	return nil
}

func processPassthroughOrCanon(canon func(string) (string, error)) fieldProcessor {
	return func(value string, kind initKind) (string, error) {
		if kind == patternKind {
			return value, nil
		}

		return canon(value)
	}
}

func processProtocol(value string, kind initKind) (string, error) {
	value = strings.TrimSuffix(value, ":")

	if kind == patternKind {
		return value, nil
	}

	return canonicalizeProtocol(value)
}

func processSearch(value string, kind initKind) (string, error) {
	value = strings.TrimPrefix(value, "?")

	if kind == patternKind {
		return value, nil
	}

	return canonicalizeSearch(value)
}

func processHash(value string, kind initKind) (string, error) {
	value = strings.TrimPrefix(value, "#")

	if kind == patternKind {
		return value, nil
	}

	return canonicalizeHash(value)
}

func processHostname(value string, kind initKind) (string, error) {
	if kind == patternKind {
		return value, nil
	}

	if constructor.IsIPv6Hostname(value) {
		return canonicalizeIPv6Hostname(value)
	}

	return canonicalizeHostname(value)
}

func processPort(result *resolvedInit) fieldProcessor {
	return func(value string, kind initKind) (string, error) {
		if kind == patternKind {
			return value, nil
		}

		return canonicalizePort(value, result.values[idxProtocol])
	}
}

func processPathname(result *resolvedInit) fieldProcessor {
	return func(value string, kind initKind) (string, error) {
		if kind == patternKind {
			return value, nil
		}

		if result.values[idxProtocol] == "" || schemes.IsSpecial(result.values[idxProtocol]) {
			return canonicalizeStandardPathname(value)
		}

		return canonicalizeCannotBeABasePathname(value)
	}
}

// resolvePathnamePrefix implements §4.F step 3: an explicitly provided,
// non-absolute pathname is prefixed with the base URL's pathname up to and
// including its last "/".
func resolvePathnamePrefix(result *resolvedInit, rawPathname string, kind initKind, baseIsSet, baseCannotBeABase bool, basePathname string) {
	if !baseIsSet || baseCannotBeABase {
		return
	}

	if isAbsolutePathnamePattern(rawPathname, kind) {
		return
	}

	lastSlash := strings.LastIndexByte(basePathname, '/')
	if lastSlash < 0 {
		return
	}

	result.values[idxPathname] = basePathname[:lastSlash+1] + result.values[idxPathname]
}

func isAbsolutePathnamePattern(pathname string, kind initKind) bool {
	if strings.HasPrefix(pathname, "/") {
		return true
	}

	if kind == patternKind && len(pathname) >= 2 {
		if strings.HasPrefix(pathname, `\/`) || strings.HasPrefix(pathname, "{/") {
			return true
		}
	}

	return false
}
