package urlpattern

import (
	"fmt"
	"net/url"

	"github.com/hueristiq/hq-go-urlpattern/constructor"
	"github.com/hueristiq/hq-go-urlpattern/internal/schemes"
	"github.com/hueristiq/hq-go-urlpattern/pattern"
)

// UrlPattern is eight compiled Components in fixed order (§3): protocol,
// username, password, hostname, port, pathname, search, hash. It is
// immutable after construction and safe to share read-only across
// goroutines (§5).
type UrlPattern struct {
	components [numComponents]*Component
}

// New compiles a single constructor string spanning all eight components
// (e.g. "https://example.com/users/:id"), optionally resolved against a
// base URL supplied via WithBaseURL.
func New(input string, opts ...Option) (*UrlPattern, error) {
	cfg := applyOptions(opts)

	sliced, err := constructor.Parse(input)
	if err != nil {
		return nil, err
	}

	if sliced.Protocol == nil && cfg.BaseURL == "" {
		return nil, &BaseUrlRequiredError{}
	}

	init := UrlPatternInit{
		Protocol: sliced.Protocol,
		Username: sliced.Username,
		Password: sliced.Password,
		Hostname: sliced.Hostname,
		Port:     sliced.Port,
		Pathname: sliced.Pathname,
		Search:   sliced.Search,
		Hash:     sliced.Hash,
	}

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		init.BaseURL = &baseURL
	}

	return compileFromInit(init, cfg)
}

// NewFromInit compiles a structured per-component pattern record. Supplying
// both init.BaseURL and WithBaseURL is a BaseUrlWithInitError.
func NewFromInit(init UrlPatternInit, opts ...Option) (*UrlPattern, error) {
	cfg := applyOptions(opts)

	if init.BaseURL != nil && cfg.BaseURL != "" {
		return nil, &BaseUrlWithInitError{}
	}

	if init.BaseURL == nil && cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		init.BaseURL = &baseURL
	}

	return compileFromInit(init, cfg)
}

func applyOptions(opts []Option) UrlPatternOptions {
	var cfg UrlPatternOptions

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// compileFromInit runs §4.F's four steps and compiles all eight Components.
func compileFromInit(init UrlPatternInit, cfg UrlPatternOptions) (*UrlPattern, error) {
	resolved, err := processInit(init, patternKind)
	if err != nil {
		return nil, err
	}

	for i := componentIndex(0); i < numComponents; i++ {
		if !resolved.present[i] {
			resolved.values[i] = "*"
		}
	}

	// §4.F step 4: default-port elision, scoped to compile time only (§4.G
	// runs steps 1-3 for match-time init processing).
	if schemes.IsSpecial(resolved.values[idxProtocol]) {
		if schemes.DefaultPorts[resolved.values[idxProtocol]] == resolved.values[idxPort] {
			resolved.values[idxPort] = ""
		}
	}

	defaultOpts := pattern.DefaultOptions()
	defaultOpts.IgnoreCase = cfg.IgnoreCase

	p := &UrlPattern{}

	protocolComponent, err := compileComponent(resolved.values[idxProtocol], defaultOpts, canonicalizeProtocol)
	if err != nil {
		return nil, wrapComponentErr(idxProtocol, err)
	}

	p.components[idxProtocol] = protocolComponent

	p.components[idxUsername], err = compileComponent(resolved.values[idxUsername], defaultOpts, canonicalizeUsername)
	if err != nil {
		return nil, wrapComponentErr(idxUsername, err)
	}

	p.components[idxPassword], err = compileComponent(resolved.values[idxPassword], defaultOpts, canonicalizePassword)
	if err != nil {
		return nil, wrapComponentErr(idxPassword, err)
	}

	hostnameOpts := pattern.HostnameOptions()
	hostnameOpts.IgnoreCase = cfg.IgnoreCase

	hostnameEncode := pattern.EncodeFunc(canonicalizeHostname)
	if constructor.IsIPv6Hostname(resolved.values[idxHostname]) {
		hostnameEncode = canonicalizeIPv6Hostname
	}

	p.components[idxHostname], err = compileComponent(resolved.values[idxHostname], hostnameOpts, hostnameEncode)
	if err != nil {
		return nil, wrapComponentErr(idxHostname, err)
	}

	portValue := resolved.values[idxPort]
	portProtocolHint := resolved.values[idxProtocol]

	p.components[idxPort], err = compileComponent(portValue, defaultOpts, func(v string) (string, error) {
		return canonicalizePort(v, portProtocolHint)
	})
	if err != nil {
		return nil, wrapComponentErr(idxPort, err)
	}

	pathnameOpts := defaultOpts
	pathnameEncode := pattern.EncodeFunc(canonicalizeCannotBeABasePathname)

	if matchesSpecialScheme(protocolComponent) {
		pathnameOpts = pattern.PathnameOptions()
		pathnameOpts.IgnoreCase = cfg.IgnoreCase
		pathnameEncode = canonicalizeStandardPathname
	}

	p.components[idxPathname], err = compileComponent(resolved.values[idxPathname], pathnameOpts, pathnameEncode)
	if err != nil {
		return nil, wrapComponentErr(idxPathname, err)
	}

	p.components[idxSearch], err = compileComponent(resolved.values[idxSearch], defaultOpts, canonicalizeSearch)
	if err != nil {
		return nil, wrapComponentErr(idxSearch, err)
	}

	p.components[idxHash], err = compileComponent(resolved.values[idxHash], defaultOpts, canonicalizeHash)
	if err != nil {
		return nil, wrapComponentErr(idxHash, err)
	}

	return p, nil
}

func wrapComponentErr(idx componentIndex, err error) error {
	return fmt.Errorf("urlpattern: %s component: %w", componentNames[idx], err)
}

// Protocol returns the compiled protocol component.
func (p *UrlPattern) Protocol() *Component { return p.components[idxProtocol] }

// Username returns the compiled username component.
func (p *UrlPattern) Username() *Component { return p.components[idxUsername] }

// Password returns the compiled password component.
func (p *UrlPattern) Password() *Component { return p.components[idxPassword] }

// Hostname returns the compiled hostname component.
func (p *UrlPattern) Hostname() *Component { return p.components[idxHostname] }

// Port returns the compiled port component.
func (p *UrlPattern) Port() *Component { return p.components[idxPort] }

// Pathname returns the compiled pathname component.
func (p *UrlPattern) Pathname() *Component { return p.components[idxPathname] }

// Search returns the compiled search component.
func (p *UrlPattern) Search() *Component { return p.components[idxSearch] }

// Hash returns the compiled hash component.
func (p *UrlPattern) Hash() *Component { return p.components[idxHash] }

// HasRegexpGroups reports whether any component embeds a raw "(...)" regex
// fragment, mirroring rust-urlpattern's has_regexp_groups (§3 supplement).
func (p *UrlPattern) HasRegexpGroups() bool {
	for _, c := range p.components {
		if c.HasRegexpGroups {
			return true
		}
	}

	return false
}

// ComponentResult is one component's match-time outcome: the input string
// it was tested against and its captured named groups.
type ComponentResult struct {
	Input  string
	Groups map[string]string
}

// UrlPatternResult is the eight-component outcome of a successful match.
type UrlPatternResult struct {
	Protocol ComponentResult
	Username ComponentResult
	Password ComponentResult
	Hostname ComponentResult
	Port     ComponentResult
	Pathname ComponentResult
	Search   ComponentResult
	Hash     ComponentResult
}

// Test reports whether rawURL matches every component (§4.G). rawURL is
// decomposed directly into its eight constituent strings; no canonicalization
// is applied (a concrete URL is already canonical).
func (p *UrlPattern) Test(rawURL string) bool {
	strs, err := decomposeURL(rawURL)
	if err != nil {
		return false
	}

	_, ok := p.execStrings(strs)

	return ok
}

// Exec matches rawURL and, if successful, returns the per-component inputs
// and captured groups.
func (p *UrlPattern) Exec(rawURL string) (*UrlPatternResult, bool) {
	strs, err := decomposeURL(rawURL)
	if err != nil {
		return nil, false
	}

	return p.execStrings(strs)
}

// TestInit reports whether a structured match-time input matches every
// component, after running §4.F steps 1-3 (kind=Url) to fill all eight
// strings. Any failure of that processing, including an unparsable
// init.BaseURL, is a no-match; TestInit and ExecInit never return an error.
func (p *UrlPattern) TestInit(init UrlPatternInit) bool {
	_, ok := p.ExecInit(init)

	return ok
}

// ExecInit is TestInit's result-returning counterpart.
func (p *UrlPattern) ExecInit(init UrlPatternInit) (*UrlPatternResult, bool) {
	resolved, err := processInit(init, urlKind)
	if err != nil {
		return nil, false
	}

	return p.execStrings(resolved.values)
}

func (p *UrlPattern) execStrings(strs [numComponents]string) (*UrlPatternResult, bool) {
	var captured [numComponents][]string

	for i := componentIndex(0); i < numComponents; i++ {
		groups, ok := p.components[i].Matcher.Match(strs[i])
		if !ok {
			return nil, false
		}

		captured[i] = groups
	}

	result := &UrlPatternResult{
		Protocol: componentResult(strs[idxProtocol], p.components[idxProtocol], captured[idxProtocol]),
		Username: componentResult(strs[idxUsername], p.components[idxUsername], captured[idxUsername]),
		Password: componentResult(strs[idxPassword], p.components[idxPassword], captured[idxPassword]),
		Hostname: componentResult(strs[idxHostname], p.components[idxHostname], captured[idxHostname]),
		Port:     componentResult(strs[idxPort], p.components[idxPort], captured[idxPort]),
		Pathname: componentResult(strs[idxPathname], p.components[idxPathname], captured[idxPathname]),
		Search:   componentResult(strs[idxSearch], p.components[idxSearch], captured[idxSearch]),
		Hash:     componentResult(strs[idxHash], p.components[idxHash], captured[idxHash]),
	}

	return result, true
}

func componentResult(input string, c *Component, groups []string) ComponentResult {
	named := make(map[string]string, len(c.GroupNameList))

	for i, name := range c.GroupNameList {
		if i < len(groups) {
			named[name] = groups[i]
		} else {
			named[name] = ""
		}
	}

	return ComponentResult{Input: input, Groups: named}
}

// decomposeURL splits a concrete URL directly into its eight component
// strings without running any canonicalization callback (§4.G "or a URL
// (decompose into the eight strings directly)").
func decomposeURL(rawURL string) (strs [numComponents]string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strs, err
	}

	strs[idxProtocol] = u.Scheme
	strs[idxUsername] = u.User.Username()

	password, _ := u.User.Password()
	strs[idxPassword] = password

	strs[idxHostname] = u.Hostname()
	strs[idxPort] = u.Port()

	if u.Opaque != "" {
		strs[idxPathname] = u.Opaque
	} else {
		strs[idxPathname] = u.EscapedPath()
	}

	strs[idxSearch] = u.RawQuery
	strs[idxHash] = u.EscapedFragment()

	return strs, nil
}
