package urlutil

import (
	"fmt"
	"index/suffixarray"
	"net"
	"net/url"
	"strings"

	"github.com/hueristiq/hq-go-urlpattern/internal/tlds"
)

// URL extends net/url.URL with a decomposed Domain, so base-URL resolution
// and hostname sanity-checks can share one parse.
type URL struct {
	*url.URL

	Domain *Domain
}

// Domain is a hostname split into subdomain, second-level domain, and
// top-level domain (e.g. "www", "example", "com" for "www.example.com").
type Domain struct {
	TopLevelDomain    string
	SecondLevelDomain string
	Subdomain         string
}

// String reconstructs the dotted hostname from its parts, omitting any that
// are empty.
func (d *Domain) String() (domain string) {
	var parts []string

	if d.Subdomain != "" {
		parts = append(parts, d.Subdomain)
	}

	if d.SecondLevelDomain != "" {
		parts = append(parts, d.SecondLevelDomain)
	}

	if d.TopLevelDomain != "" {
		parts = append(parts, d.TopLevelDomain)
	}

	domain = strings.Join(parts, ".")

	return
}

// Parser parses raw URL strings into *URL, using a suffix array over a TLD
// table for fast longest-suffix lookup of the top-level domain.
type Parser struct {
	scheme string

	sa *suffixarray.Index
}

// SetDefaultScheme sets the scheme prepended to scheme-less input.
func (p *Parser) SetDefaultScheme(scheme string) {
	p.scheme = scheme
}

// SetTLDs replaces the Parser's TLD table.
func (p *Parser) SetTLDs(TLDs ...string) {
	p.sa = suffixarray.New([]byte("\x00" + strings.Join(TLDs, "\x00") + "\x00"))
}

// Parse parses raw into a URL, decomposing the hostname into Domain unless
// the host is an IP literal.
func (p *Parser) Parse(raw string) (parsed *URL, err error) {
	parsed = &URL{}

	if p.scheme != "" {
		raw = p.addScheme(raw)
	}

	parsed.URL, err = url.Parse(raw)
	if err != nil {
		err = fmt.Errorf("urlutil: failed to parse URL: %w", err)

		return
	}

	hostname := parsed.Hostname()

	if net.ParseIP(hostname) == nil && hostname != "" {
		parsed.Domain = &Domain{}

		parts := strings.Split(hostname, ".")

		if len(parts) <= 1 {
			parsed.Domain.SecondLevelDomain = hostname

			return
		}

		TLDOffset := p.findTLDOffset(parts)

		if TLDOffset < 0 {
			parsed.Domain.SecondLevelDomain = hostname

			return
		}

		parsed.Domain.Subdomain = strings.Join(parts[:TLDOffset], ".")
		parsed.Domain.SecondLevelDomain = parts[TLDOffset]
		parsed.Domain.TopLevelDomain = strings.Join(parts[TLDOffset+1:], ".")
	}

	return
}

// IsKnownHostname reports whether hostname ends in a recognized top-level
// domain from the Parser's TLD table. A single-label hostname is always
// reported as known.
func (p *Parser) IsKnownHostname(hostname string) (ok bool) {
	parts := strings.Split(hostname, ".")
	if len(parts) < 1 {
		return false
	}

	return p.findTLDOffset(parts) >= 0 || len(parts) == 1
}

func (p *Parser) addScheme(inURL string) (outURL string) {
	switch {
	case strings.HasPrefix(inURL, "//"):
		outURL = p.scheme + ":" + inURL
	case strings.HasPrefix(inURL, "://"):
		outURL = p.scheme + inURL
	case !strings.Contains(inURL, "//"):
		outURL = p.scheme + "://" + inURL
	default:
		outURL = inURL
	}

	return
}

// findTLDOffset walks domain parts from the right, returning the index one
// before where the longest known TLD suffix begins, or -1 if none matches.
func (p *Parser) findTLDOffset(parts []string) (offset int) {
	offset = -1

	partsLastIndex := len(parts) - 1

	for i := partsLastIndex; i >= 0; i-- {
		TLD := strings.Join(parts[i:], ".")

		indices := p.sa.Lookup([]byte(TLD), -1)

		if len(indices) > 0 {
			offset = i - 1
		} else {
			break
		}
	}

	return
}

// OptionFunc configures a Parser.
type OptionFunc func(parser *Parser)

// New builds a Parser seeded with the package's TLD tables.
func New(ofs ...OptionFunc) (parser *Parser) {
	parser = &Parser{}

	TLDs := make([]string, 0, len(tlds.Official)+len(tlds.Pseudo))
	TLDs = append(TLDs, tlds.Official...)
	TLDs = append(TLDs, tlds.Pseudo...)

	parser.sa = suffixarray.New([]byte("\x00" + strings.Join(TLDs, "\x00") + "\x00"))

	for _, f := range ofs {
		f(parser)
	}

	return
}

// WithDefaultScheme sets the Parser's default scheme.
func WithDefaultScheme(scheme string) OptionFunc {
	return func(parser *Parser) {
		parser.SetDefaultScheme(scheme)
	}
}

// WithTLDs overrides the Parser's TLD table.
func WithTLDs(TLDs ...string) OptionFunc {
	return func(parser *Parser) {
		parser.SetTLDs(TLDs...)
	}
}
