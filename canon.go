package urlpattern

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hueristiq/hq-go-urlpattern/internal/schemes"
)

// The canonicalization callbacks below are the "out of scope... encoding
// callbacks" collaborator spec.md §1 describes: each takes a literal
// fixed-text/prefix/suffix run already extracted by the pattern parser and
// returns an ASCII string or fails. Most of them lean on net/url by splicing
// the literal run into a throwaway URL (such as "http://dummy.test/?<run>"
// or "<run>://dummy.test") and reading back whatever net/url canonicalized
// it to.

func canonicalizeProtocol(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u, err := url.Parse(value + "://dummy.test")
	if err != nil {
		return "", fmt.Errorf("urlpattern: invalid protocol %q: %w", value, err)
	}

	return u.Scheme, nil
}

func canonicalizeUsername(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u := &url.URL{User: url.User(value)}

	return percentEncodeNonASCII(u.User.String()), nil
}

func canonicalizePassword(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u := &url.URL{User: url.UserPassword("x", value)}
	encoded := u.User.String()

	idx := strings.IndexByte(encoded, ':')
	if idx < 0 {
		return "", nil
	}

	return percentEncodeNonASCII(encoded[idx+1:]), nil
}

func canonicalizeHostname(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u, err := url.Parse("http://" + value + "/")
	if err != nil {
		return "", fmt.Errorf("urlpattern: invalid hostname %q: %w", value, err)
	}

	return strings.ToLower(u.Hostname()), nil
}

// canonicalizeIPv6Hostname is used instead of canonicalizeHostname once
// constructor.IsIPv6Hostname has identified the hostname pattern as an IPv6
// literal (§4.E): it accepts only ASCII hex digits and the "[]:" bracket/
// colon code points, lowercased.
func canonicalizeIPv6Hostname(value string) (string, error) {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		case r == '[' || r == ']' || r == ':':
		default:
			return "", fmt.Errorf("urlpattern: invalid IPv6 hostname literal %q", value)
		}
	}

	return strings.ToLower(value), nil
}

// canonicalizePort accepts an optional protocolHint (the already-resolved
// protocol value, which may be "" for patterns with no literal protocol) and
// defaults the port to empty when it equals protocolHint's special-scheme
// default, per §6's "port callback accepts an optional protocol hint".
func canonicalizePort(value, protocolHint string) (string, error) {
	if value == "" {
		return "", nil
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("urlpattern: invalid port %q", value)
		}
	}

	if protocolHint != "" && schemes.DefaultPorts[protocolHint] == value {
		return "", nil
	}

	return value, nil
}

func canonicalizeSearch(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u, err := url.Parse("http://dummy.test/?" + value)
	if err != nil {
		return "", fmt.Errorf("urlpattern: invalid search %q: %w", value, err)
	}

	return percentEncodeNonASCII(u.RawQuery), nil
}

func canonicalizeHash(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u, err := url.Parse("http://dummy.test/#" + value)
	if err != nil {
		return "", fmt.Errorf("urlpattern: invalid hash %q: %w", value, err)
	}

	return percentEncodeNonASCII(u.EscapedFragment()), nil
}

func canonicalizeStandardPathname(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	path := value
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := url.Parse("http://dummy.test" + path)
	if err != nil {
		return "", fmt.Errorf("urlpattern: invalid pathname %q: %w", value, err)
	}

	return percentEncodeNonASCII(u.EscapedPath()), nil
}

// canonicalizeCannotBeABasePathname handles the opaque-path case (§4.F step
// 2, "cannot-be-a-base pathname"): the value is net/url's Opaque component of
// a throwaway "x:<value>" URL, which passes the path through unreinterpreted
// (no "/" splitting), only ASCII-folded for the component invariant.
func canonicalizeCannotBeABasePathname(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u, err := url.Parse("x:" + value)
	if err != nil {
		return "", fmt.Errorf("urlpattern: invalid opaque pathname %q: %w", value, err)
	}

	return percentEncodeNonASCII(u.Opaque), nil
}

// percentEncodeNonASCII enforces the component-string ASCII invariant
// (§3 "the pattern string is ASCII") on bytes net/url leaves untouched
// because they never needed reinterpretation (e.g. Opaque).
func percentEncodeNonASCII(s string) string {
	hasNonASCII := false

	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			hasNonASCII = true

			break
		}
	}

	if !hasNonASCII {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x80 {
			b.WriteByte(c)

			continue
		}

		fmt.Fprintf(&b, "%%%02X", c)
	}

	return b.String()
}
