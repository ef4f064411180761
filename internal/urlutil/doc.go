// Package urlutil parses raw URL strings into a structure that pairs the
// standard net/url.URL with a decomposed hostname (subdomain, second-level
// domain, top-level domain).
//
// urlpattern uses it to parse a base URL supplied alongside a pattern.
// Parser.IsKnownHostname checks a hostname against the table of known
// top-level domains; urlpattern does not call it.
package urlutil
