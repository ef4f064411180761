// Package urlpattern implements the URLPattern standard: compiling a
// declarative, URL-shaped pattern (named placeholders, wildcards, embedded
// regular-expression fragments) into a matcher that decides whether a URL
// matches and, if so, returns the captured named groups per component.
//
// A UrlPattern is built from either a single constructor string spanning all
// eight URL components (protocol, username, password, hostname, port,
// pathname, search, hash) via New, or from a structured UrlPatternInit via
// NewFromInit. Once compiled, it is immutable and safe for concurrent
// read-only use via Test/TestInit and Exec/ExecInit.
package urlpattern
