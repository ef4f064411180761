// Package constructor slices a single URL-shaped pattern string (such as
// "https://example.com/users/:id") into the eight per-component pattern
// substrings (protocol, username, password, hostname, port, pathname,
// search, hash) using a state machine over a leniently tokenized stream.
//
// It does not compile components itself; that is left to the caller (the
// root urlpattern package), which feeds each returned substring through
// package tokenizer (Strict) and package pattern.
package constructor
