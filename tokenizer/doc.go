// Package tokenizer lexes a single URL-component pattern string (such as
// "/users/:id([0-9]+)") into a token stream: structural braces, name
// captures, embedded regex fragments, modifiers, wildcards, and literal
// characters.
//
// Tokenize accepts a Policy. Strict mode fails on any malformed input and
// is used when parsing a single component on its own. Lenient mode
// degrades malformed spans to InvalidChar tokens instead of failing, which
// is what lets the constructor-string parser (package constructor) scan a
// whole pattern string that has not yet been split into components.
package tokenizer
