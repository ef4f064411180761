// Package matcher turns a compiled component (its Part list, Options, and
// already-synthesized regular expression) into a fast evaluator. Three
// shapes are recognized at compile time - a bare literal, a single bare
// wildcard capture, and everything else falling back to the regular
// expression - so that common patterns avoid a regex engine call per match.
package matcher
