// Package pattern folds a tokenizer.Token stream into a list of Parts
// (fixed text, named captures, segment wildcards, full wildcards), and
// synthesizes both a regular-expression source and a canonical pattern
// string back out of that list.
package pattern
