// Package tlds provides lists of top-level domains used to validate and
// decompose hostnames: Official (IANA TLDs and public-suffix eTLDs) and
// Pseudo (unofficial or special-use TLDs such as "localhost" or "onion").
package tlds
