package urlpattern

// UrlPatternOptions are the compile-time knobs accepted by New and
// NewFromInit, configured through functional Options.
type UrlPatternOptions struct {
	IgnoreCase bool
	BaseURL    string
}

// Option configures a UrlPatternOptions. It follows the functional-options
// idiom used throughout this module's supporting parser/extractor layer.
type Option func(*UrlPatternOptions)

// WithIgnoreCase compiles every component's regex with ASCII-case-insensitive
// semantics.
func WithIgnoreCase() Option {
	return func(o *UrlPatternOptions) {
		o.IgnoreCase = true
	}
}

// WithBaseURL supplies a base URL to resolve a relative string pattern
// against. Passing it alongside an init record that already carries its own
// BaseURL is a BaseUrlWithInitError.
func WithBaseURL(baseURL string) Option {
	return func(o *UrlPatternOptions) {
		o.BaseURL = baseURL
	}
}
