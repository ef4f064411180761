package urlpattern_test

import (
	"testing"

	urlpattern "github.com/hueristiq/hq-go-urlpattern"
	"github.com/hueristiq/hq-go-urlpattern/pattern"
	"github.com/hueristiq/hq-go-urlpattern/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// S1: init record pathname-only match against a concrete URL.
func TestScenarioS1InitPathnameOnly(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.NewFromInit(urlpattern.UrlPatternInit{Pathname: strPtr("/users/:id")})
	require.NoError(t, err)

	result, ok := p.Exec("https://example.com/users/123")
	require.True(t, ok)
	assert.Equal(t, "123", result.Pathname.Groups["id"])
}

// S2: full constructor string; protocol/hostname pattern strings and a
// pathname capture.
func TestScenarioS2FullConstructorString(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("https://example.com/foo/:bar")
	require.NoError(t, err)

	assert.Equal(t, "https", p.Protocol().PatternString)
	assert.Equal(t, "example.com", p.Hostname().PatternString)

	result, ok := p.Exec("https://example.com/foo/baz")
	require.True(t, ok)
	assert.Equal(t, "baz", result.Pathname.Groups["bar"])
}

// S3: relative pathname-only pattern resolved against a base URL; a full
// wildcard's positional capture is exposed under key "0".
func TestScenarioS3RelativePathnameWithBase(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("/foo/*", urlpattern.WithBaseURL("https://example.com/"))
	require.NoError(t, err)

	result, ok := p.Exec("https://example.com/foo/a/b")
	require.True(t, ok)
	assert.Equal(t, "a/b", result.Pathname.Groups["0"])
}

// S4: an optional named group that does not participate in the match still
// reports an empty string rather than being absent from Groups.
func TestScenarioS4OptionalGroupEmptyString(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.NewFromInit(urlpattern.UrlPatternInit{Pathname: strPtr("/a/:x?")})
	require.NoError(t, err)

	result, ok := p.Exec("https://example.com/a")
	require.True(t, ok)

	group, present := result.Pathname.Groups["x"]
	assert.True(t, present)
	assert.Equal(t, "", group)
}

// S5: opaque-path (cannot-be-a-base) scheme via the structured init form,
// which sidesteps the colon/name-token ambiguity documented in DESIGN.md.
func TestScenarioS5OpaquePathScheme(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.NewFromInit(urlpattern.UrlPatternInit{
		Protocol: strPtr("data"),
		Pathname: strPtr("foo"),
	})
	require.NoError(t, err)

	assert.Equal(t, "data", p.Protocol().PatternString)
	assert.False(t, p.Pathname().HasRegexpGroups)

	ok := p.Test("data:foo")
	assert.True(t, ok)
}

// S6: an IPv6 hostname literal compiles via the IPv6 canonicalization
// callback and its pattern string is preserved verbatim.
func TestScenarioS6IPv6Hostname(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.NewFromInit(urlpattern.UrlPatternInit{Hostname: strPtr("[::1]")})
	require.NoError(t, err)

	assert.Equal(t, "[::1]", p.Hostname().PatternString)

	ok := p.Test("http://[::1]/")
	assert.True(t, ok)
}

// S7: duplicate capture names within one component is a compile error.
func TestScenarioS7DuplicateName(t *testing.T) {
	t.Parallel()

	_, err := urlpattern.New("/a/:dup/:dup", urlpattern.WithBaseURL("https://example.com/"))
	require.Error(t, err)

	var dupErr *pattern.DuplicateNameError
	assert.ErrorAs(t, err, &dupErr)
}

// S8: an embedded "(?...)" regex fragment is a tokenize error at the "?"
// immediately following the opening paren.
func TestScenarioS8InvalidEmbeddedRegexp(t *testing.T) {
	t.Parallel()

	_, err := urlpattern.NewFromInit(urlpattern.UrlPatternInit{Pathname: strPtr("/a/(?:foo)")})
	require.Error(t, err)

	var tokErr *tokenizer.Error
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, 4, tokErr.Pos)
}

// Invariant 1: every generated regex source is fully anchored.
func TestInvariantAnchoring(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("https://example.com/users/:id")
	require.NoError(t, err)

	for _, c := range []*urlpattern.Component{
		p.Protocol(), p.Username(), p.Password(), p.Hostname(),
		p.Port(), p.Pathname(), p.Search(), p.Hash(),
	} {
		src := c.Regexp.String()
		assert.True(t, len(src) >= 2 && src[0] == '^', "source %q must start with ^", src)
		assert.True(t, src[len(src)-1] == '$', "source %q must end with $", src)
	}
}

// Invariant 2: the declared capture-name list is exactly as long as the
// compiled regex's capture-group count.
func TestInvariantCaptureAlignment(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("https://example.com/users/:id/:action?")
	require.NoError(t, err)

	pathname := p.Pathname()
	assert.Equal(t, pathname.Regexp.NumSubexp(), len(pathname.GroupNameList))
}

// Invariant 4: name uniqueness is enforced per component, not across
// components (the same name may be reused in different components).
func TestInvariantNameUniquenessIsPerComponent(t *testing.T) {
	t.Parallel()

	_, err := urlpattern.NewFromInit(urlpattern.UrlPatternInit{
		Pathname: strPtr("/:id"),
		Search:   strPtr(":id"),
	})
	assert.NoError(t, err)
}

// Invariant 7: default-port elision empties the port component when it
// equals the protocol's special-scheme default.
func TestInvariantDefaultPortElision(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.NewFromInit(urlpattern.UrlPatternInit{
		Protocol: strPtr("http"),
		Port:     strPtr("80"),
	})
	require.NoError(t, err)

	assert.Equal(t, "", p.Port().PatternString)
}

func TestBaseUrlRequiredError(t *testing.T) {
	t.Parallel()

	_, err := urlpattern.New("/foo/*")
	require.Error(t, err)

	var baseErr *urlpattern.BaseUrlRequiredError
	assert.ErrorAs(t, err, &baseErr)
}

func TestBaseUrlWithInitError(t *testing.T) {
	t.Parallel()

	init := urlpattern.UrlPatternInit{Pathname: strPtr("/foo"), BaseURL: strPtr("https://example.com/")}

	_, err := urlpattern.NewFromInit(init, urlpattern.WithBaseURL("https://example.org/"))
	require.Error(t, err)

	var conflictErr *urlpattern.BaseUrlWithInitError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestIgnoreCaseOption(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.NewFromInit(
		urlpattern.UrlPatternInit{Hostname: strPtr("EXAMPLE.com")},
		urlpattern.WithIgnoreCase(),
	)
	require.NoError(t, err)

	ok := p.Hostname().Regexp.MatchString("example.com")
	assert.True(t, ok)
}
