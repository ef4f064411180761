package matcher_test

import (
	"regexp"
	"testing"

	"github.com/hueristiq/hq-go-urlpattern/matcher"
	"github.com/hueristiq/hq-go-urlpattern/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLiteral(t *testing.T) {
	t.Parallel()

	parts := []pattern.Part{{Kind: pattern.FixedText, Value: "/foo"}}
	m := matcher.Compile(parts, pattern.PathnameOptions(), nil, nil)

	assert.Equal(t, matcher.Literal, m.Kind)

	_, ok := m.Match("/foo")
	assert.True(t, ok)

	_, ok = m.Match("/bar")
	assert.False(t, ok)
}

func TestCompileSingleCaptureSegmentWildcard(t *testing.T) {
	t.Parallel()

	parts := []pattern.Part{
		{Kind: pattern.FixedText, Value: "/users/"},
		{Kind: pattern.SegmentWildcard, Name: "id"},
	}
	m := matcher.Compile(parts, pattern.PathnameOptions(), nil, []string{"id"})
	require.Equal(t, matcher.SingleCapture, m.Kind)
	assert.False(t, m.AllowEmpty)
	assert.Equal(t, "/", m.Filter)

	groups, ok := m.Match("/users/123")
	require.True(t, ok)
	assert.Equal(t, []string{"123"}, groups)

	_, ok = m.Match("/users/123/456")
	assert.False(t, ok, "segment wildcard must not cross the delimiter")
}

func TestCompileSingleCaptureFullWildcardAllowsEmpty(t *testing.T) {
	t.Parallel()

	parts := []pattern.Part{
		{Kind: pattern.FixedText, Value: "/foo/"},
		{Kind: pattern.FullWildcard, Name: "0"},
	}
	m := matcher.Compile(parts, pattern.PathnameOptions(), nil, []string{"0"})
	require.Equal(t, matcher.SingleCapture, m.Kind)
	assert.True(t, m.AllowEmpty)

	groups, ok := m.Match("/foo/")
	require.True(t, ok)
	assert.Equal(t, []string{""}, groups)

	groups, ok = m.Match("/foo/a/b")
	require.True(t, ok)
	assert.Equal(t, []string{"a/b"}, groups)
}

func TestCompileRegexFallbackAgreesWithRegex(t *testing.T) {
	t.Parallel()

	parts := []pattern.Part{
		{Kind: pattern.SegmentWildcard, Name: "a"},
		{Kind: pattern.FixedText, Value: "-"},
		{Kind: pattern.SegmentWildcard, Name: "b"},
	}
	opts := pattern.DefaultOptions()
	src, names := pattern.GenerateRegularExpressionAndNameList(parts, opts)
	re := regexp.MustCompile(src)

	m := matcher.Compile(parts, opts, re, names)
	require.Equal(t, matcher.RegexFallback, m.Kind)

	groups, ok := m.Match("foo-bar")
	require.True(t, ok)
	assert.Equal(t, []string{"foo", "bar"}, groups)
}
