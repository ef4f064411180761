package pattern_test

import (
	"testing"

	"github.com/hueristiq/hq-go-urlpattern/pattern"
	"github.com/hueristiq/hq-go-urlpattern/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(s string) (string, error) { return s, nil }

func parse(t *testing.T, input string, opts pattern.Options) []pattern.Part {
	t.Helper()

	tokens, err := tokenizer.Tokenize(input, tokenizer.Strict)
	require.NoError(t, err)

	parts, err := pattern.Parse(tokens, opts, identity)
	require.NoError(t, err)

	return parts
}

func TestParseNamedSegment(t *testing.T) {
	t.Parallel()

	parts := parse(t, "/users/:id", pattern.PathnameOptions())
	require.Len(t, parts, 2)

	assert.Equal(t, pattern.FixedText, parts[0].Kind)
	assert.Equal(t, "/users", parts[0].Value)
	assert.Equal(t, pattern.SegmentWildcard, parts[1].Kind)
	assert.Equal(t, "id", parts[1].Name)
}

func TestParseFullWildcard(t *testing.T) {
	t.Parallel()

	parts := parse(t, "/foo/*", pattern.PathnameOptions())
	require.Len(t, parts, 2)
	assert.Equal(t, pattern.FullWildcard, parts[1].Kind)
	assert.Equal(t, "0", parts[1].Name)
}

func TestParseOptionalGroup(t *testing.T) {
	t.Parallel()

	parts := parse(t, "/a/:x?", pattern.PathnameOptions())
	require.Len(t, parts, 2)
	assert.Equal(t, pattern.ModifierOptional, parts[1].Modifier)
}

func TestParseDuplicateNameErrors(t *testing.T) {
	t.Parallel()

	tokens, err := tokenizer.Tokenize("/a/:dup/:dup", tokenizer.Strict)
	require.NoError(t, err)

	_, err = pattern.Parse(tokens, pattern.PathnameOptions(), identity)
	require.Error(t, err)

	var dupErr *pattern.DuplicateNameError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dup", dupErr.Name)
}

func TestGenerateRegularExpressionIsAnchored(t *testing.T) {
	t.Parallel()

	parts := parse(t, "/users/:id", pattern.PathnameOptions())
	src, names := pattern.GenerateRegularExpressionAndNameList(parts, pattern.PathnameOptions())

	assert.True(t, len(src) > 0 && src[0] == '^')
	assert.True(t, src[len(src)-1] == '$')
	assert.Equal(t, []string{"id"}, names)
}

func TestGeneratePatternStringRoundTrips(t *testing.T) {
	t.Parallel()

	opts := pattern.PathnameOptions()
	parts := parse(t, "/users/:id", opts)

	canonical := pattern.GeneratePatternString(parts, opts)

	tokens, err := tokenizer.Tokenize(canonical, tokenizer.Strict)
	require.NoError(t, err)

	reparsed, err := pattern.Parse(tokens, opts, identity)
	require.NoError(t, err)

	require.Len(t, reparsed, len(parts))

	for i := range parts {
		assert.Equal(t, parts[i].Kind, reparsed[i].Kind)
		assert.Equal(t, parts[i].Name, reparsed[i].Name)
		assert.Equal(t, parts[i].Modifier, reparsed[i].Modifier)
	}
}

func TestGeneratePatternStringExplicitGroupNeeded(t *testing.T) {
	t.Parallel()

	opts := pattern.PathnameOptions()
	parts := parse(t, "/a{:x}suffix", opts)

	canonical := pattern.GeneratePatternString(parts, opts)
	assert.Contains(t, canonical, "{")
}
