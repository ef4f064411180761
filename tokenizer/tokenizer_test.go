package tokenizer_test

import (
	"testing"

	"github.com/hueristiq/hq-go-urlpattern/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLiteralAndModifiers(t *testing.T) {
	t.Parallel()

	tokens, err := tokenizer.Tokenize("/foo/*", tokenizer.Strict)
	require.NoError(t, err)

	var kinds []tokenizer.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []tokenizer.Kind{
		tokenizer.Char, tokenizer.Char, tokenizer.Char, tokenizer.Char,
		tokenizer.Char, tokenizer.Asterisk, tokenizer.End,
	}, kinds)
}

func TestTokenizeNameAndRegexp(t *testing.T) {
	t.Parallel()

	tokens, err := tokenizer.Tokenize(":id([0-9]+)", tokenizer.Strict)
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, tokenizer.Name, tokens[0].Kind)
	assert.Equal(t, "id", tokens[0].Value)
	assert.Equal(t, tokenizer.Regexp, tokens[1].Kind)
	assert.Equal(t, "[0-9]+", tokens[1].Value)
	assert.Equal(t, tokenizer.End, tokens[2].Kind)
}

func TestTokenizeEscapedChar(t *testing.T) {
	t.Parallel()

	tokens, err := tokenizer.Tokenize(`\{`, tokenizer.Strict)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, tokenizer.EscapedChar, tokens[0].Kind)
	assert.Equal(t, "{", tokens[0].Value)
}

func TestTokenizeInvalidRegexpLeadingQuestionMarkStrict(t *testing.T) {
	t.Parallel()

	_, err := tokenizer.Tokenize("(?invalid)", tokenizer.Strict)
	require.Error(t, err)

	var tErr *tokenizer.Error
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, 1, tErr.Pos)
}

func TestTokenizeInvalidRegexpLenientDegrades(t *testing.T) {
	t.Parallel()

	tokens, err := tokenizer.Tokenize("(?invalid)", tokenizer.Lenient)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	assert.Equal(t, tokenizer.InvalidChar, tokens[0].Kind)
}

func TestTokenizeUnterminatedEscapeStrict(t *testing.T) {
	t.Parallel()

	_, err := tokenizer.Tokenize(`\`, tokenizer.Strict)
	require.Error(t, err)
}

func TestTokenizeUnterminatedEscapeLenient(t *testing.T) {
	t.Parallel()

	tokens, err := tokenizer.Tokenize(`\`, tokenizer.Lenient)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, tokenizer.InvalidChar, tokens[0].Kind)
}

func TestTokenizeEmptyNameStrict(t *testing.T) {
	t.Parallel()

	_, err := tokenizer.Tokenize(":", tokenizer.Strict)
	require.Error(t, err)
}

func TestTokenizeAlwaysEndsWithEnd(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", ":foo", "(a)", "*", "{x}?"} {
		tokens, err := tokenizer.Tokenize(in, tokenizer.Strict)
		require.NoError(t, err)
		require.NotEmpty(t, tokens)
		assert.Equal(t, tokenizer.End, tokens[len(tokens)-1].Kind)
	}
}
