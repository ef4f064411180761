package pattern

import (
	"strconv"

	"github.com/hueristiq/hq-go-urlpattern/tokenizer"
)

type parser struct {
	tokens             []tokenizer.Token
	encode             EncodeFunc
	segmentWildcardRgx string
	opts               Options
	parts              []Part
	pendingFixedValue  string
	index              int
	nextNumericName    int
}

// Parse folds a Strict-tokenized token list into an ordered Part list,
// running prefix/suffix/fixed-text runs through encode and honoring opts'
// delimiter/prefix presets. It is package tokenizer's Strict consumer: see
// §4.B of the URL pattern pipeline this module implements.
func Parse(tokens []tokenizer.Token, opts Options, encode EncodeFunc) (parts []Part, err error) {
	p := &parser{
		tokens:             tokens,
		encode:             encode,
		segmentWildcardRgx: opts.SegmentWildcardRegexp(),
		opts:               opts,
	}

	for p.index < len(p.tokens) {
		charToken := p.tryConsume(tokenizer.Char)
		nameToken := p.tryConsume(tokenizer.Name)
		regexpOrWildcardToken := p.tryConsumeRegexpOrWildcard(nameToken)

		if nameToken != nil || regexpOrWildcardToken != nil {
			prefix := ""
			if charToken != nil {
				prefix = charToken.Value
			}

			if prefix != "" && prefix != p.opts.Prefix {
				p.pendingFixedValue += prefix
				prefix = ""
			}

			if err = p.maybeAddPartFromPendingFixedValue(); err != nil {
				return nil, err
			}

			modifierToken := p.tryConsumeModifier()

			if err = p.addPart(prefix, nameToken, regexpOrWildcardToken, "", modifierToken); err != nil {
				return nil, err
			}

			continue
		}

		fixedToken := charToken
		if fixedToken == nil {
			fixedToken = p.tryConsume(tokenizer.EscapedChar)
		}

		if fixedToken != nil {
			p.pendingFixedValue += fixedToken.Value

			continue
		}

		if openToken := p.tryConsume(tokenizer.Open); openToken != nil {
			prefix := p.consumeText()
			nameToken = p.tryConsume(tokenizer.Name)
			regexpOrWildcardToken = p.tryConsumeRegexpOrWildcard(nameToken)
			suffix := p.consumeText()

			if _, err = p.consumeRequired(tokenizer.Close); err != nil {
				return nil, err
			}

			modifierToken := p.tryConsumeModifier()

			if err = p.addPart(prefix, nameToken, regexpOrWildcardToken, suffix, modifierToken); err != nil {
				return nil, err
			}

			continue
		}

		if err = p.maybeAddPartFromPendingFixedValue(); err != nil {
			return nil, err
		}

		if _, err = p.consumeRequired(tokenizer.End); err != nil {
			return nil, err
		}
	}

	if err = checkDuplicateNames(p.parts); err != nil {
		return nil, err
	}

	return p.parts, nil
}

func (p *parser) tryConsume(kind tokenizer.Kind) *tokenizer.Token {
	if p.index >= len(p.tokens) {
		return nil
	}

	tok := &p.tokens[p.index]
	if tok.Kind != kind {
		return nil
	}

	p.index++

	return tok
}

func (p *parser) tryConsumeRegexpOrWildcard(nameToken *tokenizer.Token) *tokenizer.Token {
	tok := p.tryConsume(tokenizer.Regexp)
	if nameToken == nil && tok == nil {
		tok = p.tryConsume(tokenizer.Asterisk)
	}

	return tok
}

func (p *parser) tryConsumeModifier() *tokenizer.Token {
	if tok := p.tryConsume(tokenizer.OtherModifier); tok != nil {
		return tok
	}

	return p.tryConsume(tokenizer.Asterisk)
}

func (p *parser) consumeText() string {
	var out []byte

	for {
		tok := p.tryConsume(tokenizer.Char)
		if tok == nil {
			tok = p.tryConsume(tokenizer.EscapedChar)
		}

		if tok == nil {
			break
		}

		out = append(out, tok.Value...)
	}

	return string(out)
}

func (p *parser) consumeRequired(kind tokenizer.Kind) (*tokenizer.Token, error) {
	if tok := p.tryConsume(kind); tok != nil {
		return tok, nil
	}

	got := tokenizer.End
	gotValue := ""

	if p.index < len(p.tokens) {
		got = p.tokens[p.index].Kind
		gotValue = p.tokens[p.index].Value
	}

	return nil, &ExpectedTokenError{Expected: kind, Got: got, GotValue: gotValue}
}

func (p *parser) maybeAddPartFromPendingFixedValue() error {
	if p.pendingFixedValue == "" {
		return nil
	}

	encoded, err := p.encode(p.pendingFixedValue)
	if err != nil {
		return err
	}

	p.pendingFixedValue = ""
	p.parts = append(p.parts, Part{Kind: FixedText, Value: encoded, Modifier: ModifierNone})

	return nil
}

func modifierFromToken(tok *tokenizer.Token) Modifier {
	if tok == nil {
		return ModifierNone
	}

	switch tok.Value {
	case "?":
		return ModifierOptional
	case "*":
		return ModifierZeroOrMore
	case "+":
		return ModifierOneOrMore
	default:
		return ModifierNone
	}
}

func (p *parser) addPart(prefix string, nameToken, regexpOrWildcardToken *tokenizer.Token, suffix string, modifierToken *tokenizer.Token) error {
	modifier := modifierFromToken(modifierToken)

	if nameToken == nil && regexpOrWildcardToken == nil && modifier == ModifierNone {
		p.pendingFixedValue += prefix

		return nil
	}

	if err := p.maybeAddPartFromPendingFixedValue(); err != nil {
		return err
	}

	if nameToken == nil && regexpOrWildcardToken == nil {
		if prefix == "" {
			return nil
		}

		encoded, err := p.encode(prefix)
		if err != nil {
			return err
		}

		p.parts = append(p.parts, Part{Kind: FixedText, Value: encoded, Modifier: modifier})

		return nil
	}

	var regexpValue string

	kind := Regexp

	switch {
	case regexpOrWildcardToken == nil:
		regexpValue = p.segmentWildcardRgx
	case regexpOrWildcardToken.Kind == tokenizer.Asterisk:
		regexpValue = FullWildcardRegexpValue
	default:
		regexpValue = regexpOrWildcardToken.Value
	}

	switch regexpValue {
	case p.segmentWildcardRgx:
		kind = SegmentWildcard
		regexpValue = ""
	case FullWildcardRegexpValue:
		kind = FullWildcard
		regexpValue = ""
	}

	name := ""

	switch {
	case nameToken != nil:
		name = nameToken.Value
	case regexpOrWildcardToken != nil:
		name = strconv.Itoa(p.nextNumericName)
		p.nextNumericName++
	}

	encodedPrefix, err := p.encode(prefix)
	if err != nil {
		return err
	}

	encodedSuffix, err := p.encode(suffix)
	if err != nil {
		return err
	}

	p.parts = append(p.parts, Part{
		Kind:     kind,
		Value:    regexpValue,
		Modifier: modifier,
		Name:     name,
		Prefix:   encodedPrefix,
		Suffix:   encodedSuffix,
	})

	return nil
}

func checkDuplicateNames(parts []Part) error {
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		if part.Kind == FixedText {
			continue
		}

		if _, ok := seen[part.Name]; ok {
			return &DuplicateNameError{Name: part.Name}
		}

		seen[part.Name] = struct{}{}
	}

	return nil
}
