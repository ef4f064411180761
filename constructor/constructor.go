package constructor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/hueristiq/hq-go-urlpattern/internal/schemes"
	"github.com/hueristiq/hq-go-urlpattern/pattern"
	"github.com/hueristiq/hq-go-urlpattern/tokenizer"
)

type parser struct {
	input  []rune
	tokens []tokenizer.Token
	result Result

	componentStart           int
	tokenIndex                int
	tokenIncrement            int
	groupDepth                int
	shouldTreatAsStandardURL bool
	state                     State
}

// Parse runs the constructor-string state machine over input, returning
// the eight sliced component pattern substrings.
func Parse(input string) (*Result, error) {
	tokens, err := tokenizer.Tokenize(input, tokenizer.Lenient)
	if err != nil {
		return nil, err
	}

	p := &parser{input: []rune(input), tokens: tokens, tokenIncrement: 1}

	for p.tokenIndex < len(p.tokens) {
		p.tokenIncrement = 1

		if p.tokens[p.tokenIndex].Kind == tokenizer.End {
			if p.state == Init {
				p.rewind()

				switch {
				case p.isHashPrefix():
					p.changeState(Hash, 1)
				case p.isSearchPrefix():
					p.changeState(Search, 1)
					p.result.Hash = strPtr("")
				default:
					p.changeState(Pathname, 0)
					p.result.Search = strPtr("")
					p.result.Hash = strPtr("")
				}

				p.tokenIndex += p.tokenIncrement

				continue
			}

			if p.state == Authority {
				p.rewindAndSetState(Hostname)
				p.tokenIndex += p.tokenIncrement

				continue
			}

			p.changeState(Done, 0)

			break
		}

		if p.isGroupOpen() {
			p.groupDepth++
			p.tokenIndex += p.tokenIncrement

			continue
		}

		if p.groupDepth > 0 {
			if p.isGroupClose() {
				p.groupDepth--
			} else {
				p.tokenIndex += p.tokenIncrement

				continue
			}
		}

		if err = p.step(); err != nil {
			return nil, err
		}

		p.tokenIndex += p.tokenIncrement
	}

	return &p.result, nil
}

//nolint:gocyclo
func (p *parser) step() error {
	switch p.state {
	case Init:
		if p.isProtocolSuffix() {
			p.result.Username = strPtr("")
			p.result.Password = strPtr("")
			p.result.Hostname = strPtr("")
			p.result.Port = strPtr("")
			p.result.Pathname = strPtr("")
			p.result.Search = strPtr("")
			p.result.Hash = strPtr("")
			p.rewindAndSetState(Protocol)
		}
	case Protocol:
		if p.isProtocolSuffix() {
			if err := p.computeShouldTreatAsStandardURL(); err != nil {
				return err
			}

			if p.shouldTreatAsStandardURL {
				p.result.Pathname = strPtr("/")
			}

			nextState := Pathname
			skip := 1

			switch {
			case p.nextIsAuthoritySlashes():
				nextState = Authority
				skip = 3
			case p.shouldTreatAsStandardURL:
				nextState = Authority
			}

			p.changeState(nextState, skip)
		}
	case Authority:
		switch {
		case p.isIdentityTerminator():
			p.rewindAndSetState(Username)
		case p.isPathnameStart() || p.isSearchPrefix() || p.isHashPrefix():
			p.rewindAndSetState(Hostname)
		}
	case Username:
		switch {
		case p.isPasswordPrefix():
			p.changeState(Password, 1)
		case p.isIdentityTerminator():
			p.changeState(Hostname, 1)
		}
	case Password:
		if p.isIdentityTerminator() {
			p.changeState(Hostname, 1)
		}
	case Hostname:
		// A ":" inside an IPv6 literal's brackets is not a port prefix.
		hostSoFar := p.makeComponentString()
		inIPv6Brackets := strings.Count(hostSoFar, "[") > strings.Count(hostSoFar, "]")

		switch {
		case p.isPortPrefix() && !inIPv6Brackets:
			p.changeState(Port, 1)
		case p.isPathnameStart():
			p.changeState(Pathname, 0)
		case p.isSearchPrefix():
			p.changeState(Search, 1)
		case p.isHashPrefix():
			p.changeState(Hash, 1)
		}
	case Port:
		switch {
		case p.isPathnameStart():
			p.changeState(Pathname, 0)
		case p.isSearchPrefix():
			p.changeState(Search, 1)
		case p.isHashPrefix():
			p.changeState(Hash, 1)
		}
	case Pathname:
		switch {
		case p.isSearchPrefix():
			p.changeState(Search, 1)
		case p.isHashPrefix():
			p.changeState(Hash, 1)
		}
	case Search:
		if p.isHashPrefix() {
			p.changeState(Hash, 1)
		}
	case Hash, Done:
		// Hash consumes to End; Done is terminal and never revisited.
	}

	return nil
}

func (p *parser) rewind() {
	p.tokenIndex = p.componentStart
	p.tokenIncrement = 0
}

func (p *parser) rewindAndSetState(state State) {
	p.rewind()
	p.state = state
}

// changeState captures the component substring for the state being left
// (p.state, not the state being entered) before advancing. The WHATWG
// algorithm this is grounded on runs its per-state capture "corresponding
// to parser's state" before updating parser's state to the new value.
func (p *parser) changeState(state State, skip int) {
	switch p.state {
	case Protocol:
		p.result.Protocol = strPtr(p.makeComponentString())
	case Username:
		p.result.Username = strPtr(p.makeComponentString())
	case Password:
		p.result.Password = strPtr(p.makeComponentString())
	case Hostname:
		p.result.Hostname = strPtr(p.makeComponentString())
	case Port:
		p.result.Port = strPtr(p.makeComponentString())
	case Pathname:
		p.result.Pathname = strPtr(p.makeComponentString())
	case Search:
		p.result.Search = strPtr(p.makeComponentString())
	case Hash:
		p.result.Hash = strPtr(p.makeComponentString())
	case Init, Authority, Done:
		// no component string to capture
	}

	p.state = state
	p.componentStart = p.tokenIndex + skip
	p.tokenIndex += skip
	p.tokenIncrement = 0
}

func (p *parser) makeComponentString() string {
	token := p.tokens[p.tokenIndex]
	startToken := p.getSafeToken(p.componentStart)

	return string(p.input[startToken.Index:token.Index])
}

func (p *parser) getSafeToken(index int) tokenizer.Token {
	if index < len(p.tokens) {
		return p.tokens[index]
	}

	return p.tokens[len(p.tokens)-1]
}

func (p *parser) isNonSpecialPatternChar(index int, value string) bool {
	tok := p.getSafeToken(index)
	if tok.Value != value {
		return false
	}

	switch tok.Kind {
	case tokenizer.Char, tokenizer.EscapedChar, tokenizer.InvalidChar:
		return true
	default:
		return false
	}
}

func (p *parser) isHashPrefix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "#")
}

func (p *parser) isProtocolSuffix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, ":")
}

func (p *parser) isPasswordPrefix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, ":")
}

func (p *parser) isPortPrefix() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, ":")
}

func (p *parser) isPathnameStart() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "/")
}

func (p *parser) isIdentityTerminator() bool {
	return p.isNonSpecialPatternChar(p.tokenIndex, "@")
}

func (p *parser) isSearchPrefix() bool {
	if p.isNonSpecialPatternChar(p.tokenIndex, "?") {
		return true
	}

	if p.tokens[p.tokenIndex].Value != "?" {
		return false
	}

	if p.tokenIndex == 0 {
		return true
	}

	prev := p.getSafeToken(p.tokenIndex - 1)

	switch prev.Kind {
	case tokenizer.Name, tokenizer.Regexp, tokenizer.Close, tokenizer.Asterisk:
		return false
	default:
		return true
	}
}

func (p *parser) isGroupOpen() bool {
	return p.tokens[p.tokenIndex].Kind == tokenizer.Open
}

func (p *parser) isGroupClose() bool {
	return p.tokens[p.tokenIndex].Kind == tokenizer.Close
}

func (p *parser) nextIsAuthoritySlashes() bool {
	if !p.isNonSpecialPatternChar(p.tokenIndex+1, "/") {
		return false
	}

	return p.isNonSpecialPatternChar(p.tokenIndex+2, "/")
}

// computeShouldTreatAsStandardURL compiles the protocol substring sliced so
// far and checks whether it matches one of the special schemes.
func (p *parser) computeShouldTreatAsStandardURL() error {
	protocolString := p.makeComponentString()

	matches, err := ProtocolMatchesSpecialScheme(protocolString)
	if err != nil {
		return err
	}

	if matches {
		p.shouldTreatAsStandardURL = true
	}

	return nil
}

// ProtocolMatchesSpecialScheme compiles protocolPattern as a protocol
// component and reports whether its regex matches any of the six special
// scheme names. It tokenizes and parses protocolPattern itself; the root
// package runs the same check on its already compiled protocol component
// instead of calling this function.
func ProtocolMatchesSpecialScheme(protocolPattern string) (bool, error) {
	tokens, err := tokenizer.Tokenize(protocolPattern, tokenizer.Strict)
	if err != nil {
		return false, err
	}

	parts, err := pattern.Parse(tokens, pattern.DefaultOptions(), sniffProtocol)
	if err != nil {
		return false, err
	}

	src, _ := pattern.GenerateRegularExpressionAndNameList(parts, pattern.DefaultOptions())

	re, err := regexp.Compile(src)
	if err != nil {
		return false, err
	}

	for _, scheme := range schemes.Special {
		if re.MatchString(scheme) {
			return true, nil
		}
	}

	return false, nil
}

// sniffProtocol canonicalizes a protocol fragment the same way the real
// protocol encoding callback eventually will, using the dummy-URL trick:
// parse "<value>://dummy.test" and read back the scheme net/url settled on.
// Used only to decide should-treat-as-standard-url; it is not the encoding
// callback the compiled component is ultimately built with.
func sniffProtocol(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	u, err := url.Parse(value + "://dummy.test")
	if err != nil {
		return "", err
	}

	return u.Scheme, nil
}

// IsIPv6Hostname reports whether a hostname pattern substring denotes an
// IPv6 literal (starts with "[", "{[", or "\[").
func IsIPv6Hostname(hostnamePattern string) bool {
	return strings.HasPrefix(hostnamePattern, "[") ||
		strings.HasPrefix(hostnamePattern, "{[") ||
		strings.HasPrefix(hostnamePattern, `\[`)
}
