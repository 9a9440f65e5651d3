// Package scanner implements the lexer that turns source text into a
// stream of tokens for the parser to consume.
//
// The scanner is total: it cannot fail. Unrecognized characters are
// returned as ILLEGAL tokens carrying the offending character, so that the
// parser can reject them downstream with an accurate span.
package scanner

import (
	"strconv"
	"unicode/utf8"

	"github.com/nerinelang/nerine/lang/token"
)

// TokenAndValue combines the token type with the token value in the same
// struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanSource is a helper that tokenizes src in full and returns the list
// of tokens, always ending with the EOF token.
func ScanSource(src []byte) []TokenAndValue {
	var (
		s      Scanner
		tokVal token.Value
		toks   []TokenAndValue
	)
	s.Init(src)
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			return toks
		}
	}
}

// Scanner tokenizes source text. Use Init to set the source and Scan to
// read tokens one at a time.
type Scanner struct {
	// immutable state after Init
	src []byte

	// mutable scanning state
	cur  rune // current character, -1 at end of input
	off  int  // offset in bytes of cur
	roff int  // reading offset in bytes (position after current character)
}

// Init initializes the scanner to tokenize a new source.
func (s *Scanner) Init(src []byte) {
	s.src = src
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// read the next Unicode char into s.cur; s.cur < 0 means end-of-input.
func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	// fast path if the rune is an ASCII char, no decoding necessary
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
	}
	s.roff += w
	s.cur = r
}

// advance only if the current char matches the specified one.
func (s *Scanner) advanceIf(match byte) bool {
	if s.cur == rune(match) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespace()

	// current token start
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		// keywords and identifiers
		lit := s.ident()
		tok = token.IDENT
		if len(lit) > 1 {
			// keywords are longer than one letter - avoid lookup otherwise
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Span: token.MakeSpan(start, s.off)}

	case isDecimal(cur):
		lit := s.number()
		// lit matches digit+('.'digit+)? so parsing cannot fail; out of
		// range values saturate to infinity, which is a valid f64
		v, _ := strconv.ParseFloat(lit, 64)
		tok = token.NUMBER
		*tokVal = token.Value{Raw: lit, Num: v, Span: token.MakeSpan(start, s.off)}

	default:
		// keywords, identifiers and numbers are done

		s.advance() // always make progress
		switch cur {
		case '=':
			tok = token.ASSIGN
			if s.advanceIf('=') {
				tok = token.EQL
			}
		case '+':
			tok = token.PLUS
		case '-':
			tok = token.MINUS
		case '*':
			tok = token.STAR
		case '/':
			tok = token.SLASH
		case '<':
			tok = token.LT
		case '>':
			tok = token.GT
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case ';':
			tok = token.SEMI
		case ',':
			tok = token.COMMA

		case -1:
			// zero-length span at source end
			*tokVal = token.Value{Span: token.MakeSpan(len(s.src), len(s.src))}
			return token.EOF

		default:
			// unrecognized character: return it as an ILLEGAL token carrying
			// the character itself, the parser rejects it with its span
			*tokVal = token.Value{Raw: string(cur), Span: token.MakeSpan(start, s.off)}
			return token.ILLEGAL
		}
		*tokVal = token.Value{Raw: tok.String(), Span: token.MakeSpan(start, s.off)}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDecimal(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) number() string {
	start := s.off
	for isDecimal(s.cur) {
		s.advance()
	}
	// a dot is part of the number only when followed by a digit
	if s.cur == '.' && isDecimal(rune(s.peek())) {
		s.advance()
		for isDecimal(s.cur) {
			s.advance()
		}
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.cur) {
		s.advance()
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_'
}

func isDecimal(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
