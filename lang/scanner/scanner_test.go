package scanner

import (
	"testing"

	"github.com/nerinelang/nerine/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tv is a compact expected-token description for tests.
type tv struct {
	tok  token.Token
	raw  string
	num  float64
	span token.Span
}

func scanAll(t *testing.T, src string) []TokenAndValue {
	t.Helper()
	toks := ScanSource([]byte(src))
	require.NotEmpty(t, toks)
	require.Equal(t, token.EOF, toks[len(toks)-1].Token)
	return toks
}

func assertTokens(t *testing.T, src string, want []tv) {
	t.Helper()
	toks := scanAll(t, src)
	require.Len(t, toks, len(want)+1, "token count for %q", src)
	for i, w := range want {
		got := toks[i]
		assert.Equal(t, w.tok, got.Token, "token %d of %q", i, src)
		assert.Equal(t, w.raw, got.Value.Raw, "raw %d of %q", i, src)
		assert.Equal(t, w.span, got.Value.Span, "span %d of %q", i, src)
		if w.tok == token.NUMBER {
			assert.Equal(t, w.num, got.Value.Num, "num %d of %q", i, src)
		}
	}
}

func TestScanKeywordsAndIdents(t *testing.T) {
	assertTokens(t, "let xs function_ if0", []tv{
		{tok: token.LET, raw: "let", span: token.MakeSpan(0, 3)},
		{tok: token.IDENT, raw: "xs", span: token.MakeSpan(4, 6)},
		{tok: token.IDENT, raw: "function_", span: token.MakeSpan(7, 16)},
		{tok: token.IDENT, raw: "if0", span: token.MakeSpan(17, 20)},
	})
}

func TestScanNumbers(t *testing.T) {
	assertTokens(t, "42 3.14 0.5", []tv{
		{tok: token.NUMBER, raw: "42", num: 42, span: token.MakeSpan(0, 2)},
		{tok: token.NUMBER, raw: "3.14", num: 3.14, span: token.MakeSpan(3, 7)},
		{tok: token.NUMBER, raw: "0.5", num: 0.5, span: token.MakeSpan(8, 11)},
	})

	// a trailing dot is not part of the number
	assertTokens(t, "1.", []tv{
		{tok: token.NUMBER, raw: "1", num: 1, span: token.MakeSpan(0, 1)},
		{tok: token.ILLEGAL, raw: ".", span: token.MakeSpan(1, 2)},
	})
	// nor is a leading dot
	assertTokens(t, ".5", []tv{
		{tok: token.ILLEGAL, raw: ".", span: token.MakeSpan(0, 1)},
		{tok: token.NUMBER, raw: "5", num: 5, span: token.MakeSpan(1, 2)},
	})
}

func TestScanOperators(t *testing.T) {
	assertTokens(t, "= == < > + - * / ; , ( ) { }", []tv{
		{tok: token.ASSIGN, raw: "=", span: token.MakeSpan(0, 1)},
		{tok: token.EQL, raw: "==", span: token.MakeSpan(2, 4)},
		{tok: token.LT, raw: "<", span: token.MakeSpan(5, 6)},
		{tok: token.GT, raw: ">", span: token.MakeSpan(7, 8)},
		{tok: token.PLUS, raw: "+", span: token.MakeSpan(9, 10)},
		{tok: token.MINUS, raw: "-", span: token.MakeSpan(11, 12)},
		{tok: token.STAR, raw: "*", span: token.MakeSpan(13, 14)},
		{tok: token.SLASH, raw: "/", span: token.MakeSpan(15, 16)},
		{tok: token.SEMI, raw: ";", span: token.MakeSpan(17, 18)},
		{tok: token.COMMA, raw: ",", span: token.MakeSpan(19, 20)},
		{tok: token.LPAREN, raw: "(", span: token.MakeSpan(21, 22)},
		{tok: token.RPAREN, raw: ")", span: token.MakeSpan(23, 24)},
		{tok: token.LBRACE, raw: "{", span: token.MakeSpan(25, 26)},
		{tok: token.RBRACE, raw: "}", span: token.MakeSpan(27, 28)},
	})

	// no space required between = and ==
	assertTokens(t, "a==b", []tv{
		{tok: token.IDENT, raw: "a", span: token.MakeSpan(0, 1)},
		{tok: token.EQL, raw: "==", span: token.MakeSpan(1, 3)},
		{tok: token.IDENT, raw: "b", span: token.MakeSpan(3, 4)},
	})
}

func TestScanIllegal(t *testing.T) {
	assertTokens(t, "a @ b", []tv{
		{tok: token.IDENT, raw: "a", span: token.MakeSpan(0, 1)},
		{tok: token.ILLEGAL, raw: "@", span: token.MakeSpan(2, 3)},
		{tok: token.IDENT, raw: "b", span: token.MakeSpan(4, 5)},
	})

	// multi-byte characters are a single illegal token with a byte span
	toks := scanAll(t, "é")
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Token)
	assert.Equal(t, "é", toks[0].Value.Raw)
	assert.Equal(t, token.MakeSpan(0, 2), toks[0].Value.Span)
}

// The scanner must terminate with an EOF token of zero length at source
// end for any input.
func TestScanTotality(t *testing.T) {
	inputs := []string{
		"",
		"   \t\r\n  ",
		"let x = 10;",
		"@#$%^&!~?:.",
		"\x00\x01\xff",
		"1..2...3",
		"functionfunction",
	}
	for _, src := range inputs {
		toks := ScanSource([]byte(src))
		require.NotEmpty(t, toks, "%q", src)
		last := toks[len(toks)-1]
		assert.Equal(t, token.EOF, last.Token, "%q", src)
		assert.Equal(t, token.MakeSpan(len(src), len(src)), last.Value.Span, "%q", src)
		for _, tok := range toks[:len(toks)-1] {
			assert.NotEqual(t, token.EOF, tok.Token, "%q", src)
		}
	}
}
