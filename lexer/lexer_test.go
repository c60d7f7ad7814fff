package lexer

import (
	"testing"

	"github.com/ntl-lang/ntlc/token"
	"github.com/stretchr/testify/assert"
)

func TestScanIdentifiersAndKeywords(t *testing.T) {
	cases := map[string]token.Type{
		"username": token.Identifier,
		"fn":       token.Keyword,
		"val":      token.Keyword,
		"_priv":    token.Identifier,
		"$el":      token.Identifier,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			tokens, err := Tokenize("", input)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Len(t, tokens, 2) {
				return
			}
			assert.Equal(t, want, tokens[0].Type)
			assert.Equal(t, input, tokens[0].Value)
		})
	}
}

func TestScanNumbers(t *testing.T) {
	cases := map[string]string{
		"0x1F":  "0x1F",
		"0b101": "0b101",
		"0o17":  "0o17",
		"1_000": "1000",
		"3.14":  "3.14",
		"1e10":  "1e10",
		"10n":   "10",
	}
	for input, wantValue := range cases {
		t.Run(input, func(t *testing.T) {
			tokens, err := Tokenize("", input)
			if !assert.Nil(t, err) {
				return
			}
			assert.Equal(t, wantValue, tokens[0].Value)
		})
	}
}

func TestScanBigIntSuffix(t *testing.T) {
	tokens, err := Tokenize("", "42n")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, token.BigIntNumber, tokens[0].Type)
	assert.True(t, tokens[0].IsBigInt)
}

func TestScanSingleQuoteNoInterpolation(t *testing.T) {
	tokens, err := Tokenize("", `'hello {x}'`)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, token.String, tokens[0].Type)
	assert.Equal(t, "hello {x}", tokens[0].Value)
}

func TestScanDoubleQuoteInterpolation(t *testing.T) {
	tokens, err := Tokenize("", `"Hello, {name}!"`)
	if !assert.Nil(t, err) {
		return
	}
	if !assert.Equal(t, token.Template, tokens[0].Type) {
		return
	}
	if !assert.Len(t, tokens[0].Parts, 3) {
		return
	}
	assert.Equal(t, token.PartLiteral, tokens[0].Parts[0].Kind)
	assert.Equal(t, "Hello, ", tokens[0].Parts[0].Text)
	assert.Equal(t, token.PartExpr, tokens[0].Parts[1].Kind)
	assert.Equal(t, "name", tokens[0].Parts[1].Source)
	assert.Equal(t, token.PartLiteral, tokens[0].Parts[2].Kind)
	assert.Equal(t, "!", tokens[0].Parts[2].Text)
}

func TestScanBacktickTemplate(t *testing.T) {
	tokens, err := Tokenize("", "`Hello, ${n}!`")
	if !assert.Nil(t, err) {
		return
	}
	if !assert.Equal(t, token.Template, tokens[0].Type) {
		return
	}
	assert.Equal(t, "n", tokens[0].Parts[1].Source)
}

func TestScanOperatorsGreedy(t *testing.T) {
	tokens, err := Tokenize("", "a ??= b |> c ?. d")
	if !assert.Nil(t, err) {
		return
	}
	var ops []string
	for _, tk := range tokens {
		if tk.Type == token.Operator {
			ops = append(ops, tk.Value)
		}
	}
	assert.Equal(t, []string{"??=", "|>", "?."}, ops)
}

func TestScanUnsignedRightShiftNotSplitIntoShiftAndGreater(t *testing.T) {
	tokens, err := Tokenize("", "a >>> b")
	if !assert.Nil(t, err) {
		return
	}
	var ops []string
	for _, tk := range tokens {
		if tk.Type == token.Operator {
			ops = append(ops, tk.Value)
		}
	}
	assert.Equal(t, []string{">>>"}, ops)
}

func TestUnterminatedStringIsDiagnostic(t *testing.T) {
	_, err := Tokenize("", `"unterminated`)
	if !assert.NotNil(t, err) {
		return
	}
	assert.Equal(t, "lex", string(err.Phase))
}
