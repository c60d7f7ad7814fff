package token

// MultiCharOperators is the ordered table of multi-character operator
// spellings the lexer matches greedily, trying each entry in list order
// and returning on the first prefix match. Any operator that is itself a
// prefix of a longer one (">>" of ">>>", "<<" of "<<=", and so on) must be
// listed after the longer spelling, or the longer one can never match.
var MultiCharOperators = []string{
	"===", "!==",
	"<<=", ">>=", "**=",
	"&&=", "||=", "??=",
	"==", "!=", "<=", ">=",
	"&&", "||", "??", "|>", "=>", "->",
	"++", "--",
	"+=", "-=", "*=", "/=", "%=",
	"**",
	"<<", ">>>", ">>",
	"?.", "...", "::", "@",
}

// SingleCharOperators is the fallback single-character operator set.
var SingleCharOperators = map[rune]bool{
	'+': true, '-': true, '*': true, '/': true, '%': true,
	'=': true, '<': true, '>': true, '!': true, '~': true,
	'&': true, '|': true, '^': true, '?': true, ':': true,
}

// PunctuationChars is the fixed punctuation set.
var PunctuationChars = map[rune]bool{
	'{': true, '}': true, '(': true, ')': true, '[': true, ']': true,
	',': true, '.': true, ';': true,
}
