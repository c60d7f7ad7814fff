package parser

import (
	"github.com/ntl-lang/ntlc/ast"
	"github.com/ntl-lang/ntlc/internal/diagnostic"
	"github.com/ntl-lang/ntlc/token"
)

func matchBinding(pos token.Position, name string) *ast.MatchPattern {
	mp := ast.NewMatchPattern(pos, ast.MPBinding)
	mp.BindingName = name
	return mp
}

// parseBindingTarget parses either a bare name or a destructuring pattern
// on the left of a `var`/`val`/parameter binding (§4.3: "Destructuring
// patterns are parsed on both variable declarations and function
// parameters; they nest.").
func (p *parser) parseBindingTarget() (name string, pattern *ast.Pattern, err error) {
	switch {
	case p.checkPunct("{"):
		pat, err := p.parseObjectPattern()
		return "", pat, err
	case p.checkPunct("["):
		pat, err := p.parseArrayPattern()
		return "", pat, err
	default:
		tk, err := p.eat(token.Identifier, "")
		if err != nil {
			return "", nil, p.wrapf(err, "expected binding name or destructuring pattern")
		}
		return tk.Value, nil, nil
	}
}

func (p *parser) parseObjectPattern() (*ast.Pattern, error) {
	pos0 := p.current().Position
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	var props []ast.ObjectPatternProp
	for !p.checkPunct("}") {
		if p.eatIf(token.Operator, "...") {
			tk, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected rest binding name in object pattern")
			}
			props = append(props, ast.ObjectPatternProp{Key: tk.Value, Rest: true})
			break
		}
		key, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected property key in object pattern")
		}
		prop := ast.ObjectPatternProp{Key: key.Value}
		if p.eatIf(token.Punctuation, ":") {
			if p.checkPunct("{") || p.checkPunct("[") {
				nested, err := p.parsePatternValue()
				if err != nil {
					return nil, p.wrapf(err, "failed to parse nested pattern for %s", key.Value)
				}
				prop.Nested = nested
			} else {
				alias, err := p.eat(token.Identifier, "")
				if err != nil {
					return nil, p.wrapf(err, "expected alias name after : in object pattern")
				}
				prop.Alias = alias.Value
			}
		}
		if p.eatIf(token.Operator, "=") {
			def, err := p.parseAssignExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse default value for %s", key.Value)
			}
			prop.DefaultVal = def
		}
		props = append(props, prop)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	pat := ast.NewPattern(pos0, ast.PatternObject)
	pat.ObjectKeys = props
	return pat, nil
}

func (p *parser) parseArrayPattern() (*ast.Pattern, error) {
	pos0 := p.current().Position
	if _, err := p.eat(token.Punctuation, "["); err != nil {
		return nil, err
	}
	var items []ast.ArrayPatternItem
	for !p.checkPunct("]") {
		if p.checkPunct(",") {
			items = append(items, ast.ArrayPatternItem{Hole: true})
			p.advance()
			continue
		}
		item := ast.ArrayPatternItem{}
		if p.eatIf(token.Operator, "...") {
			item.Rest = true
		}
		if p.checkPunct("{") || p.checkPunct("[") {
			nested, err := p.parsePatternValue()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse nested array pattern element")
			}
			item.Nested = nested
		} else {
			name, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected binding name in array pattern")
			}
			item.Name = name.Value
		}
		if p.eatIf(token.Operator, "=") {
			def, err := p.parseAssignExpr()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse default value in array pattern")
			}
			item.DefaultVal = def
		}
		items = append(items, item)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "]"); err != nil {
		return nil, err
	}
	pat := ast.NewPattern(pos0, ast.PatternArray)
	pat.ArrayItems = items
	return pat, nil
}

// parsePatternValue dispatches to whichever destructuring shape leads.
func (p *parser) parsePatternValue() (*ast.Pattern, error) {
	if p.checkPunct("{") {
		return p.parseObjectPattern()
	}
	return p.parseArrayPattern()
}

// parseMatchPattern parses one pattern within a match case: literals,
// bindings, the `_` wildcard, dotted enum paths, algebraic variant
// destructuring, and nested array/object shapes (§3, §4.3).
func (p *parser) parseMatchPattern() (*ast.MatchPattern, error) {
	pos := p.current().Position

	switch {
	case p.checkPunct("["):
		return p.parseArrayMatchPattern()
	case p.checkPunct("{"):
		return p.parseObjectMatchPattern()
	case p.current().Type == token.Number, p.current().Type == token.BigIntNumber,
		p.current().Type == token.String, p.checkKeyword("true"), p.checkKeyword("false"),
		p.checkKeyword("null"), p.checkKeyword("undefined"):
		lit, err := p.parseUnaryExpr()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse literal match pattern")
		}
		mp := ast.NewMatchPattern(pos, ast.MPLiteral)
		mp.LiteralValue = lit
		return mp, nil
	case p.current().Type == token.Identifier:
		return p.parseIdentLedMatchPattern(pos)
	}
	return nil, p.errorf(diagnostic.CodeUnexpectedToken, "unexpected token %s in match pattern", describe(p.current().Type, p.current().Value))
}

// parseIdentLedMatchPattern handles the `_` wildcard, a plain binding name,
// a dotted enum-value path (`Color.Red`), and an algebraic variant pattern
// (`Name(p0, p1)`), all of which start with an identifier.
func (p *parser) parseIdentLedMatchPattern(pos token.Position) (*ast.MatchPattern, error) {
	name := p.advance().Value
	if name == "_" {
		return ast.NewMatchPattern(pos, ast.MPWildcard), nil
	}

	if p.checkPunct(".") {
		path := []string{name}
		for p.eatIf(token.Punctuation, ".") {
			part, err := p.eat(token.Identifier, "")
			if err != nil {
				return nil, p.wrapf(err, "expected identifier in dotted match pattern path")
			}
			path = append(path, part.Value)
		}
		mp := ast.NewMatchPattern(pos, ast.MPEnumVal)
		mp.EnumPath = path
		return mp, nil
	}

	if p.checkPunct("(") {
		p.advance()
		var fields []*ast.MatchPattern
		for !p.checkPunct(")") {
			f, err := p.parseMatchPattern()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse variant field pattern for %s", name)
			}
			fields = append(fields, f)
			if !p.eatIf(token.Punctuation, ",") {
				break
			}
		}
		if _, err := p.eat(token.Punctuation, ")"); err != nil {
			return nil, err
		}
		mp := ast.NewMatchPattern(pos, ast.MPVariant)
		mp.VariantName, mp.VariantFields = name, fields
		return mp, nil
	}

	return matchBinding(pos, name), nil
}

func (p *parser) parseArrayMatchPattern() (*ast.MatchPattern, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Punctuation, "["); err != nil {
		return nil, err
	}
	var items []*ast.MatchPattern
	for !p.checkPunct("]") {
		it, err := p.parseMatchPattern()
		if err != nil {
			return nil, p.wrapf(err, "failed to parse array match pattern element")
		}
		items = append(items, it)
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "]"); err != nil {
		return nil, err
	}
	mp := ast.NewMatchPattern(pos, ast.MPArray)
	mp.ArrayItems = items
	return mp, nil
}

func (p *parser) parseObjectMatchPattern() (*ast.MatchPattern, error) {
	pos := p.current().Position
	if _, err := p.eat(token.Punctuation, "{"); err != nil {
		return nil, err
	}
	var props []ast.MatchObjectProp
	for !p.checkPunct("}") {
		key, err := p.eat(token.Identifier, "")
		if err != nil {
			return nil, p.wrapf(err, "expected property key in object match pattern")
		}
		var valPattern *ast.MatchPattern
		if p.eatIf(token.Punctuation, ":") {
			valPattern, err = p.parseMatchPattern()
			if err != nil {
				return nil, p.wrapf(err, "failed to parse value pattern for %s", key.Value)
			}
		} else {
			valPattern = matchBinding(key.Position, key.Value)
		}
		props = append(props, ast.MatchObjectProp{Key: key.Value, Pattern: valPattern})
		if !p.eatIf(token.Punctuation, ",") {
			break
		}
	}
	if _, err := p.eat(token.Punctuation, "}"); err != nil {
		return nil, err
	}
	mp := ast.NewMatchPattern(pos, ast.MPObject)
	mp.ObjectProps = props
	return mp, nil
}
