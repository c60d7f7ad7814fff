package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func dumpf(w io.Writer, indentLevel int, typ fmt.Stringer, properties ...string) error {
	indent := strings.Repeat("    ", indentLevel)
	if _, err := fmt.Fprintf(w, "%s- *%s*\n", indent, typ); err != nil {
		return err
	}
	for i := 0; i < len(properties); i += 2 {
		key, value := properties[i], ""
		if i+1 < len(properties) {
			value = properties[i+1]
		}
		value = strconv.Quote(value)
		value = value[1 : len(value)-1]
		if _, err := fmt.Fprintf(w, "%s    - %s: `%s`\n", indent, key, value); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, indentLevel int, n Node) error {
	if isNilNode(n) {
		return nil
	}

	var properties []string
	properties = append(properties, "Position", n.Pos().String())

	var children []Node
	switch v := n.(type) {
	case *NumberLit:
		properties = append(properties, "Value", v.Value)
	case *StringLit:
		properties = append(properties, "Value", v.Value)
	case *BoolLit:
		properties = append(properties, "Value", fmt.Sprintf("%v", v.Value))
	case *Identifier:
		properties = append(properties, "Name", v.Name)
	case *TemplateLit:
		for _, p := range v.Parts {
			if p.Expr != nil {
				children = append(children, p.Expr)
			}
		}
	case *VarDecl:
		properties = append(properties, "Name", v.Name, "Const", fmt.Sprintf("%v", v.Const))
		if v.Init != nil {
			children = append(children, v.Init)
		}
	case *FnDecl:
		properties = append(properties, "Name", v.Name)
		if v.Body != nil {
			children = append(children, v.Body)
		}
	case *ClassDecl:
		properties = append(properties, "Name", v.Name)
		for _, m := range v.Members {
			if m.Body != nil {
				children = append(children, m.Body)
			}
		}
	case *EnumDecl:
		properties = append(properties, "Name", v.Name)
	case *TypeAlias:
		properties = append(properties, "Name", v.Name)
	case *Block:
		for _, s := range v.Stmts {
			children = append(children, s)
		}
	case *If:
		children = append(children, v.Cond)
		if v.Then != nil {
			children = append(children, v.Then)
		}
		if v.Else != nil {
			children = append(children, v.Else)
		}
	case *While:
		children = append(children, v.Cond, v.Body)
	case *Loop:
		children = append(children, v.Body)
	case *Return:
		if v.Value != nil {
			children = append(children, v.Value)
		}
	case *ExprStmt:
		children = append(children, v.X)
	case *Match:
		children = append(children, v.Subject)
		for _, c := range v.Cases {
			if c.Body != nil {
				children = append(children, c.Body)
			}
		}
	case *BinaryExpr:
		properties = append(properties, "Op", v.Op)
		children = append(children, v.X, v.Y)
	case *UnaryExpr:
		properties = append(properties, "Op", string(v.Op))
		children = append(children, v.X)
	case *AssignExpr:
		properties = append(properties, "Op", v.Op)
		children = append(children, v.Target, v.Value)
	case *CallExpr:
		children = append(children, v.Callee)
		for _, a := range v.Args {
			children = append(children, a)
		}
	case *MemberExpr:
		properties = append(properties, "Computed", fmt.Sprintf("%v", v.Computed))
		children = append(children, v.Object)
		if v.Property != nil {
			children = append(children, v.Property)
		}
	case *ArrayLit:
		for _, e := range v.Elements {
			if e != nil {
				children = append(children, e)
			}
		}
	case *ObjectLit:
		for _, p := range v.Props {
			if p.Value != nil {
				children = append(children, p.Value)
			}
		}
	case *ArrowFunction:
		if v.Body != nil {
			children = append(children, v.Body)
		}
		if v.ExprBody != nil {
			children = append(children, v.ExprBody)
		}
	}

	if err := dumpf(w, indentLevel, n.Kind(), properties...); err != nil {
		return err
	}
	for _, c := range children {
		if err := dump(w, indentLevel+1, c); err != nil {
			return err
		}
	}
	return nil
}

func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Block:
		return v == nil
	case nil:
		return true
	}
	return false
}

// Dump prints a textual representation of the tree rooted at n to w,
// grounded on the teacher's ast.Dump (ast/print.go), generalized from
// YAML's closed node set to NTL's full declaration/statement/expression
// set. Used by `ntlc check --ast` for debugging the parser's output.
func Dump(w io.Writer, n Node) error {
	return dump(w, 0, n)
}

// DumpFile prints every top-level statement of f to w.
func DumpFile(w io.Writer, f *File) error {
	for _, s := range f.Stmts {
		if err := dump(w, 0, s); err != nil {
			return err
		}
	}
	return nil
}
