package variant

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Flag expressions appear inside {% if %} and {% elsif %} tags:
//
//	formal
//	!compact
//	formal && (escape || not compact)
//	formal and not compact or true

//nolint:govet // participle grammar tags are not standard struct tags
type orExpr struct {
	Left  *andExpr   `@@`
	Right []*andExpr `( ( "||" | "or" ) @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type andExpr struct {
	Left  *unaryExpr   `@@`
	Right []*unaryExpr `( ( "&&" | "and" ) @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type unaryExpr struct {
	Not     []string `@( "!" | "not" )*`
	Operand *operand `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type operand struct {
	Bool  *string `  @( "true" | "false" )`
	Flag  *string `| @Ident`
	Group *orExpr `| "(" @@ ")"`
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `&&|\|\||[!()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[orExpr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// parseExpr parses a flag expression. The returned message is suitable for
// a TemplateError.
func parseExpr(src string) (*orExpr, string, error) {
	expr, err := exprParser.ParseString("", src)
	if err != nil {
		msg := err.Error()
		var perr participle.Error
		if errors.As(err, &perr) {
			msg = perr.Message()
		}
		return nil, fmt.Sprintf("invalid condition %q: %s", src, msg), err
	}
	return expr, "", nil
}

func (e *orExpr) eval(env map[string]bool) bool {
	if e.Left.eval(env) {
		return true
	}
	for _, r := range e.Right {
		if r.eval(env) {
			return true
		}
	}
	return false
}

func (e *andExpr) eval(env map[string]bool) bool {
	if !e.Left.eval(env) {
		return false
	}
	for _, r := range e.Right {
		if !r.eval(env) {
			return false
		}
	}
	return true
}

func (e *unaryExpr) eval(env map[string]bool) bool {
	v := e.Operand.eval(env)
	if len(e.Not)%2 == 1 {
		return !v
	}
	return v
}

func (o *operand) eval(env map[string]bool) bool {
	switch {
	case o.Bool != nil:
		return *o.Bool == "true"
	case o.Flag != nil:
		return env[*o.Flag]
	default:
		return o.Group.eval(env)
	}
}

// flags appends every flag name referenced by the expression.
func (e *orExpr) flags(out []string) []string {
	out = e.Left.flags(out)
	for _, r := range e.Right {
		out = r.flags(out)
	}
	return out
}

func (e *andExpr) flags(out []string) []string {
	out = e.Left.flags(out)
	for _, r := range e.Right {
		out = r.flags(out)
	}
	return out
}

func (e *unaryExpr) flags(out []string) []string {
	o := e.Operand
	switch {
	case o.Flag != nil:
		return append(out, *o.Flag)
	case o.Group != nil:
		return o.Group.flags(out)
	default:
		return out
	}
}
