package interp

import (
	"fmt"
	"strconv"
	"strings"

	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// Closure is a callable closure value. The body is parsed from the closure's
// raw tokens when the closure value is created and evaluated on every call.
type Closure struct {
	in     *Interp
	params []string
	body   string
	env    *Env
}

func newClosure(in *Interp, n *syntax.Node, env *Env) (*Closure, error) {
	toks := syntax.Tokens(n)
	if len(toks) < 2 || toks[0].Kind != token.LBrace || toks[len(toks)-1].Kind != token.RBrace {
		return nil, fmt.Errorf("malformed closure %q", syntax.Text(n))
	}
	inner := toks[1 : len(toks)-1]

	params, rest := closureParams(inner)
	if len(rest) > 0 && rest[0].Kind == token.Ident && rest[0].Text == "return" {
		rest = rest[1:]
	}
	var sb strings.Builder
	for i, tok := range rest {
		if i > 0 {
			sb.WriteString(token.TriviaText(tok.Leading))
		}
		sb.WriteString(tok.Text)
		if i < len(rest)-1 {
			sb.WriteString(token.TriviaText(tok.Trailing))
		}
	}
	return &Closure{in: in, params: params, body: sb.String(), env: env}, nil
}

// closureParams отделяет "a, b in" или "(a, b) in" от тела
func closureParams(toks []*token.Token) (params []string, body []*token.Token) {
	for i, tok := range toks {
		if tok.Kind == token.Ident && tok.Text == "in" {
			for _, p := range toks[:i] {
				switch p.Kind {
				case token.Ident:
					params = append(params, p.Text)
				case token.Comma, token.LParen, token.RParen:
				default:
					return nil, toks
				}
			}
			return params, toks[i+1:]
		}
	}
	return nil, toks
}

// Call evaluates the closure body with args bound to the declared parameters
// and to $0, $1, ...
func (c *Closure) Call(args ...Value) (Value, error) {
	if len(c.params) > 0 && len(c.params) != len(args) {
		return nil, errArity("closure", len(c.params), len(args))
	}
	if strings.TrimSpace(c.body) == "" {
		return nil, nil
	}
	scope := NewEnv(c.env)
	for i, a := range args {
		if i < len(c.params) {
			scope.Set(c.params[i], a)
		}
		scope.Set("$"+strconv.Itoa(i), a)
	}
	return c.in.evalSource(c.body, scope)
}
