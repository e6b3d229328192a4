package variant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// tagPattern matches a control tag {% ... %} or a parameter reference ${...}.
var tagPattern = regexp.MustCompile(`(?s)\{%(.*?)%\}|\$\{([^{}]*)\}`)

// position is a 1-based line and column in the template source.
type position struct {
	line, col int
}

// positionAt converts a byte offset into a line and rune column.
func positionAt(src string, off int) position {
	before := src[:off]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return position{line: line, col: len([]rune(before[lineStart:])) + 1}
}

type tokenKind int

const (
	tokText tokenKind = iota
	tokParam
	tokIf
	tokElsif
	tokElse
	tokEnd
	tokError
)

var tagNames = map[tokenKind]string{
	tokIf:    "if",
	tokElsif: "elsif",
	tokElse:  "else",
	tokEnd:   "end",
	tokError: "error",
}

type token struct {
	kind tokenKind
	text string  // literal text, parameter name or error message
	expr *orExpr // condition of if/elsif
	pos  position
}

// syntaxError is a template problem found before any subset is evaluated.
type syntaxError struct {
	pos position
	msg string
	err error
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.pos.line, e.pos.col, e.msg)
}

// tokenize splits the template into literal text, parameter references and
// control tags.
func tokenize(src string) ([]token, error) {
	var tokens []token
	last := 0

	for _, m := range tagPattern.FindAllStringSubmatchIndex(src, -1) {
		if m[0] > last {
			text := src[last:m[0]]
			if err := checkLiteral(src, last, text); err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokText, text: text, pos: positionAt(src, last)})
		}
		pos := positionAt(src, m[0])

		if m[2] >= 0 {
			tok, err := parseTag(strings.TrimSpace(src[m[2]:m[3]]), pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		} else {
			name := strings.TrimSpace(src[m[4]:m[5]])
			if !isIdentifier(name) {
				return nil, &syntaxError{pos: pos, msg: fmt.Sprintf("invalid parameter reference %q", src[m[0]:m[1]])}
			}
			tokens = append(tokens, token{kind: tokParam, text: name, pos: pos})
		}
		last = m[1]
	}

	if last < len(src) {
		text := src[last:]
		if err := checkLiteral(src, last, text); err != nil {
			return nil, err
		}
		tokens = append(tokens, token{kind: tokText, text: text, pos: positionAt(src, last)})
	}
	return tokens, nil
}

// checkLiteral rejects tag openers that never closed.
func checkLiteral(src string, off int, text string) error {
	for _, opener := range []string{"{%", "${"} {
		if i := strings.Index(text, opener); i >= 0 {
			return &syntaxError{pos: positionAt(src, off+i), msg: fmt.Sprintf("unclosed %q", opener)}
		}
	}
	return nil
}

// parseTag turns the inside of a {% %} tag into a token.
func parseTag(body string, pos position) (token, error) {
	end := strings.IndexFunc(body, func(r rune) bool { return !isIdentRune(r) })
	if end < 0 {
		end = len(body)
	}
	keyword, rest := body[:end], strings.TrimSpace(body[end:])

	switch keyword {
	case "if", "elsif":
		kind := tokIf
		if keyword == "elsif" {
			kind = tokElsif
		}
		if rest == "" {
			return token{}, &syntaxError{pos: pos, msg: fmt.Sprintf("{%% %s %%} needs a condition", keyword)}
		}
		expr, msg, err := parseExpr(rest)
		if err != nil {
			return token{}, &syntaxError{pos: pos, msg: msg, err: err}
		}
		return token{kind: kind, expr: expr, pos: pos}, nil

	case "else", "end":
		if rest != "" {
			return token{}, &syntaxError{pos: pos, msg: fmt.Sprintf("unexpected %q after %s", rest, keyword)}
		}
		kind := tokElse
		if keyword == "end" {
			kind = tokEnd
		}
		return token{kind: kind, pos: pos}, nil

	case "error":
		msg, err := strconv.Unquote(rest)
		if err != nil {
			return token{}, &syntaxError{pos: pos, msg: "{% error %} needs a quoted message"}
		}
		return token{kind: tokError, text: msg, pos: pos}, nil

	case "":
		if rest != "" {
			return token{}, &syntaxError{pos: pos, msg: fmt.Sprintf("unknown tag %q", rest)}
		}
		return token{}, &syntaxError{pos: pos, msg: "empty tag"}

	default:
		return token{}, &syntaxError{pos: pos, msg: fmt.Sprintf("unknown tag %q", keyword)}
	}
}

// node is one element of a parsed template.
type node interface {
	at() position
}

type textNode struct {
	text string
	pos  position
}

type paramNode struct {
	name string
	pos  position
}

type branch struct {
	cond *orExpr
	body []node
	pos  position
}

// condNode is an if/elsif/else chain. Exactly one branch, or the else body,
// is kept for a given subset.
type condNode struct {
	branches []branch
	orElse   []node
	pos      position
}

type errorNode struct {
	msg string
	pos position
}

func (n *textNode) at() position  { return n.pos }
func (n *paramNode) at() position { return n.pos }
func (n *condNode) at() position  { return n.pos }
func (n *errorNode) at() position { return n.pos }

// parseTemplate tokenizes and parses src into a node tree.
func parseTemplate(src string) ([]node, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &treeParser{tokens: tokens}
	nodes, stop := p.parseNodes()
	if p.err != nil {
		return nil, p.err
	}
	if stop != nil {
		return nil, &syntaxError{pos: stop.pos, msg: fmt.Sprintf("{%% %s %%} without {%% if %%}", tagNames[stop.kind])}
	}
	return nodes, nil
}

type treeParser struct {
	tokens []token
	i      int
	err    error
}

// parseNodes consumes tokens until an elsif, else or end tag, which is
// returned, or until the input runs out.
func (p *treeParser) parseNodes() ([]node, *token) {
	var nodes []node
	for p.i < len(p.tokens) && p.err == nil {
		tok := p.tokens[p.i]
		p.i++

		switch tok.kind {
		case tokText:
			nodes = append(nodes, &textNode{text: tok.text, pos: tok.pos})
		case tokParam:
			nodes = append(nodes, &paramNode{name: tok.text, pos: tok.pos})
		case tokError:
			nodes = append(nodes, &errorNode{msg: tok.text, pos: tok.pos})
		case tokIf:
			if cond := p.parseCond(tok); cond != nil {
				nodes = append(nodes, cond)
			}
		default:
			return nodes, &tok
		}
	}
	return nodes, nil
}

func (p *treeParser) parseCond(open token) *condNode {
	cond := &condNode{pos: open.pos}
	current := branch{cond: open.expr, pos: open.pos}
	inElse := false

	for {
		body, stop := p.parseNodes()
		if p.err != nil {
			return nil
		}
		if inElse {
			cond.orElse = body
		} else {
			current.body = body
			cond.branches = append(cond.branches, current)
		}

		if stop == nil {
			p.err = &syntaxError{pos: open.pos, msg: "{% if %} is never closed with {% end %}"}
			return nil
		}

		switch stop.kind {
		case tokEnd:
			return cond
		case tokElsif:
			if inElse {
				p.err = &syntaxError{pos: stop.pos, msg: "{% elsif %} after {% else %}"}
				return nil
			}
			current = branch{cond: stop.expr, pos: stop.pos}
		case tokElse:
			if inElse {
				p.err = &syntaxError{pos: stop.pos, msg: "duplicate {% else %}"}
				return nil
			}
			inElse = true
		}
	}
}

// walk visits every node, descending into all branches.
func walk(nodes []node, fn func(node)) {
	for _, n := range nodes {
		fn(n)
		if c, ok := n.(*condNode); ok {
			for _, b := range c.branches {
				walk(b.body, fn)
			}
			walk(c.orElse, fn)
		}
	}
}

// checkReferences reports the first flag or parameter that is not declared.
func checkReferences(nodes []node, flags, params []string) error {
	declaredFlags := toSet(flags)
	declaredParams := toSet(params)

	var err error
	walk(nodes, func(n node) {
		if err != nil {
			return
		}
		switch n := n.(type) {
		case *paramNode:
			if !declaredParams[n.name] {
				err = &syntaxError{pos: n.pos, msg: fmt.Sprintf("undeclared parameter %q", n.name)}
			}
		case *condNode:
			for _, b := range n.branches {
				for _, f := range b.cond.flags(nil) {
					if !declaredFlags[f] {
						err = &syntaxError{pos: b.pos, msg: fmt.Sprintf("undeclared flag %q", f)}
						return
					}
				}
			}
		}
	})
	return err
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// isIdentifier checks if a string is a valid flag, parameter or family name.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if i == 0 && ch >= '0' && ch <= '9' {
			return false
		}
		if !isIdentRune(ch) {
			return false
		}
	}
	return true
}

func isIdentRune(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_'
}
