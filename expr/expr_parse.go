// Copyright (c) 2024 The custom-attrs Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package expr

import (
	"strings"

	"github.com/NovaliX-Dev/custom-attrs/syntax"
)

// ParseExpr parses ts as exactly one expression. If ts ends early, the
// error is reported at end.
func ParseExpr(ts syntax.TokenStream, end syntax.Span) (Expr, error) {
	p := &parser{c: syntax.NewCursor(ts, end)}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.c.EOF() {
		return nil, errUnexpectedToken(p.c.Peek())
	}
	return e, nil
}

// ParseExprFrom parses the longest expression at the cursor.
func ParseExprFrom(c *syntax.Cursor) (Expr, error) {
	return (&parser{c: c}).expr()
}

type parser struct {
	c *syntax.Cursor
}

func (p *parser) sub(group *syntax.Group) *parser {
	return &parser{c: syntax.GroupCursor(group)}
}

// since returns a span from start to the last consumed token.
func (p *parser) since(start syntax.Span) syntax.Span {
	return start.Join(p.c.Prev().Span())
}

func (p *parser) ident() (*syntax.Ident, error) {
	ident, ok := p.c.Peek().(*syntax.Ident)
	if !ok {
		return nil, errExpectedIdent(p.c.Peek(), p.c.Span())
	}
	p.c.Next()
	return ident, nil
}

func (p *parser) expect(op string) error {
	if !p.c.EatPunct(op) {
		return errExpectedPunct(op, p.c.Peek(), p.c.Span())
	}
	return nil
}

func (p *parser) expectEOF() error {
	if !p.c.EOF() {
		return errUnexpectedToken(p.c.Peek())
	}
	return nil
}

// peekAlone reports whether the next token is the punct c and is not joined
// to the token after it.
func (p *parser) peekAlone(c byte) bool {
	punct, ok := p.c.Peek().(*syntax.Punct)
	return ok && punct.Char() == c && punct.Spacing() == syntax.Alone
}

const (
	precAssign = iota + 1
	precRange
	precOr
	precAnd
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdd
	precMul
	precCast
)

// Longer operators come first so that `<<=` is not read as `<`.
var binaryOps = []struct {
	op   string
	prec int
}{
	{"<<=", precAssign},
	{">>=", precAssign},
	{"..=", precRange},
	{"&&", precAnd},
	{"||", precOr},
	{"==", precCompare},
	{"!=", precCompare},
	{"<=", precCompare},
	{">=", precCompare},
	{"<<", precShift},
	{">>", precShift},
	{"+=", precAssign},
	{"-=", precAssign},
	{"*=", precAssign},
	{"/=", precAssign},
	{"%=", precAssign},
	{"^=", precAssign},
	{"&=", precAssign},
	{"|=", precAssign},
	{"..", precRange},
	{"+", precAdd},
	{"-", precAdd},
	{"*", precMul},
	{"/", precMul},
	{"%", precMul},
	{"^", precBitXor},
	{"&", precBitAnd},
	{"|", precBitOr},
	{"<", precCompare},
	{">", precCompare},
	{"=", precAssign},
}

func (p *parser) peekBinaryOp() (string, int, bool) {
	if _, ok := p.c.Peek().(*syntax.Punct); !ok {
		return "", 0, false
	}
	for _, op := range binaryOps {
		if p.c.PeekPunct(op.op) {
			if op.op == "=" && p.c.PeekPunct("=>") {
				return "", 0, false
			}
			return op.op, op.prec, true
		}
	}
	return "", 0, false
}

func (p *parser) expr() (Expr, error) {
	return p.binary(precAssign)
}

func (p *parser) binary(minPrec int) (Expr, error) {
	var left Expr
	var err error
	if minPrec <= precRange && p.c.PeekPunct("..") {
		left, err = p.prefixRange()
	} else {
		left, err = p.unary()
	}
	if err != nil {
		return nil, err
	}

	for {
		if p.c.PeekIdent("as") {
			p.c.Next()
			ty, err := p.typ(false)
			if err != nil {
				return nil, err
			}
			left = &Cast{
				node: node{left.Span().Join(ty.Span())},
				Expr: left,
				Type: ty,
			}
			continue
		}

		op, prec, ok := p.peekBinaryOp()
		if !ok || prec < minPrec {
			return left, nil
		}
		p.c.EatPunct(op)

		if prec == precRange {
			rng := &Range{
				node:      node{p.since(left.Span())},
				Start:     left,
				Inclusive: op == "..=",
			}
			if p.canStartExpr() {
				if rng.End, err = p.binary(precRange + 1); err != nil {
					return nil, err
				}
				rng.span = left.Span().Join(rng.End.Span())
			}
			left = rng
			continue
		}

		nextPrec := prec + 1
		if prec == precAssign {
			nextPrec = prec
		}
		right, err := p.binary(nextPrec)
		if err != nil {
			return nil, err
		}
		left = &Binary{
			node:  node{left.Span().Join(right.Span())},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) prefixRange() (Expr, error) {
	start := p.c.Span()
	rng := &Range{Inclusive: p.c.PeekPunct("..=")}
	if rng.Inclusive {
		p.c.EatPunct("..=")
	} else {
		p.c.EatPunct("..")
	}
	if p.canStartExpr() {
		var err error
		if rng.End, err = p.binary(precRange + 1); err != nil {
			return nil, err
		}
	}
	rng.span = p.since(start)
	return rng, nil
}

var exprKeywords = map[string]struct{}{
	"async": {}, "break": {}, "const": {}, "continue": {}, "crate": {},
	"false": {}, "for": {}, "if": {}, "loop": {}, "match": {}, "move": {},
	"return": {}, "true": {}, "unsafe": {}, "while": {},
}

func (p *parser) canStartExpr() bool {
	switch tt := p.c.Peek().(type) {
	case *syntax.Literal, *syntax.Group:
		return true
	case *syntax.Ident:
		if !syntax.IsKeyword(tt.Name()) {
			return true
		}
		_, ok := exprKeywords[tt.Name()]
		return ok
	case *syntax.Punct:
		switch tt.Char() {
		case '-', '!', '*', '&', '|', '<', '\'':
			return true
		case ':':
			return p.c.PeekPunct("::")
		case '.':
			return p.c.PeekPunct("..")
		case '#':
			return p.peekAttribute()
		}
	}
	return false
}

func (p *parser) peekAttribute() bool {
	if !p.c.PeekPunct("#") {
		return false
	}
	group, ok := p.c.PeekN(1).(*syntax.Group)
	return ok && group.Delim() == syntax.Bracket
}

// attributed parses outer attributes and the expression they apply to.
func (p *parser) attributed() (Expr, error) {
	start := p.c.Span()
	var attrs []*syntax.Group
	for p.peekAttribute() {
		p.c.Next()
		attrs = append(attrs, p.c.Next().(*syntax.Group))
	}
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Attributed{
		node:  node{start.Join(operand.Span())},
		Attrs: attrs,
		Expr:  operand,
	}, nil
}

func (p *parser) unary() (Expr, error) {
	if p.peekAttribute() {
		return p.attributed()
	}
	start := p.c.Span()
	var op string
	switch {
	case p.c.PeekPunct("-"):
		op = "-"
	case p.c.PeekPunct("!"):
		op = "!"
	case p.c.PeekPunct("*"):
		op = "*"
	case p.c.PeekPunct("&"):
		op = "&"
	default:
		return p.postfix()
	}
	p.c.Next()
	if op == "&" && p.c.EatIdent("mut") {
		op = "&mut"
	}
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Unary{
		node: node{start.Join(operand.Span())},
		Op:   op,
		Expr: operand,
	}, nil
}

func (p *parser) postfix() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if group, ok := p.c.EatGroup(syntax.Parenthesis); ok {
			args, err := p.sub(group).exprList()
			if err != nil {
				return nil, err
			}
			e = &Call{
				node: node{e.Span().Join(group.Span())},
				Func: e,
				Args: args,
			}
		} else if group, ok := p.c.EatGroup(syntax.Bracket); ok {
			index, err := ParseExpr(group.Stream(), group.CloseSpan())
			if err != nil {
				return nil, err
			}
			e = &Index{
				node:  node{e.Span().Join(group.Span())},
				Base:  e,
				Index: index,
			}
		} else if p.c.PeekPunct("?") {
			p.c.Next()
			e = &Try{
				node: node{p.since(e.Span())},
				Expr: e,
			}
		} else if p.c.PeekPunct(".") && !p.c.PeekPunct("..") {
			p.c.Next()
			if e, err = p.member(e); err != nil {
				return nil, err
			}
		} else {
			return e, nil
		}
	}
}

// member parses what follows the `.` of a field access or method call.
func (p *parser) member(base Expr) (Expr, error) {
	switch tt := p.c.Peek().(type) {
	case *syntax.Ident:
		p.c.Next()
		if tt.Name() == "await" {
			return &Await{node: node{p.since(base.Span())}, Expr: base}, nil
		}
		var turbofish *GenericArgs
		if p.c.PeekPunct("::") {
			p.c.EatPunct("::")
			var err error
			if turbofish, err = p.genericArgs(); err != nil {
				return nil, err
			}
		}
		if group, ok := p.c.EatGroup(syntax.Parenthesis); ok {
			args, err := p.sub(group).exprList()
			if err != nil {
				return nil, err
			}
			return &MethodCall{
				node:      node{base.Span().Join(group.Span())},
				Receiver:  base,
				Method:    tt,
				Turbofish: turbofish,
				Args:      args,
			}, nil
		}
		if turbofish != nil {
			return nil, errExpectedPunct("(", p.c.Peek(), p.c.Span())
		}
		return &Field{
			node:   node{base.Span().Join(tt.Span())},
			Base:   base,
			Member: &Member{node: node{tt.Span()}, Name: tt.Unraw()},
		}, nil
	case *syntax.Literal:
		raw := tt.Raw()
		if tt.Kind() == syntax.LitInt && isDecimal(raw) {
			p.c.Next()
			return &Field{
				node:   node{base.Span().Join(tt.Span())},
				Base:   base,
				Member: &Member{node: node{tt.Span()}, Name: raw},
			}, nil
		}
		// `x.0.1` is lexed with the float literal `0.1`.
		if outer, inner, ok := strings.Cut(raw, "."); ok && tt.Kind() == syntax.LitFloat && isDecimal(outer) && isDecimal(inner) {
			p.c.Next()
			start := tt.Span().Start()
			outerSpan := syntax.NewSpan(start, uint32(len(outer)))
			innerSpan := syntax.NewSpan(start+uint32(len(outer))+1, uint32(len(inner)))
			field := &Field{
				node:   node{base.Span().Join(outerSpan)},
				Base:   base,
				Member: &Member{node: node{outerSpan}, Name: outer},
			}
			return &Field{
				node:   node{base.Span().Join(tt.Span())},
				Base:   field,
				Member: &Member{node: node{innerSpan}, Name: inner},
			}, nil
		}
	}
	return nil, errExpectedMember(p.c.Peek(), p.c.Span())
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for ii := 0; ii < len(s); ii++ {
		if s[ii] < '0' || s[ii] > '9' {
			return false
		}
	}
	return true
}

// exprList parses comma-separated expressions up to the end of the cursor.
// A trailing comma is allowed.
func (p *parser) exprList() ([]Expr, error) {
	exprs, _, err := p.exprListTrailing()
	return exprs, err
}

func (p *parser) exprListTrailing() ([]Expr, bool, error) {
	var exprs []Expr
	trailing := false
	for !p.c.EOF() {
		e, err := p.expr()
		if err != nil {
			return nil, false, err
		}
		exprs = append(exprs, e)
		if p.c.EOF() {
			trailing = false
			break
		}
		if err := p.expect(","); err != nil {
			return nil, false, err
		}
		trailing = true
	}
	return exprs, trailing, nil
}

func (p *parser) primary() (Expr, error) {
	switch tt := p.c.Peek().(type) {
	case nil:
		return nil, errExpectedExpr(nil, p.c.Span())
	case *syntax.Literal:
		p.c.Next()
		return &Lit{node: node{tt.Span()}, Token: tt}, nil
	case *syntax.Group:
		p.c.Next()
		switch tt.Delim() {
		case syntax.Parenthesis:
			return p.parenOrTuple(tt)
		case syntax.Bracket:
			return p.arrayOrRepeat(tt)
		default:
			return &Block{node: node{tt.Span()}, Body: tt}, nil
		}
	case *syntax.Punct:
		switch tt.Char() {
		case '|':
			return p.closure(tt.Span(), nil)
		case '<':
			return p.pathExpr()
		case ':':
			if p.c.PeekPunct("::") {
				return p.pathExpr()
			}
		case '\'':
			return p.labeled()
		}
		return nil, errExpectedExpr(tt, tt.Span())
	case *syntax.Ident:
		switch tt.Name() {
		case "if":
			return p.ifExpr()
		case "match":
			p.c.Next()
			scrutinee, arms, err := p.header()
			if err != nil {
				return nil, err
			}
			return &Match{
				node:      node{tt.Span().Join(arms.Span())},
				Scrutinee: scrutinee,
				Arms:      arms,
			}, nil
		case "loop", "while", "for":
			return p.loop(nil)
		case "unsafe", "async", "const", "move":
			return p.prefixed()
		case "return", "break", "continue":
			return p.jump()
		}
		if syntax.IsKeyword(tt.Name()) {
			if _, ok := exprKeywords[tt.Name()]; !ok {
				return nil, errExpectedExpr(tt, tt.Span())
			}
		}
		return p.pathExpr()
	}
	return nil, errExpectedExpr(p.c.Peek(), p.c.Span())
}

func (p *parser) parenOrTuple(group *syntax.Group) (Expr, error) {
	elems, trailing, err := p.sub(group).exprListTrailing()
	if err != nil {
		return nil, err
	}
	if len(elems) == 1 && !trailing {
		return &Paren{node: node{group.Span()}, Expr: elems[0]}, nil
	}
	return &Tuple{node: node{group.Span()}, Elems: elems}, nil
}

func (p *parser) arrayOrRepeat(group *syntax.Group) (Expr, error) {
	sub := p.sub(group)
	if sub.c.EOF() {
		return &Array{node: node{group.Span()}}, nil
	}
	first, err := sub.expr()
	if err != nil {
		return nil, err
	}
	if sub.c.EatPunct(";") {
		n, err := sub.expr()
		if err != nil {
			return nil, err
		}
		if err := sub.expectEOF(); err != nil {
			return nil, err
		}
		return &Repeat{node: node{group.Span()}, Elem: first, Len: n}, nil
	}
	elems := []Expr{first}
	if !sub.c.EOF() {
		if err := sub.expect(","); err != nil {
			return nil, err
		}
		rest, err := sub.exprList()
		if err != nil {
			return nil, err
		}
		elems = append(elems, rest...)
	}
	return &Array{node: node{group.Span()}, Elems: elems}, nil
}

func (p *parser) pathExpr() (Expr, error) {
	start := p.c.Span()
	qself, path, err := p.path(false)
	if err != nil {
		return nil, err
	}
	if qself == nil && p.peekAlone('!') {
		if group, ok := p.c.PeekN(1).(*syntax.Group); ok {
			p.c.Next()
			p.c.Next()
			return &Macro{
				node: node{start.Join(group.Span())},
				Path: path,
				Body: group,
			}, nil
		}
	}
	if body, ok := p.c.EatGroup(syntax.Brace); ok {
		return p.structLit(start, qself, path, body)
	}
	return &PathExpr{
		node:  node{p.since(start)},
		QSelf: qself,
		Path:  path,
	}, nil
}

func (p *parser) structLit(start syntax.Span, qself *QSelf, path *Path, body *syntax.Group) (Expr, error) {
	lit := &Struct{
		node:  node{start.Join(body.Span())},
		QSelf: qself,
		Path:  path,
	}
	sub := p.sub(body)
	for !sub.c.EOF() {
		if sub.c.EatPunct("..") {
			lit.HasRest = true
			if !sub.c.EOF() {
				rest, err := sub.expr()
				if err != nil {
					return nil, err
				}
				lit.Rest = rest
			}
			if err := sub.expectEOF(); err != nil {
				return nil, err
			}
			break
		}

		field := &FieldValue{}
		switch tt := sub.c.Peek().(type) {
		case *syntax.Ident:
			field.Member = &Member{node: node{tt.Span()}, Name: tt.Unraw()}
		case *syntax.Literal:
			if tt.Kind() != syntax.LitInt || !isDecimal(tt.Raw()) {
				return nil, errExpectedIdent(tt, tt.Span())
			}
			field.Member = &Member{node: node{tt.Span()}, Name: tt.Raw()}
		default:
			return nil, errExpectedIdent(sub.c.Peek(), sub.c.Span())
		}
		sub.c.Next()
		if sub.c.EatPunct(":") {
			value, err := sub.expr()
			if err != nil {
				return nil, err
			}
			field.Value = value
		} else if isDecimal(field.Member.Name) {
			return nil, errExpectedPunct(":", sub.c.Peek(), sub.c.Span())
		}
		field.span = field.Member.Span()
		if field.Value != nil {
			field.span = field.span.Join(field.Value.Span())
		}
		lit.Fields = append(lit.Fields, field)

		if !sub.c.EOF() {
			if err := sub.expect(","); err != nil {
				return nil, err
			}
		}
	}
	return lit, nil
}

// header collects the tokens of a control-flow header up to the body block.
func (p *parser) header() (syntax.TokenStream, *syntax.Group, error) {
	start := p.c.Pos()
	for !p.c.EOF() {
		if body, ok := p.c.PeekGroup(syntax.Brace); ok {
			header := p.c.Since(start)
			if len(header) == 0 {
				return nil, nil, errExpectedExpr(body, body.Span())
			}
			p.c.Next()
			return header, body, nil
		}
		p.c.Next()
	}
	return nil, nil, errExpectedPunct("{", nil, p.c.Span())
}

func (p *parser) ifExpr() (Expr, error) {
	start := p.c.Next().Span()
	cond, then, err := p.header()
	if err != nil {
		return nil, err
	}
	e := &If{Cond: cond, Then: then}
	if p.c.EatIdent("else") {
		if p.c.PeekIdent("if") {
			if e.Else, err = p.ifExpr(); err != nil {
				return nil, err
			}
		} else {
			body, ok := p.c.EatGroup(syntax.Brace)
			if !ok {
				return nil, errExpectedPunct("{", p.c.Peek(), p.c.Span())
			}
			e.Else = &Block{node: node{body.Span()}, Body: body}
		}
	}
	e.span = p.since(start)
	return e, nil
}

func (p *parser) loop(label *Lifetime) (Expr, error) {
	keyword := p.c.Next().(*syntax.Ident)
	start := keyword.Span()
	if label != nil {
		start = label.Span()
	}
	e := &Loop{Label: label, Keyword: keyword.Name()}
	if e.Keyword == "loop" {
		body, ok := p.c.EatGroup(syntax.Brace)
		if !ok {
			return nil, errExpectedPunct("{", p.c.Peek(), p.c.Span())
		}
		e.Body = body
	} else {
		header, body, err := p.header()
		if err != nil {
			return nil, err
		}
		e.Header, e.Body = header, body
	}
	e.span = p.since(start)
	return e, nil
}

// labeled parses `'label: loop { ... }` and labeled blocks.
func (p *parser) labeled() (Expr, error) {
	label, err := p.lifetime()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	if p.c.PeekIdent("loop") || p.c.PeekIdent("while") || p.c.PeekIdent("for") {
		return p.loop(label)
	}
	body, ok := p.c.EatGroup(syntax.Brace)
	if !ok {
		return nil, errExpectedPunct("{", p.c.Peek(), p.c.Span())
	}
	return &Block{
		node:  node{label.Span().Join(body.Span())},
		Label: label,
		Body:  body,
	}, nil
}

// prefixed parses blocks and closures introduced by `unsafe`, `async`,
// `const` or `move`.
func (p *parser) prefixed() (Expr, error) {
	start := p.c.Span()
	var prefix []string
	for {
		ident, ok := p.c.Peek().(*syntax.Ident)
		if !ok {
			break
		}
		name := ident.Name()
		if name != "unsafe" && name != "async" && name != "const" && name != "move" {
			break
		}
		prefix = append(prefix, name)
		p.c.Next()
	}
	if p.c.PeekPunct("|") {
		return p.closure(start, prefix)
	}
	body, ok := p.c.EatGroup(syntax.Brace)
	if !ok {
		return nil, errExpectedPunct("{", p.c.Peek(), p.c.Span())
	}
	return &Block{
		node:   node{start.Join(body.Span())},
		Prefix: prefix,
		Body:   body,
	}, nil
}

func (p *parser) closure(start syntax.Span, prefix []string) (Expr, error) {
	e := &Closure{Prefix: prefix}
	if !p.c.EatPunct("||") {
		p.c.EatPunct("|")
		paramStart := p.c.Pos()
		for !p.c.PeekPunct("|") {
			if p.c.EOF() {
				return nil, errExpectedPunct("|", nil, p.c.Span())
			}
			p.c.Next()
		}
		e.Params = p.c.Since(paramStart)
		p.c.Next()
	}
	if p.c.EatPunct("->") {
		output, err := p.typ(false)
		if err != nil {
			return nil, err
		}
		e.Output = output
		body, ok := p.c.EatGroup(syntax.Brace)
		if !ok {
			return nil, errExpectedPunct("{", p.c.Peek(), p.c.Span())
		}
		e.Body = &Block{node: node{body.Span()}, Body: body}
	} else {
		body, err := p.expr()
		if err != nil {
			return nil, err
		}
		e.Body = body
	}
	e.span = start.Join(e.Body.Span())
	return e, nil
}

func (p *parser) jump() (Expr, error) {
	keyword := p.c.Next().(*syntax.Ident)
	e := &Jump{Keyword: keyword.Name()}
	if e.Keyword != "return" && p.c.PeekPunct("'") {
		label, err := p.lifetime()
		if err != nil {
			return nil, err
		}
		e.Label = label
	}
	if e.Keyword != "continue" && p.canStartExpr() {
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		e.Value = value
	}
	e.span = p.since(keyword.Span())
	return e, nil
}
