// Copyright (C) 2026 The typedpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sexp implements the small symbolic-expression dialect used
// for the serialized form of path terms: atoms and parenthesized lists,
// with double-quoting for atoms that contain delimiters.
package sexp

import (
	"errors"
	"fmt"
	"strings"
)

// Value is an atom or a list.
type Value interface {
	String() string
	write(b *strings.Builder)
}

// Atom is a bare token.
type Atom string

// List is a parenthesized sequence of values.
type List []Value

func atomNeedsQuoting(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, "()\"\\ \t\n\r")
}

func (a Atom) write(b *strings.Builder) {
	s := string(a)
	if !atomNeedsQuoting(s) {
		b.WriteString(s)
		return
	}
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

func (a Atom) String() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (l List) write(b *strings.Builder) {
	b.WriteByte('(')
	for i, v := range l {
		if i > 0 {
			b.WriteByte(' ')
		}
		v.write(b)
	}
	b.WriteByte(')')
}

func (l List) String() string {
	var b strings.Builder
	l.write(&b)
	return b.String()
}

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("sexp syntax error")

type parser struct {
	s   string
	pos int
}

// Parse reads exactly one value from s; trailing input is an error.
func Parse(s string) (Value, error) {
	p := &parser{s: s}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("%w: trailing input at offset %d", ErrSyntax, p.pos)
	}
	return v, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value() (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	switch p.s[p.pos] {
	case '(':
		return p.list()
	case ')':
		return nil, fmt.Errorf("%w: unexpected ')' at offset %d", ErrSyntax, p.pos)
	case '"':
		return p.quotedAtom()
	default:
		return p.bareAtom(), nil
	}
}

func (p *parser) list() (Value, error) {
	p.pos++ // consume '('
	l := List{}
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, fmt.Errorf("%w: unterminated list", ErrSyntax)
		}
		if p.s[p.pos] == ')' {
			p.pos++
			return l, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		l = append(l, v)
	}
}

func (p *parser) bareAtom() Value {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune("()\" \t\n\r", rune(p.s[p.pos])) {
		p.pos++
	}
	return Atom(p.s[start:p.pos])
}

func (p *parser) quotedAtom() (Value, error) {
	p.pos++ // consume '"'
	var b strings.Builder
	for p.pos < len(p.s) {
		switch c := p.s[p.pos]; c {
		case '"':
			p.pos++
			return Atom(b.String()), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.s) {
				return nil, fmt.Errorf("%w: dangling escape", ErrSyntax)
			}
			b.WriteByte(p.s[p.pos])
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return nil, fmt.Errorf("%w: unterminated quoted atom", ErrSyntax)
}
