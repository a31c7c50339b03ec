// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/shlex"

	caasperrors "github.com/kubic-project/caasp-hosts/errors"
)

// Matcher tells if a node belongs to the set described by a selector.
type Matcher interface {
	Match(id string, grains map[string]interface{}) bool
}

type notMatcher struct{ m Matcher }

func (n notMatcher) Match(id string, g map[string]interface{}) bool { return !n.m.Match(id, g) }

type andMatcher []Matcher

func (a andMatcher) Match(id string, g map[string]interface{}) bool {
	for _, m := range a {
		if !m.Match(id, g) {
			return false
		}
	}
	return true
}

type orMatcher []Matcher

func (o orMatcher) Match(id string, g map[string]interface{}) bool {
	for _, m := range o {
		if m.Match(id, g) {
			return true
		}
	}
	return false
}

// grainMatcher matches a grain value, or any element of a list grain.
type grainMatcher struct {
	key   string
	match func(string) bool
}

func (gm grainMatcher) Match(_ string, g map[string]interface{}) bool {
	v, ok := lookup(g, gm.key)
	if !ok {
		return false
	}
	for _, s := range toStrings(v) {
		if gm.match(s) {
			return true
		}
	}
	return false
}

// idMatcher matches the node id.
type idMatcher func(string) bool

func (im idMatcher) Match(id string, _ map[string]interface{}) bool { return im(id) }

func globFunc(pattern string) (func(string) bool, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}
	return func(s string) bool {
		ok, _ := path.Match(pattern, s)
		return ok
	}, nil
}

func regexpFunc(pattern string) (func(string) bool, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, err
	}
	return re.MatchString, nil
}

// tokenize splits a selector in words, with the grouping parenthesis as words of their own.
// Parenthesis belonging to a pattern, as in "P@roles:(admin|ca)", are kept in the pattern.
func tokenize(expr string) ([]string, error) {
	words, err := shlex.Split(expr)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		for strings.HasPrefix(w, "(") {
			tokens = append(tokens, "(")
			w = w[1:]
		}
		trailing := 0
		for strings.HasSuffix(w, ")") && strings.Count(w, ")") > strings.Count(w, "(") {
			trailing++
			w = w[:len(w)-1]
		}
		if w != "" {
			tokens = append(tokens, w)
		}
		for ; trailing > 0; trailing-- {
			tokens = append(tokens, ")")
		}
	}
	return tokens, nil
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

// ParseSelector compiles a compound selector. Supported terms:
//
//	G@key:glob      grain glob match
//	P@key:regexp    grain regular expression match (anchored)
//	L@id1,id2       list of node ids
//	glob            node id glob match
//
// combined with "and", "or", "not" and parenthesis. Adjacent terms are and-ed.
func ParseSelector(expr string) (Matcher, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: selector %q: %w", caasperrors.ErrIncorrectInput, expr, err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty selector", caasperrors.ErrIncorrectInput)
	}

	p := &parser{tokens: tokens}
	m, err := p.parseOr()
	if err == nil && p.pos < len(p.tokens) {
		err = fmt.Errorf("unexpected %q", p.peek())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: selector %q: %w", caasperrors.ErrIncorrectInput, expr, err)
	}
	return m, nil
}

func (p *parser) parseOr() (Matcher, error) {
	var res orMatcher
	for {
		m, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		res = append(res, m)
		if p.peek() != "or" {
			break
		}
		p.next()
	}
	if len(res) == 1 {
		return res[0], nil
	}
	return res, nil
}

func (p *parser) parseAnd() (Matcher, error) {
	var res andMatcher
	for {
		m, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		res = append(res, m)

		switch p.peek() {
		case "and":
			p.next()
			continue
		case "", "or", ")":
		default:
			continue
		}
		break
	}
	if len(res) == 1 {
		return res[0], nil
	}
	return res, nil
}

func (p *parser) parseUnary() (Matcher, error) {
	switch t := p.next(); t {
	case "":
		return nil, fmt.Errorf("unexpected end of expression")
	case "not":
		m, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notMatcher{m}, nil
	case "(":
		m, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return m, nil
	case ")", "and", "or":
		return nil, fmt.Errorf("unexpected %q", t)
	default:
		return parseTerm(t)
	}
}

func parseTerm(t string) (Matcher, error) {
	kind, body, found := strings.Cut(t, "@")
	if !found || len(kind) != 1 {
		f, err := globFunc(t)
		if err != nil {
			return nil, err
		}
		return idMatcher(f), nil
	}

	switch kind {
	case "L":
		ids := strings.Split(body, ",")
		return idMatcher(func(id string) bool {
			for _, i := range ids {
				if i == id {
					return true
				}
			}
			return false
		}), nil
	case "G", "P":
		key, pattern, ok := strings.Cut(body, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid grain match %q", t)
		}
		newFunc := globFunc
		if kind == "P" {
			newFunc = regexpFunc
		}
		f, err := newFunc(pattern)
		if err != nil {
			return nil, err
		}
		return grainMatcher{key: key, match: f}, nil
	}
	return nil, fmt.Errorf("unsupported match type %q", kind+"@")
}
