// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package pddl

import (
	"fmt"
	"strings"

	"github.com/fawkesrobotics/go-pddl/pkg/pddl/ast"
	"github.com/fawkesrobotics/go-pddl/pkg/pddl/sexp"
	"github.com/fawkesrobotics/go-pddl/pkg/util/source"
)

// ===================================================================
// Public
// ===================================================================

// ParseDomain parses a complete PDDL domain given as a string, producing the
// structured domain along with any warnings encountered.  Parsing is
// all-or-nothing: the first error aborts it, and warnings accumulated before
// an error are discarded.
func ParseDomain(text string) (ast.Domain, []string, error) {
	return ParseDomainSource(source.NewSourceFile("<domain>", []byte(text)))
}

// ParseDomainSource parses a complete PDDL domain from a given source file.
func ParseDomainSource(srcfile *source.File) (ast.Domain, []string, error) {
	var domain ast.Domain
	// Parse text into an S-expression
	term, srcmap, serr := sexp.Parse(srcfile)
	//
	if serr != nil {
		return domain, nil, liftSyntaxError(serr)
	}
	// Translate S-expression into a domain
	p := newParser(srcfile, srcmap)
	//
	domain, err := p.parseDomain(term)
	if err != nil {
		return domain, nil, err
	}
	//
	return domain, p.warnings, nil
}

// ParseProblem parses a complete PDDL problem given as a string.  Observe
// that, matching the behaviour of the domain-internal checks being driven by
// the domain alone, no cross-validation against any domain is performed; see
// ParseProblemWithDomain for that.
func ParseProblem(text string) (ast.Problem, []string, error) {
	return ParseProblemSource(source.NewSourceFile("<problem>", []byte(text)))
}

// ParseProblemSource parses a complete PDDL problem from a given source file.
func ParseProblemSource(srcfile *source.File) (ast.Problem, []string, error) {
	problem, p, err := parseProblemSource(srcfile)
	if err != nil {
		return problem, nil, err
	}
	//
	return problem, p.warnings, nil
}

// ParseFormula parses a single PDDL expression given as a string.
func ParseFormula(text string) (ast.Expression, []string, error) {
	return ParseFormulaSource(source.NewSourceFile("<formula>", []byte(text)))
}

// ParseFormulaSource parses a single PDDL expression from a given source
// file.
func ParseFormulaSource(srcfile *source.File) (ast.Expression, []string, error) {
	var empty ast.Expression
	// Parse text into an S-expression
	term, srcmap, serr := sexp.Parse(srcfile)
	//
	if serr != nil {
		return empty, nil, liftSyntaxError(serr)
	}
	// Translate S-expression into an expression
	p := newParser(srcfile, srcmap)
	//
	expr, err := p.parseExpression(term)
	if err != nil {
		return empty, nil, err
	}
	//
	return expr, p.warnings, nil
}

// ===================================================================
// Parser
// ===================================================================

// parser translates S-expressions into PDDL abstract syntax, invoking the
// semantic actions along the way.  The parser is deliberately simplistic: it
// dispatches on section keywords and leading tokens exactly as the grammar
// prescribes, and hard-expects the token which must follow each opening
// keyword.  The first error aborts the parse.
type parser struct {
	// Source file being parsed.
	srcfile *source.File
	// Mapping from S-expressions to their spans in the original text.
	srcmap *source.Map[sexp.SExp]
	// Mapping from constructed AST terms to their spans in the original text.
	// This is used to report semantic errors against the exact position of the
	// offending fragment.
	nodemap *source.Map[ast.Term]
	// Warnings collected so far.
	warnings []string
	// S-expressions of the problem's object groups, aligned with
	// Problem.Objects.  Retained for the optional cross-validation pass.
	objectNodes []sexp.SExp
}

func newParser(srcfile *source.File, srcmap *source.Map[sexp.SExp]) *parser {
	return &parser{
		srcfile: srcfile,
		srcmap:  srcmap,
		nodemap: source.NewSourceMap[ast.Term](srcmap.Source()),
	}
}

// Register a source mapping from a given S-Expression to a given AST term.
func (p *parser) mapTerm(term ast.Term, from sexp.SExp) {
	p.nodemap.Put(term, p.srcmap.Get(from))
}

// Construct an error of a given kind at the position of a given S-expression.
func (p *parser) errorAt(kind ErrorKind, node sexp.SExp, msg string) *Error {
	return NewError(kind, p.srcfile, p.srcmap.Get(node), msg)
}

// Construct an error of a given kind at the position of a given AST term.
func (p *parser) termError(kind ErrorKind, term ast.Term, msg string) *Error {
	return NewError(kind, p.srcfile, p.nodemap.Get(term), msg)
}

// Construct a syntax error describing a failed expectation at the position of
// a given S-expression.
func (p *parser) syntaxError(node sexp.SExp, msg string) *Error {
	return p.errorAt(SyntaxError, node, msg)
}

func liftSyntaxError(err *source.SyntaxError) *Error {
	return NewError(SyntaxError, err.SourceFile(), err.Span(), err.Message())
}

// ===================================================================
// Domain
// ===================================================================

func (p *parser) parseDomain(s sexp.SExp) (ast.Domain, *Error) {
	var domain ast.Domain
	//
	l := s.AsList()
	if l == nil || !l.MatchSymbols(1, "define") {
		return domain, p.syntaxError(s, "expected '(define ...)'")
	} else if l.Len() < 2 {
		return domain, p.syntaxError(s, "expected '(domain <name>)'")
	}
	// Domain name
	name, err := p.parseNamedHead(l.Get(1), "domain")
	if err != nil {
		return domain, err
	}
	//
	domain.Name = name
	// Sections
	for _, section := range l.Elements[2:] {
		sl := section.AsList()
		if sl == nil || sl.Len() == 0 || sl.Get(0).AsSymbol() == nil {
			return domain, p.syntaxError(section, "expected domain section")
		}
		//
		var err *Error
		//
		switch head := sl.Get(0).AsSymbol().Value; {
		case strings.EqualFold(head, ":requirements"):
			err = p.parseRequirements(sl, &domain)
		case strings.EqualFold(head, ":types"):
			err = p.parseTypes(sl, &domain)
		case strings.EqualFold(head, ":constants"):
			err = p.parseConstants(sl, &domain)
		case strings.EqualFold(head, ":predicates"):
			err = p.parsePredicates(sl, &domain)
		case strings.EqualFold(head, ":functions"):
			err = p.parseFunctions(sl, &domain)
		case strings.EqualFold(head, ":action"):
			err = p.parseAction(sl, &domain, false)
		case strings.EqualFold(head, ":durative-action"):
			err = p.parseAction(sl, &domain, true)
		default:
			err = p.syntaxError(sl.Get(0), "expected domain section keyword")
		}
		//
		if err != nil {
			return domain, err
		}
	}
	//
	return domain, nil
}

// Parse a list of the form "(<keyword> <name>)", as arises for "(domain d)"
// and "(problem p)", returning the name.
func (p *parser) parseNamedHead(s sexp.SExp, keyword string) (string, *Error) {
	l := s.AsList()
	//
	if l == nil || !l.MatchSymbols(1, keyword) {
		return "", p.syntaxError(s, fmt.Sprintf("expected '(%s <name>)'", keyword))
	} else if l.Len() != 2 || l.Get(1).AsSymbol() == nil || !isName(l.Get(1).AsSymbol().Value) {
		return "", p.syntaxError(s, fmt.Sprintf("expected %s name", keyword))
	}
	//
	return l.Get(1).AsSymbol().Value, nil
}

func (p *parser) parseRequirements(l *sexp.List, domain *ast.Domain) *Error {
	if l.Len() < 2 {
		return p.syntaxError(l, "expected requirement flag")
	}
	//
	for _, e := range l.Elements[1:] {
		sym := e.AsSymbol()
		// Requirement flags carry a leading ':' which is not retained.
		if sym == nil || len(sym.Value) < 2 || sym.Value[0] != ':' || !isName(sym.Value[1:]) {
			return p.syntaxError(e, "expected requirement flag")
		}
		//
		domain.Requirements = append(domain.Requirements, sym.Value[1:])
	}
	//
	return nil
}

func (p *parser) parseTypes(l *sexp.List, domain *ast.Domain) *Error {
	groups, err := p.parseTypedList(l.Elements[1:], false, false)
	if err != nil {
		return err
	}
	//
	domain.Types = append(domain.Types, flattenTypedList(groups)...)
	//
	return nil
}

func (p *parser) parseConstants(l *sexp.List, domain *ast.Domain) *Error {
	groups, err := p.parseTypedList(l.Elements[1:], false, true)
	if err != nil {
		return err
	}
	//
	for _, group := range groups {
		// Expand multi-type declarations into one group per type variant.
		expanded := group.expand()
		// Validate every variant against the domain so far.  Observe that the
		// variants of a single declaration are appended only after all have
		// been checked, hence do not report each other as ambiguous.
		for _, g := range expanded {
			if err := p.constantSemantics(g, group.node(), domain); err != nil {
				return err
			}
		}
		//
		domain.Constants = append(domain.Constants, expanded...)
	}
	//
	return nil
}

func (p *parser) parsePredicates(l *sexp.List, domain *ast.Domain) *Error {
	for _, e := range l.Elements[1:] {
		name, params, err := p.parseSignature(e, domain)
		if err != nil {
			return err
		}
		//
		domain.Predicates = append(domain.Predicates, ast.PredicateDecl{Name: name, Params: params})
	}
	//
	return nil
}

func (p *parser) parseFunctions(l *sexp.List, domain *ast.Domain) *Error {
	for _, e := range l.Elements[1:] {
		name, params, err := p.parseSignature(e, domain)
		if err != nil {
			return err
		}
		//
		domain.Functions = append(domain.Functions, ast.Function{Name: name, Params: params})
	}
	//
	return nil
}

// Parse a predicate or function signature of the form "(name ?v1 ?v2 - t)".
func (p *parser) parseSignature(s sexp.SExp, domain *ast.Domain) (string, []ast.TypedName, *Error) {
	l := s.AsList()
	//
	if l == nil || l.Len() == 0 || l.Get(0).AsSymbol() == nil || !isName(l.Get(0).AsSymbol().Value) {
		return "", nil, p.syntaxError(s, "expected predicate declaration")
	}
	//
	groups, err := p.parseTypedList(l.Elements[1:], true, true)
	if err != nil {
		return "", nil, err
	}
	// Type annotations here carry no other semantic check, hence the typing
	// requirement is enforced directly.
	for _, group := range groups {
		if len(group.types) != 0 {
			if err := p.typeSemantics(group.node(), domain); err != nil {
				return "", nil, err
			}
		}
	}
	//
	return l.Get(0).AsSymbol().Value, flattenTypedList(groups), nil
}

// ===================================================================
// Actions
// ===================================================================

func (p *parser) parseAction(l *sexp.List, domain *ast.Domain, durative bool) *Error {
	var action ast.Action
	//
	if l.Len() < 2 || l.Get(1).AsSymbol() == nil || !isName(l.Get(1).AsSymbol().Value) {
		return p.syntaxError(l, "expected action name")
	}
	//
	action.Name = l.Get(1).AsSymbol().Value
	elements := l.Elements[2:]
	// Hard-expect the parameter list
	if len(elements) == 0 || !isKeyword(elements[0], ":parameters") {
		return p.syntaxError(at(l, elements, 0), "expected ':parameters'")
	} else if len(elements) < 2 || elements[1].AsList() == nil {
		return p.syntaxError(at(l, elements, 1), "expected parameter list")
	}
	//
	groups, err := p.parseTypedList(elements[1].AsList().Elements, true, true)
	if err != nil {
		return err
	}
	//
	action.Params = flattenTypedList(groups)
	// Remaining sections are keyword / expression pairs.
	for i := 2; i < len(elements); i += 2 {
		sym := elements[i].AsSymbol()
		if sym == nil {
			return p.syntaxError(elements[i], "expected action keyword")
		} else if i+1 >= len(elements) {
			return p.syntaxError(elements[i], "expected expression")
		}
		//
		expr, err := p.parseExpression(elements[i+1])
		if err != nil {
			return err
		}
		//
		switch {
		case !durative && strings.EqualFold(sym.Value, ":precondition"):
			action.Precondition = expr
		case durative && strings.EqualFold(sym.Value, ":condition"):
			action.Precondition = expr
		case durative && strings.EqualFold(sym.Value, ":duration"):
			action.Duration = expr
		case strings.EqualFold(sym.Value, ":effect"):
			action.Effect = expr
		case strings.EqualFold(sym.Value, ":cond-breakup"):
			action.CondBreakup = expr
		case strings.EqualFold(sym.Value, ":temp-breakup"):
			action.TempBreakup = expr
		default:
			return p.syntaxError(elements[i], "expected action keyword")
		}
	}
	// Durative actions hard-require their temporal sections.
	if durative {
		switch {
		case !action.Duration.IsPresent():
			return p.syntaxError(l, "expected ':duration'")
		case !action.Precondition.IsPresent():
			return p.syntaxError(l, "expected ':condition'")
		case !action.Effect.IsPresent():
			return p.syntaxError(l, "expected ':effect'")
		}
	}
	// Plain actions are validated against the domain; durative conditions
	// carry temporal qualifiers the predicate walker does not interpret.
	if !durative {
		if err := p.actionSemantics(&action, l, domain); err != nil {
			return err
		}
	}
	//
	domain.Actions = append(domain.Actions, action)
	//
	return nil
}

// Select the ith element if it exists, otherwise fall back on the enclosing
// list.  This keeps expectation errors pointing as close to the failure as
// the input allows.
func at(l *sexp.List, elements []sexp.SExp, i int) sexp.SExp {
	if i < len(elements) {
		return elements[i]
	}
	//
	return l
}

func isKeyword(s sexp.SExp, keyword string) bool {
	sym := s.AsSymbol()
	return sym != nil && strings.EqualFold(sym.Value, keyword)
}

// ===================================================================
// Typed lists
// ===================================================================

// typedGroup is one group of a typed list: a run of names optionally followed
// by "- <type>" or "- (either <type>+)".
type typedGroup struct {
	// Names of this group, stored without any leading '?'.
	names []string
	// S-expressions of the names, aligned with names.
	nameNodes []sexp.SExp
	// Type variants of this group.  Empty means the group is untyped; more
	// than one arises from an "either" annotation.
	types []string
	// S-expression of the type annotation, or nil if untyped.
	typeNode sexp.SExp
}

// node returns the best S-expression to report errors for this group against.
func (g *typedGroup) node() sexp.SExp {
	if g.typeNode != nil {
		return g.typeNode
	}
	//
	return g.nameNodes[0]
}

// expand this group into one TypedNames per type variant.
func (g *typedGroup) expand() []ast.TypedNames {
	if len(g.types) == 0 {
		return []ast.TypedNames{{Names: g.names}}
	}
	//
	groups := make([]ast.TypedNames, len(g.types))
	//
	for i, t := range g.types {
		groups[i] = ast.TypedNames{Names: g.names, Type: t}
	}
	//
	return groups
}

// Parse a flat typed list into its groups.  When variables is set, every item
// must be a variable reference (whose '?' is stripped); otherwise every item
// must be a plain name.  When allowEither is set, a type annotation may be of
// the form "(either t1 t2)".
func (p *parser) parseTypedList(elements []sexp.SExp, variables bool, allowEither bool) ([]typedGroup, *Error) {
	var (
		groups  []typedGroup
		current typedGroup
	)
	//
	for i := 0; i < len(elements); i++ {
		sym := elements[i].AsSymbol()
		// Check for a type annotation
		if sym != nil && sym.Value == "-" {
			if len(current.names) == 0 {
				return nil, p.syntaxError(elements[i], "expected name before '-'")
			} else if i+1 == len(elements) {
				return nil, p.syntaxError(elements[i], "expected type name")
			}
			//
			types, err := p.parseTypeAnnotation(elements[i+1], allowEither)
			if err != nil {
				return nil, err
			}
			//
			current.types = types
			current.typeNode = elements[i+1]
			groups = append(groups, current)
			current = typedGroup{}
			i++
			//
			continue
		}
		// Otherwise, a name or variable
		switch {
		case sym == nil:
			return nil, p.syntaxError(elements[i], "expected name")
		case variables && !isVariable(sym.Value):
			return nil, p.syntaxError(elements[i], "expected variable")
		case variables:
			current.names = append(current.names, sym.Value[1:])
		case !isName(sym.Value):
			return nil, p.syntaxError(elements[i], "expected name")
		default:
			current.names = append(current.names, sym.Value)
		}
		//
		current.nameNodes = append(current.nameNodes, elements[i])
	}
	// Trailing group without annotation is untyped
	if len(current.names) != 0 {
		groups = append(groups, current)
	}
	//
	return groups, nil
}

// Parse the type annotation following a '-' separator: either a single type
// name, or an "(either t1 t2)" combination.
func (p *parser) parseTypeAnnotation(s sexp.SExp, allowEither bool) ([]string, *Error) {
	if sym := s.AsSymbol(); sym != nil {
		if !isName(sym.Value) {
			return nil, p.syntaxError(s, "expected type name")
		}
		//
		return []string{sym.Value}, nil
	}
	//
	l := s.AsList()
	//
	if l == nil || !allowEither || !l.MatchSymbols(1, "either") || l.Len() < 2 {
		return nil, p.syntaxError(s, "expected type name")
	}
	//
	types := make([]string, l.Len()-1)
	//
	for i, e := range l.Elements[1:] {
		sym := e.AsSymbol()
		if sym == nil || !isName(sym.Value) {
			return nil, p.syntaxError(e, "expected type name")
		}
		//
		types[i] = sym.Value
	}
	//
	return types, nil
}

// flattenTypedList emits one (name, type) pair for every name of every group,
// crossed with every type variant of its group.  Thus "a b c - (either t1
// t2)" yields six pairs.
func flattenTypedList(groups []typedGroup) []ast.TypedName {
	var out []ast.TypedName
	//
	for _, g := range groups {
		if len(g.types) == 0 {
			for _, n := range g.names {
				out = append(out, ast.TypedName{Name: n})
			}
		} else {
			for _, t := range g.types {
				for _, n := range g.names {
					out = append(out, ast.TypedName{Name: n, Type: t})
				}
			}
		}
	}
	//
	return out
}

// ===================================================================
// Problem
// ===================================================================

func (p *parser) parseProblem(s sexp.SExp) (ast.Problem, *Error) {
	var problem ast.Problem
	//
	l := s.AsList()
	if l == nil || !l.MatchSymbols(1, "define") {
		return problem, p.syntaxError(s, "expected '(define ...)'")
	} else if l.Len() < 2 {
		return problem, p.syntaxError(s, "expected '(problem <name>)'")
	}
	// Problem name
	name, err := p.parseNamedHead(l.Get(1), "problem")
	if err != nil {
		return problem, err
	}
	//
	problem.Name = name
	elements := l.Elements[2:]
	// Hard-expect the domain reference
	if len(elements) == 0 || !matchSection(elements[0], ":domain") {
		return problem, p.syntaxError(at(l, elements, 0), "expected ':domain' declaration")
	}
	//
	dl := elements[0].AsList()
	if dl.Len() != 2 || dl.Get(1).AsSymbol() == nil || !isName(dl.Get(1).AsSymbol().Value) {
		return problem, p.syntaxError(elements[0], "expected domain name")
	}
	//
	problem.DomainName = dl.Get(1).AsSymbol().Value
	index := 1
	// Optional objects
	for index < len(elements) && matchSection(elements[index], ":objects") {
		ol := elements[index].AsList()
		//
		groups, err := p.parseTypedList(ol.Elements[1:], false, true)
		if err != nil {
			return problem, err
		}
		//
		for _, group := range groups {
			for _, g := range group.expand() {
				problem.Objects = append(problem.Objects, g)
				p.objectNodes = append(p.objectNodes, group.node())
			}
		}
		//
		index++
	}
	// Hard-expect the initial state
	if index >= len(elements) || !matchSection(elements[index], ":init") {
		return problem, p.syntaxError(at(l, elements, index), "expected ':init' section")
	}
	//
	for _, e := range elements[index].AsList().Elements[1:] {
		expr, err := p.parseExpression(e)
		if err != nil {
			return problem, err
		}
		//
		problem.Init = append(problem.Init, expr)
	}
	//
	index++
	// Hard-expect the goal
	if index >= len(elements) || !matchSection(elements[index], ":goal") {
		return problem, p.syntaxError(at(l, elements, index), "expected ':goal' section")
	}
	//
	gl := elements[index].AsList()
	if gl.Len() != 2 {
		return problem, p.syntaxError(elements[index], "expected goal expression")
	}
	//
	goal, err := p.parseExpression(gl.Get(1))
	if err != nil {
		return problem, err
	}
	//
	problem.Goal = goal
	index++
	// Nothing may follow the goal
	if index != len(elements) {
		return problem, p.syntaxError(elements[index], "expected end of problem")
	}
	//
	return problem, nil
}

// Check whether a given S-expression is a list opening with a given section
// keyword.
func matchSection(s sexp.SExp, keyword string) bool {
	l := s.AsList()
	return l != nil && l.MatchSymbols(1, keyword)
}

func parseProblemSource(srcfile *source.File) (ast.Problem, *parser, *Error) {
	var problem ast.Problem
	// Parse text into an S-expression
	term, srcmap, serr := sexp.Parse(srcfile)
	//
	if serr != nil {
		return problem, nil, liftSyntaxError(serr)
	}
	// Translate S-expression into a problem
	p := newParser(srcfile, srcmap)
	//
	problem, err := p.parseProblem(term)
	//
	return problem, p, err
}

// ===================================================================
// Expressions
// ===================================================================

// Parse an expression, classifying it according to its leading token.
func (p *parser) parseExpression(s sexp.SExp) (ast.Expression, *Error) {
	var empty ast.Expression
	// Leaf expressions are numeric literals, variable references and names.
	if sym := s.AsSymbol(); sym != nil {
		var kind ast.ExpressionType
		//
		switch {
		case isNumber(sym.Value):
			kind = ast.ExprValue
		case isVariable(sym.Value) || isName(sym.Value):
			kind = ast.ExprAtom
		default:
			return empty, p.syntaxError(s, "expected expression")
		}
		//
		atom := ast.NewAtom(sym.Value)
		p.mapTerm(atom, s)
		//
		return ast.Expression{Kind: kind, Term: atom}, nil
	}
	// Everything else is a parenthesised form.
	l := s.AsList()
	if l.Len() == 0 {
		return empty, p.syntaxError(s, "expected expression")
	}
	//
	head := l.Get(0).AsSymbol()
	if head == nil {
		return empty, p.syntaxError(l.Get(0), "expected operator or predicate name")
	}
	//
	kind := classifyExpression(head.Value)
	//
	switch kind {
	case ast.ExprQuantified:
		return p.parseQuantified(l)
	case ast.ExprUnknown:
		return empty, p.syntaxError(l.Get(0), "expected operator or predicate name")
	}
	//
	predicate := &ast.Predicate{Function: head.Value}
	//
	for _, e := range l.Elements[1:] {
		arg, err := p.parseExpression(e)
		if err != nil {
			return empty, err
		}
		//
		predicate.Arguments = append(predicate.Arguments, arg)
	}
	// Register against the leading token, so that (for example) an unknown
	// predicate is reported at the position of its name.
	p.mapTerm(predicate, l.Get(0))
	//
	return ast.Expression{Kind: kind, Term: predicate}, nil
}

// Classify an expression according to its leading token.  Keywords are
// case-insensitive; any other valid name is a predicate application.
func classifyExpression(head string) ast.ExpressionType {
	switch strings.ToLower(head) {
	case "and", "or", "not", "imply":
		return ast.ExprBool
	case "=", "<", ">", "<=", ">=":
		return ast.ExprNumericComp
	case "+", "-", "*", "/":
		return ast.ExprNumeric
	case "increase", "decrease", "assign":
		return ast.ExprNumericChange
	case "when":
		return ast.ExprCondEffect
	case "forall", "exists":
		return ast.ExprQuantified
	default:
		if isName(head) {
			return ast.ExprPredicate
		}
		//
		return ast.ExprUnknown
	}
}

// Parse a quantified formula "(forall (?x - t) expr)".
func (p *parser) parseQuantified(l *sexp.List) (ast.Expression, *Error) {
	var empty ast.Expression
	//
	if l.Len() != 3 {
		return empty, p.syntaxError(l, "expected quantified formula")
	} else if l.Get(1).AsList() == nil {
		return empty, p.syntaxError(l.Get(1), "expected variable list")
	}
	//
	groups, err := p.parseTypedList(l.Get(1).AsList().Elements, true, true)
	if err != nil {
		return empty, err
	}
	//
	args := flattenTypedList(groups)
	if len(args) == 0 {
		return empty, p.syntaxError(l.Get(1), "expected variable list")
	}
	//
	sub, err := p.parseExpression(l.Get(2))
	if err != nil {
		return empty, err
	}
	//
	formula := &ast.QuantifiedFormula{
		Quantifier: strings.ToLower(l.Get(0).AsSymbol().Value),
		Args:       args,
		SubExpr:    sub,
	}
	//
	p.mapTerm(formula, l)
	//
	return ast.Expression{Kind: ast.ExprQuantified, Term: formula}, nil
}
