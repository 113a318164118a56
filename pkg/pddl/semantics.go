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
)

// Requirement flags which switch typing semantics on.  Observe that the
// comparison is case-sensitive.
var typingRequirements = []string{"typing", "adl", "ucpop"}

// typingRequired checks whether the domain's requirements enable typing.
func typingRequired(domain *ast.Domain) bool {
	for _, req := range domain.Requirements {
		for _, t := range typingRequirements {
			if req == t {
				return true
			}
		}
	}
	//
	return false
}

// checkTypeVsRequirement enforces that a type annotation is present exactly
// when typing is enabled.
func (p *parser) checkTypeVsRequirement(node sexp.SExp, typing bool, typ string) *Error {
	if typ == "" && typing {
		return p.errorAt(TypeError, node, "Missing type.")
	} else if typ != "" && !typing {
		return p.errorAt(TypeError, node, "Requirement typing disabled, unexpected type found.")
	}
	//
	return nil
}

// typeSemantics rejects a type annotation outright when typing is disabled.
func (p *parser) typeSemantics(node sexp.SExp, domain *ast.Domain) *Error {
	if !typingRequired(domain) {
		return p.errorAt(TypeError, node, "Requirement typing disabled, unexpected type found.")
	}
	//
	return nil
}

// knownType checks whether a given type occurs in the domain's type
// declarations, either as a subtype or as a supertype.
func knownType(domain *ast.Domain, typ string) bool {
	for _, t := range domain.Types {
		if t.Name == typ || t.Type == typ {
			return true
		}
	}
	//
	return false
}

// constantSemantics validates one constants group against the domain parsed
// so far.  A redeclaration of a constant under a different type is retained,
// but reported as a warning.
func (p *parser) constantSemantics(group ast.TypedNames, node sexp.SExp, domain *ast.Domain) *Error {
	typing := typingRequired(domain)
	//
	if typing && !knownType(domain, group.Type) {
		return p.errorAt(TypeError, node, "Unknown type: "+group.Type)
	}
	//
	if err := p.checkTypeVsRequirement(node, typing, group.Type); err != nil {
		return err
	}
	//
	for _, constant := range group.Names {
		for _, declared := range domain.Constants {
			if declared.Contains(constant) && group.Type != declared.Type {
				p.warnings = append(p.warnings,
					fmt.Sprintf("Ambiguous type: %s type %s and %s", constant, group.Type, declared.Type))
			}
		}
	}
	//
	return nil
}

// actionSemantics validates a parsed action against the domain: parameter
// types must be declared, and the precondition and effect must only apply
// declared predicates, at their declared arity, to resolvable and
// type-conformant arguments.
func (p *parser) actionSemantics(action *ast.Action, node sexp.SExp, domain *ast.Domain) *Error {
	typing := typingRequired(domain)
	//
	for _, param := range action.Params {
		if typing && !knownType(domain, param.Type) {
			return p.errorAt(TypeError, node, "Unknown type: "+param.Name+" - "+param.Type)
		}
		//
		if err := p.checkTypeVsRequirement(node, typing, param.Type); err != nil {
			return err
		}
	}
	// Predicate signature test.  Quantifier bindings accumulate for the
	// remainder of the action; they are never popped, hence sibling
	// subexpressions see earlier bindings.  Resolution finds the first match,
	// which keeps any shadowing harmless.
	var boundVars []ast.TypedName
	//
	if action.Precondition.IsPresent() {
		if err := p.checkActionCondition(action.Precondition, domain, action, &boundVars); err != nil {
			return err
		}
	}
	//
	if action.Effect.IsPresent() {
		if err := p.checkActionCondition(action.Effect, domain, action, &boundVars); err != nil {
			return err
		}
	}
	//
	return nil
}

// checkActionCondition walks a condition, recursing through connectives and
// quantifiers down to the predicate applications.
func (p *parser) checkActionCondition(expr ast.Expression, domain *ast.Domain, action *ast.Action,
	boundVars *[]ast.TypedName) *Error {
	//
	switch term := expr.Term.(type) {
	case *ast.Atom:
		// A condition must be compound.
		return p.termError(ExpressionError, term, "Unexpected Atom in expression: "+string(*term))
	case *ast.QuantifiedFormula:
		*boundVars = append(*boundVars, term.Args...)
		return p.checkActionCondition(term.SubExpr, domain, action, boundVars)
	case *ast.Predicate:
		switch expr.Kind {
		case ast.ExprBool:
			// Subformulae of connectives are themselves conditions.
			for _, sub := range term.Arguments {
				if err := p.checkActionCondition(sub, domain, action, boundVars); err != nil {
					return err
				}
			}
		case ast.ExprPredicate:
			return p.checkActionPredicate(term, domain, action, boundVars)
		}
		// Numeric forms and conditional effects carry no further checks here.
	}
	//
	return nil
}

// checkActionPredicate validates one predicate application: the predicate
// must be declared, the arity must match, and every argument must be an atom
// which resolves to a constant, an action parameter or a bound quantifier
// variable of a conformant type.
func (p *parser) checkActionPredicate(pred *ast.Predicate, domain *ast.Domain, action *ast.Action,
	boundVars *[]ast.TypedName) *Error {
	//
	typing := typingRequired(domain)
	// The predicate name must be declared ...
	declared := findPredicate(domain, pred.Function)
	if declared == nil {
		return p.termError(PredicateError, pred, "Unknown predicate: "+pred.Function)
	}
	// ... and the signature has to match.
	if len(declared.Params) != len(pred.Arguments) {
		return p.termError(PredicateError, pred,
			fmt.Sprintf("Predicate argument length mismatch, expected %d but got %d",
				len(declared.Params), len(pred.Arguments)))
	}
	//
	for i, arg := range pred.Arguments {
		atom, ok := arg.Term.(*ast.Atom)
		if !ok {
			return p.termError(PredicateError, pred, "Unexpected nested predicate.")
		}
		//
		var (
			name        = string(*atom)
			expected    = declared.Params[i].Type
			argType     string
			isTypeError bool
		)
		//
		if !strings.HasPrefix(name, "?") {
			// Constants need to be known.
			var (
				found   bool
				matched bool
				types   []string
			)
			//
			for _, group := range domain.Constants {
				if group.Contains(name) {
					found = true
					types = append(types, group.Type)
					//
					if checkType(group.Type, expected, domain) {
						matched = true
						break
					}
				}
			}
			//
			if !matched {
				isTypeError = true
				//
				if !found {
					return p.termError(ConstantError, atom, "Unknown constant "+name)
				}
			}
			//
			argType = strings.Join(types, " ")
		} else {
			// Variables resolve against quantifier bindings first, then the
			// action parameters.  In particular, a parameter shadowing a
			// constant name never reaches the constant lookup.
			variable := name[1:]
			entry := lookupVariable(*boundVars, variable)
			//
			if entry == nil {
				entry = lookupVariable(action.Params, variable)
			}
			//
			if entry == nil {
				return p.termError(ParameterError, atom, "Unknown Parameter ?"+variable)
			}
			//
			argType = entry.Type
			isTypeError = !checkType(argType, expected, domain)
		}
		// With typing enabled, the resolved type must conform.
		if typing && isTypeError {
			return p.termError(TypeError, atom,
				fmt.Sprintf("Type mismatch: Argument %d of %s expects %s but got %s",
					i, declared.Name, expected, argType))
		}
	}
	//
	return nil
}

// checkType determines whether a given type conforms to an expected type
// under the reflexive-transitive subtype relation of the domain.  The empty
// type, as arises in untyped contexts, matches anything.
func checkType(got string, expected string, domain *ast.Domain) bool {
	if got == "" {
		return true
	}
	//
	return conformsTo(got, expected, domain)
}

func conformsTo(got string, expected string, domain *ast.Domain) bool {
	if got == expected {
		return true
	}
	// Generalise to the supertype, if any.
	for _, t := range domain.Types {
		if t.Name == got {
			return conformsTo(t.Type, expected, domain)
		}
	}
	//
	return false
}

func findPredicate(domain *ast.Domain, name string) *ast.PredicateDecl {
	for i := range domain.Predicates {
		if domain.Predicates[i].Name == name {
			return &domain.Predicates[i]
		}
	}
	//
	return nil
}

func lookupVariable(entries []ast.TypedName, name string) *ast.TypedName {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i]
		}
	}
	//
	return nil
}
