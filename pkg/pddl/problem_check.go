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
	"github.com/fawkesrobotics/go-pddl/pkg/pddl/ast"
	"github.com/fawkesrobotics/go-pddl/pkg/util/source"
)

// ParseProblemWithDomain parses a complete PDDL problem and additionally
// resolves it against a previously parsed domain: object types must be
// declared, and every predicate applied by the initial state or the goal must
// be declared at a matching arity over resolvable, type-conformant
// arguments.  Plain ParseProblem performs none of these checks.
func ParseProblemWithDomain(srcfile *source.File, domain *ast.Domain) (ast.Problem, []string, error) {
	problem, p, err := parseProblemSource(srcfile)
	if err != nil {
		return problem, nil, err
	}
	//
	if err := p.validateProblem(&problem, domain); err != nil {
		return problem, nil, err
	}
	//
	return problem, p.warnings, nil
}

// validateProblem cross-checks a parsed problem against its domain.  The
// problem's objects act as additional constants during resolution.
func (p *parser) validateProblem(problem *ast.Problem, domain *ast.Domain) *Error {
	// Object declarations obey the same typing discipline as constants.
	for i, group := range problem.Objects {
		if err := p.constantSemantics(group, p.objectNodes[i], domain); err != nil {
			return err
		}
	}
	// Resolve init and goal against a domain scope extended by the objects.
	scoped := *domain
	scoped.Constants = append(append([]ast.TypedNames{}, domain.Constants...), problem.Objects...)
	// Ground facts and goals have no action parameters to resolve against.
	ghost := ast.Action{}
	//
	for _, init := range problem.Init {
		var boundVars []ast.TypedName
		//
		if err := p.checkActionCondition(init, &scoped, &ghost, &boundVars); err != nil {
			return err
		}
	}
	//
	var boundVars []ast.TypedName
	//
	return p.checkActionCondition(problem.Goal, &scoped, &ghost, &boundVars)
}
