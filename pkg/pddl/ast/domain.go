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
package ast

import (
	"strings"
)

// PredicateDecl declares a predicate along with the types of its arguments.
// The declared arity is simply the number of parameters.
type PredicateDecl struct {
	// Name of the predicate.
	Name string
	// Params is the typed list of predicate arguments.
	Params []TypedName
}

func (p PredicateDecl) String() string {
	if len(p.Params) == 0 {
		return "(" + p.Name + ")"
	}

	return "(" + p.Name + " " + FormatTypedVariables(p.Params) + ")"
}

// Function declares a numeric function along with its object parameters.
type Function struct {
	// Name of the function.
	Name string
	// Params is the typed list of object parameters.
	Params []TypedName
}

func (f Function) String() string {
	if len(f.Params) == 0 {
		return "(" + f.Name + ")"
	}

	return "(" + f.Name + " " + FormatTypedVariables(f.Params) + ")"
}

// Action is a PDDL action schema.  Durative actions are represented with the
// same shape, distinguished by the presence of a duration; their ":condition"
// lands in the Precondition field.
type Action struct {
	// Name of the action.
	Name string
	// Params is the typed list of action parameters.
	Params []TypedName
	// Duration of the action in temporal domains.
	Duration Expression
	// Precondition of the action.  May be a compound.
	Precondition Expression
	// Effect of the action.  May be a compound.
	Effect Expression
	// CondBreakup is used by the STN generator to determine conditional break
	// points in the STN.
	CondBreakup Expression
	// TempBreakup is used by the STN generator to determine temporal break
	// points in the STN.
	TempBreakup Expression
}

// Durative reports whether this is a durative action schema.
func (a *Action) Durative() bool {
	return a.Duration.IsPresent()
}

func (a Action) String() string {
	var s strings.Builder
	//
	if a.Durative() {
		s.WriteString("(:durative-action ")
	} else {
		s.WriteString("(:action ")
	}
	//
	s.WriteString(a.Name)
	s.WriteString("\n  :parameters (")
	s.WriteString(FormatTypedVariables(a.Params))
	s.WriteString(")")
	//
	if a.Durative() {
		s.WriteString("\n  :duration ")
		s.WriteString(a.Duration.String())
		//
		if a.Precondition.IsPresent() {
			s.WriteString("\n  :condition ")
			s.WriteString(a.Precondition.String())
		}
	} else if a.Precondition.IsPresent() {
		s.WriteString("\n  :precondition ")
		s.WriteString(a.Precondition.String())
	}
	//
	if a.Effect.IsPresent() {
		s.WriteString("\n  :effect ")
		s.WriteString(a.Effect.String())
	}
	//
	if a.CondBreakup.IsPresent() {
		s.WriteString("\n  :cond-breakup ")
		s.WriteString(a.CondBreakup.String())
	}
	//
	if a.TempBreakup.IsPresent() {
		s.WriteString("\n  :temp-breakup ")
		s.WriteString(a.TempBreakup.String())
	}
	//
	s.WriteString(")")
	//
	return s.String()
}

// Domain is a structured representation of a PDDL domain.
type Domain struct {
	// Name of the domain.
	Name string
	// Requirements lists the PDDL features required by the domain, stored
	// without their leading ':'.
	Requirements []string
	// Types lists declared types along with their super types.
	Types []TypedName
	// Constants is the typed list of constants defined in the domain.
	Constants []TypedNames
	// Predicates declared in the domain, including the types of their
	// arguments.
	Predicates []PredicateDecl
	// Functions lists the numeric functions of the domain.
	Functions []Function
	// Actions defined in the domain.
	Actions []Action
}

func (d Domain) String() string {
	var s strings.Builder
	//
	s.WriteString("(define (domain ")
	s.WriteString(d.Name)
	s.WriteString(")")
	//
	if len(d.Requirements) != 0 {
		s.WriteString("\n (:requirements")
		//
		for _, r := range d.Requirements {
			s.WriteString(" :")
			s.WriteString(r)
		}
		//
		s.WriteString(")")
	}
	//
	if len(d.Types) != 0 {
		s.WriteString("\n (:types ")
		s.WriteString(FormatTypedNames(d.Types))
		s.WriteString(")")
	}
	//
	for _, c := range d.Constants {
		s.WriteString("\n (:constants ")
		s.WriteString(c.String())
		s.WriteString(")")
	}
	//
	if len(d.Predicates) != 0 {
		s.WriteString("\n (:predicates")
		//
		for _, p := range d.Predicates {
			s.WriteString(" ")
			s.WriteString(p.String())
		}
		//
		s.WriteString(")")
	}
	//
	if len(d.Functions) != 0 {
		s.WriteString("\n (:functions")
		//
		for _, f := range d.Functions {
			s.WriteString(" ")
			s.WriteString(f.String())
		}
		//
		s.WriteString(")")
	}
	//
	for _, a := range d.Actions {
		s.WriteString("\n ")
		s.WriteString(a.String())
	}
	//
	s.WriteString(")")
	//
	return s.String()
}

// Problem is a structured representation of a PDDL problem.
type Problem struct {
	// Name of the problem.
	Name string
	// DomainName names the domain this problem belongs to.
	DomainName string
	// Objects is the typed list of objects in the problem.
	Objects []TypedNames
	// Init lists the facts that are initially true.
	Init []Expression
	// Goal of the problem.
	Goal Expression
}

func (p Problem) String() string {
	var s strings.Builder
	//
	s.WriteString("(define (problem ")
	s.WriteString(p.Name)
	s.WriteString(")")
	s.WriteString("\n (:domain ")
	s.WriteString(p.DomainName)
	s.WriteString(")")
	//
	for _, o := range p.Objects {
		s.WriteString("\n (:objects ")
		s.WriteString(o.String())
		s.WriteString(")")
	}
	//
	s.WriteString("\n (:init")
	//
	for _, e := range p.Init {
		s.WriteString(" ")
		s.WriteString(e.String())
	}
	//
	s.WriteString(")")
	s.WriteString("\n (:goal ")
	s.WriteString(p.Goal.String())
	s.WriteString("))")
	//
	return s.String()
}
