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

	"github.com/fawkesrobotics/go-pddl/pkg/util/source"
)

// ErrorKind distinguishes the classes of error the parser can report.
type ErrorKind int

const (
	// SyntaxError indicates a grammar expectation failed, or input remained
	// unconsumed.
	SyntaxError ErrorKind = iota
	// TypeError indicates an unknown type, a missing required type, or a
	// type-conformance failure.
	TypeError
	// PredicateError indicates an unknown predicate name, an arity mismatch,
	// or a nested predicate in argument position.
	PredicateError
	// ConstantError indicates a referenced constant is not declared.
	ConstantError
	// ParameterError indicates a variable reference which resolves neither to
	// an action parameter nor to a bound quantifier variable.
	ParameterError
	// ExpressionError indicates a bare atom where a compound expression is
	// required.
	ExpressionError
	// ParserError indicates the grammar did not match but threw no structured
	// error.
	ParserError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "Syntax Error"
	case TypeError:
		return "Type Error"
	case PredicateError:
		return "Predicate Error"
	case ConstantError:
		return "Constant Error"
	case ParameterError:
		return "Parameter Error"
	case ExpressionError:
		return "Expression Error"
	default:
		return "Parser Error"
	}
}

// Error is a structured parse error carrying its kind, a message and the span
// of the original text on which it is reported.  Line and column numbers are
// derived lazily from the span.
type Error struct {
	// Kind of this error.
	kind ErrorKind
	// Enclosing source file.
	srcfile *source.File
	// Span of the original text on which this error is reported.
	span source.Span
	// Message being reported.
	msg string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ error = (*Error)(nil)

// NewError constructs a new error of a given kind over a given span.
func NewError(kind ErrorKind, srcfile *source.File, span source.Span, msg string) *Error {
	return &Error{kind, srcfile, span, msg}
}

// Kind returns the kind of this error.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Message returns the message being reported.
func (e *Error) Message() string {
	return e.msg
}

// SourceFile returns the underlying source file on which this error arose.
func (e *Error) SourceFile() *source.File {
	return e.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (e *Error) Span() source.Span {
	return e.span
}

// LineColumn determines the line and column numbers (both counting from 1) at
// which this error arose.
func (e *Error) LineColumn() (int, int) {
	return e.srcfile.LineColumn(e.span.Start())
}

// Context renders the offending source line with a caret indicating the
// position at which parsing halted:
//
//	 line:<L>, col:<C>
//	<offending-source-line>
//	<spaces>^ --- parsing halted here
func (e *Error) Context() string {
	var (
		builder   strings.Builder
		enclosing = e.srcfile.FindFirstEnclosingLine(e.span)
		line, col = e.LineColumn()
	)
	//
	fmt.Fprintf(&builder, " line:%d, col:%d\n", line, col)
	builder.WriteString(enclosing.String())
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat(" ", col-1))
	builder.WriteString("^ --- parsing halted here\n")
	//
	return builder.String()
}

// Error implements the error interface.  Syntax errors render under a
// "Syntax Error" heading and every semantic kind under a unified "Semantic
// Error" heading, followed by the error context; the precise kind remains
// available through Kind.
func (e *Error) Error() string {
	switch e.kind {
	case SyntaxError, ParserError:
		return fmt.Sprintf("%s: %s\n%s", e.kind, e.msg, e.Context())
	default:
		return fmt.Sprintf("Semantic Error: %s\n%s", e.msg, e.Context())
	}
}
