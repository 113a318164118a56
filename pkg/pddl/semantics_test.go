package pddl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Typing requirement
// ============================================================================

func TestSemantics_MissingType(t *testing.T) {
	// Typing enabled, but a constant declared without a type.
	checkDomainError(t, TypeError, "Missing type.",
		"(define (domain d) (:requirements :typing) (:types thing) (:constants a))")
}

func TestSemantics_UnexpectedType(t *testing.T) {
	// Typing disabled, but a constant declared with a type.
	checkDomainError(t, TypeError, "Requirement typing disabled, unexpected type found.",
		"(define (domain d) (:constants a - thing))")
}

func TestSemantics_UnexpectedParameterType(t *testing.T) {
	checkDomainError(t, TypeError, "Requirement typing disabled, unexpected type found.",
		"(define (domain d) (:predicates (p ?x - thing)))")
}

func TestSemantics_AdlEnablesTyping(t *testing.T) {
	_, _, err := ParseDomain(
		"(define (domain d) (:requirements :adl) (:types thing) (:constants a - thing))")
	assert.NoError(t, err)
}

func TestSemantics_UcpopEnablesTyping(t *testing.T) {
	_, _, err := ParseDomain(
		"(define (domain d) (:requirements :ucpop) (:types thing) (:constants a - thing))")
	assert.NoError(t, err)
}

func TestSemantics_TypingFlagCaseSensitive(t *testing.T) {
	// Requirement-flag resolution is case-sensitive, so :TYPING does not
	// enable typing.
	checkDomainError(t, TypeError, "Requirement typing disabled, unexpected type found.",
		"(define (domain d) (:requirements :TYPING) (:types thing) (:constants a - thing))")
}

func TestSemantics_UnknownConstantType(t *testing.T) {
	checkDomainError(t, TypeError, "Unknown type: sock",
		"(define (domain d) (:requirements :typing) (:types thing) (:constants a - sock))")
}

func TestSemantics_UnknownParameterType(t *testing.T) {
	checkDomainError(t, TypeError, "Unknown type: x - sock",
		"(define (domain d) (:requirements :typing) (:types thing) "+
			"(:action a :parameters (?x - sock)))")
}

func TestSemantics_SupertypeIsKnown(t *testing.T) {
	// A supertype need not be declared on its own to be referenced.
	_, _, err := ParseDomain(
		"(define (domain d) (:requirements :typing) (:types block - thing) "+
			"(:constants a - thing))")
	assert.NoError(t, err)
}

// ============================================================================
// Action conditions
// ============================================================================

func TestSemantics_UnknownPredicate(t *testing.T) {
	err := checkDomainError(t, PredicateError, "Unknown predicate: q",
		"(define (domain d)\n"+
			"  (:predicates (p ?x))\n"+
			"  (:action a\n"+
			"    :parameters (?x)\n"+
			"    :precondition (q ?x)))")
	// The error points at the offending predicate name.
	line, col := err.LineColumn()
	assert.Equal(t, 5, line)
	assert.Equal(t, 20, col)
}

func TestSemantics_ArityMismatch(t *testing.T) {
	checkDomainError(t, PredicateError, "Predicate argument length mismatch, expected 2 but got 1",
		"(define (domain d) (:predicates (p ?x ?y)) "+
			"(:action a :parameters (?x) :precondition (p ?x)))")
}

func TestSemantics_NestedPredicate(t *testing.T) {
	checkDomainError(t, PredicateError, "Unexpected nested predicate.",
		"(define (domain d) (:predicates (p ?x) (q)) "+
			"(:action a :parameters (?x) :precondition (p (q))))")
}

func TestSemantics_BareAtomCondition(t *testing.T) {
	checkDomainError(t, ExpressionError, "Unexpected Atom in expression: foo",
		"(define (domain d) (:predicates (p)) "+
			"(:action a :parameters () :precondition foo))")
}

func TestSemantics_BareAtomInConnective(t *testing.T) {
	checkDomainError(t, ExpressionError, "Unexpected Atom in expression: ?x",
		"(define (domain d) (:predicates (p)) "+
			"(:action a :parameters (?x) :precondition (and ?x)))")
}

func TestSemantics_UnknownParameter(t *testing.T) {
	checkDomainError(t, ParameterError, "Unknown Parameter ?z",
		"(define (domain d) (:predicates (p ?x)) "+
			"(:action a :parameters (?x) :precondition (p ?z)))")
}

func TestSemantics_UnknownConstant(t *testing.T) {
	checkDomainError(t, ConstantError, "Unknown constant b",
		"(define (domain d) (:predicates (p ?x)) "+
			"(:action a :parameters () :precondition (p b)))")
}

func TestSemantics_TypeMismatch(t *testing.T) {
	checkDomainError(t, TypeError, "Type mismatch: Argument 0 of p expects thing but got other",
		"(define (domain d) (:requirements :typing) (:types thing other) "+
			"(:predicates (p ?x - thing)) (:constants b - other) "+
			"(:action a :parameters () :precondition (p b)))")
}

func TestSemantics_VariableTypeMismatch(t *testing.T) {
	checkDomainError(t, TypeError, "Type mismatch: Argument 0 of p expects thing but got other",
		"(define (domain d) (:requirements :typing) (:types thing other) "+
			"(:predicates (p ?x - thing)) "+
			"(:action a :parameters (?y - other) :precondition (p ?y)))")
}

func TestSemantics_SubtypeConforms(t *testing.T) {
	_, _, err := ParseDomain(
		"(define (domain d) (:requirements :typing) (:types block - thing thing) "+
			"(:predicates (p ?x - thing)) (:constants c - block) "+
			"(:action a :parameters () :precondition (p c)))")
	assert.NoError(t, err)
}

func TestSemantics_TransitiveSubtypeConforms(t *testing.T) {
	_, _, err := ParseDomain(
		"(define (domain d) (:requirements :typing) "+
			"(:types cube - block block - thing thing) "+
			"(:predicates (p ?x - thing)) "+
			"(:action a :parameters (?c - cube) :precondition (p ?c)))")
	assert.NoError(t, err)
}

func TestSemantics_ParameterShadowsConstant(t *testing.T) {
	// Parameter lookup wins over the constant of the same name.
	_, _, err := ParseDomain(
		"(define (domain d) (:requirements :typing) (:types thing) "+
			"(:constants a - thing) (:predicates (p ?x - thing)) "+
			"(:action act :parameters (?a - thing) :precondition (p ?a)))")
	assert.NoError(t, err)
}

func TestSemantics_QuantifierBindingWins(t *testing.T) {
	// Bound quantifier variables are looked up before action parameters.
	_, _, err := ParseDomain(
		"(define (domain d) (:requirements :typing) (:types thing other) "+
			"(:predicates (p ?x - thing)) "+
			"(:action a :parameters (?y - other) "+
			":precondition (forall (?y - thing) (p ?y))))")
	assert.NoError(t, err)
}

func TestSemantics_EffectChecked(t *testing.T) {
	checkDomainError(t, PredicateError, "Unknown predicate: q",
		"(define (domain d) (:predicates (p ?x)) "+
			"(:action a :parameters (?x) :precondition (p ?x) :effect (q ?x)))")
}

func TestSemantics_NumericFormsUnchecked(t *testing.T) {
	// Numeric comparisons and changes are not predicate-checked.
	_, _, err := ParseDomain(
		"(define (domain d) (:predicates (p ?x)) (:functions (f ?x)) "+
			"(:action a :parameters (?x) "+
			":precondition (and (p ?x) (< (f ?x) 10)) "+
			":effect (increase (f ?x) 1)))")
	assert.NoError(t, err)
}

func TestSemantics_DurativeActionUnchecked(t *testing.T) {
	// Durative conditions carry temporal qualifiers which the predicate
	// walker does not interpret, hence it does not run at all.
	_, _, err := ParseDomain(
		"(define (domain d) (:predicates (p ?x)) "+
			"(:durative-action m :parameters (?x) "+
			":duration (= ?duration 1) "+
			":condition (at start (undeclared ?x)) "+
			":effect (at end (p ?x))))")
	assert.NoError(t, err)
}

func TestSemantics_AmbiguousRetainsBoth(t *testing.T) {
	domain, warnings, err := ParseDomain(
		"(define (domain d) (:requirements :typing) (:types thing object) "+
			"(:constants a - thing) (:constants a - object))")
	require.NoError(t, err)
	// Both declarations are retained.
	assert.Len(t, domain.Constants, 2)
	assert.Len(t, warnings, 1)
}

func TestSemantics_WarningsDiscardedOnError(t *testing.T) {
	// The ambiguity warning precedes the error, yet must not survive it.
	_, warnings, err := ParseDomain(
		"(define (domain d) (:requirements :typing) (:types thing object) "+
			"(:constants a - thing) (:constants a - object) "+
			"(:predicates (p ?x - thing)) "+
			"(:action act :parameters () :precondition (q)))")
	assert.Error(t, err)
	assert.Empty(t, warnings)
}

// ============================================================================
// Error rendering
// ============================================================================

func TestErrorContext(t *testing.T) {
	input := "(define (domain d)\n" +
		"  (:predicates (p ?x))\n" +
		"  (:action a\n" +
		"    :parameters (?x)\n" +
		"    :precondition (q ?x)))"
	//
	_, _, err := ParseDomain(input)
	require.Error(t, err)
	//
	perr := err.(*Error)
	expected := " line:5, col:20\n" +
		"    :precondition (q ?x)))\n" +
		"                   ^ --- parsing halted here\n"
	//
	assert.Equal(t, expected, perr.Context())
	assert.Contains(t, perr.Error(), "Semantic Error: Unknown predicate: q")
}

func TestErrorContext_Tabs(t *testing.T) {
	// Tabs are replaced by single spaces so the caret aligns.
	input := "(define (domain d)\n\t(:predicates (p ?x))\n\t(:action a :parameters () :precondition (q)))"
	//
	_, _, err := ParseDomain(input)
	require.Error(t, err)
	//
	context := err.(*Error).Context()
	assert.NotContains(t, context, "\t")
	assert.Contains(t, context, "^ --- parsing halted here")
}

// ============================================================================
// Helpers
// ============================================================================

func checkDomainError(t *testing.T, kind ErrorKind, msg string, input string) *Error {
	_, _, err := ParseDomain(input)
	require.Error(t, err, "parsing %q should have failed", input)
	//
	perr, ok := err.(*Error)
	require.True(t, ok, "expected a structured error, got %v", err)
	//
	assert.Equal(t, kind, perr.Kind())
	//
	if !strings.HasPrefix(perr.Message(), msg) {
		t.Errorf("expected message %q, got %q", msg, perr.Message())
	}
	//
	return perr
}
