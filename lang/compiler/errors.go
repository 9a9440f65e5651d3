package compiler

import (
	"fmt"

	"github.com/nerinelang/nerine/lang/token"
)

// Error is the interface implemented by all compile errors.
type Error interface {
	error
	compileError()
}

// UndefinedNameError reports a reference to a name that no scope in the
// chain declares. Name resolution happens at lowering time, so this is
// the error an undefined identifier produces.
type UndefinedNameError struct {
	Name string
	Span token.Span
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("Compile error: undefined name '%s' at %s", e.Name, e.Span)
}
func (e *UndefinedNameError) compileError() {}

// UnsupportedFeatureError reports a construct the code generator refuses
// to lower.
type UnsupportedFeatureError struct {
	Feature string
	Span    token.Span
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("Compile error: unsupported feature: %s at %s", e.Feature, e.Span)
}
func (e *UnsupportedFeatureError) compileError() {}

// OptimizationFailedError reports a failed optimization pass. No pass in
// the current compiler produces it; it is part of the error surface for
// hosts that discriminate on error kinds.
type OptimizationFailedError struct {
	Reason string
}

func (e *OptimizationFailedError) Error() string {
	return fmt.Sprintf("Compile error: optimization failed: %s", e.Reason)
}
func (e *OptimizationFailedError) compileError() {}
