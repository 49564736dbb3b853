package domain

import "fmt"

// Validation messages shared by every request surface. The wording is part
// of the client contract.
const (
	MissingFieldText   = "Missing required field: text"
	MissingFieldTarget = "Missing required field: target_language"
)

// Request is a single translation request as accepted by every surface
// (HTTP, envelope, pub/sub). TargetCode is required by the surfaces;
// SourceCode is optional and empty means "detect from the text".
type Request struct {
	Text       string
	TargetCode string
	SourceCode string
}

// Result is the outcome of a completed translation. SourceCode and
// TargetCode are the client-facing codes actually used, after any
// substitution of unsupported codes.
type Result struct {
	TranslatedText string `json:"translated_text"`
	SourceCode     string `json:"source_language"`
	TargetCode     string `json:"target_language"`
}

// FailureKind classifies translation pipeline failures.
type FailureKind string

const (
	// FailureValidation marks a structurally invalid request, e.g. a
	// missing required field. The only kind that maps to a client error.
	FailureValidation FailureKind = "validation"
	// FailureTranslation marks a generation call that errored.
	FailureTranslation FailureKind = "translation"
	// FailureUnexpected marks anything else, including recovered panics.
	FailureUnexpected FailureKind = "unexpected"
)

// Failure is a classified pipeline error. It carries the language codes
// that were already resolved when the error occurred, so surfaces can
// report them alongside the message.
type Failure struct {
	Kind       FailureKind
	Message    string
	SourceCode string
	TargetCode string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewValidationFailure builds a validation failure. No language codes are
// attached because validation runs before language resolution.
func NewValidationFailure(message string) *Failure {
	return &Failure{Kind: FailureValidation, Message: message}
}

// NewTranslationFailure builds a generation failure with the codes
// resolved so far.
func NewTranslationFailure(message, sourceCode, targetCode string) *Failure {
	return &Failure{Kind: FailureTranslation, Message: message, SourceCode: sourceCode, TargetCode: targetCode}
}

// NewUnexpectedFailure builds a catch-all failure with the codes resolved
// so far.
func NewUnexpectedFailure(message, sourceCode, targetCode string) *Failure {
	return &Failure{Kind: FailureUnexpected, Message: message, SourceCode: sourceCode, TargetCode: targetCode}
}
