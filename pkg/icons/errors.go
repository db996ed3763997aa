package icons

import (
	"fmt"

	"github.com/scrutinytools/devtools/pkg/logger"
)

var errorsLog = logger.New("icons:errors")

// GenerationError reports a failed generator invocation for one variant.
// The deployment halts on the first one; later variants are not attempted.
type GenerationError struct {
	Variant string
	Cause   error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	return fmt.Sprintf("icon generation failed for variant '%s': %v", e.Variant, e.Cause)
}

// Unwrap returns the underlying error
func (e *GenerationError) Unwrap() error { return e.Cause }

// NewGenerationError creates a generation error for a variant
func NewGenerationError(variant string, cause error) *GenerationError {
	errorsLog.Printf("Generation failed: variant=%s cause=%v", variant, cause)
	return &GenerationError{Variant: variant, Cause: cause}
}

// PublishError reports a failed publish step for one variant. Step names the
// filesystem operation that failed, "delete" or "move".
type PublishError struct {
	Variant string
	Step    string
	Cause   error
}

// Error implements the error interface
func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing variant '%s' failed during %s: %v", e.Variant, e.Step, e.Cause)
}

// Unwrap returns the underlying error
func (e *PublishError) Unwrap() error { return e.Cause }

// NewPublishError creates a publish error for a variant
func NewPublishError(variant, step string, cause error) *PublishError {
	errorsLog.Printf("Publish failed: variant=%s step=%s cause=%v", variant, step, cause)
	return &PublishError{Variant: variant, Step: step, Cause: cause}
}
