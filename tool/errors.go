package tool

import "fmt"

// Error codes attached to ToolError.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeExecution         = "EXECUTION_ERROR"
	CodePanic             = "PANIC"
	CodeTimeout           = "TIMEOUT"
	CodeCanceled          = "CANCELED"
	CodeCallLimitExceeded = "CALL_LIMIT_EXCEEDED"
)

// ToolError represents errors that occur during tool validation or execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// Unwrap exposes an underlying error stored in Details.
func (e *ToolError) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

// ValidationError reports input that does not satisfy a tool's schema.
type ValidationError struct {
	Tool   string `json:"tool"`
	Detail string `json:"detail"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input for tool %s: %s", e.Tool, e.Detail)
}

// NotFoundError signals that a model named a tool absent from the registry.
// It is the only invocation failure that propagates to the caller.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found in registry (available: %v)", e.Name, e.Available)
}
