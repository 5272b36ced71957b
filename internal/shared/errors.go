package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Generation errors
	ErrEmptyIdea        = fmt.Errorf("idea is empty")
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrInvalidBrief     = fmt.Errorf("invalid brief")
	ErrStreamFailed     = fmt.Errorf("generation stream failed")
	ErrStreamIncomplete = fmt.Errorf("generation stream ended without a result")
	ErrNoResult         = fmt.Errorf("no brief generated yet")

	// Export errors
	ErrClipboard    = fmt.Errorf("clipboard unavailable")
	ErrExportFailed = fmt.Errorf("export failed")

	// Persistence errors
	ErrBriefNotFound = fmt.Errorf("brief not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
