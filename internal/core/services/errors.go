package services

import "errors"

// Task errors
var (
	ErrTaskNotFound  = errors.New("task: not found")
	ErrTaskEmptyText = errors.New("task: text is required")
)

// Filter errors
var (
	ErrInvalidClearFilter = errors.New("filter: must be \"completed\" or \"all\"")
)

// Import errors
var (
	ErrImportNotArray = errors.New("import: tasks must be an array")
	ErrImportInvalid  = errors.New("import: payload does not match schema")
)
