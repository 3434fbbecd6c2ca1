package domain

import "errors"

// Lookups scoped to a tenant return these for both "missing" and "owned by
// another tenant" so the two cases cannot be told apart.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
)
