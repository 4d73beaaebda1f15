package app

import "erp-dashboard/internal/core"

// LoginRequest is the input for Authenticate.
type LoginRequest struct {
	Email    string
	Password string
}

// SaveProfileRequest is the input for SaveProfile. Email identifies the
// logged-in user whose profile is written.
type SaveProfileRequest struct {
	Email  string
	Fields core.Fields
}

// ExportRequest is the input for Export.
type ExportRequest struct {
	Collection string
	Filter     core.Filter
}
