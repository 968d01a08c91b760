// Package triage implements the support-email triage service.
//
// The service layer owns business logic only: it runs the classification
// pipeline, persists results through the Repository interface defined in
// repository.go, and merges externally tracked status. It never imports
// net/http or database/sql directly.
package triage
