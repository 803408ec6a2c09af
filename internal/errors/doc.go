// Package errors defines the error types used throughout the SDK.
//
// Typed errors implement the OrchestratorError marker interface so callers
// can distinguish SDK errors from other failures. Sentinel errors cover the
// conditions callers commonly branch on with errors.Is.
package errors
