// Package lambda wraps the AWS Lambda control-plane API.
//
// Lookups distinguish "not found" from every other failure so that callers
// never mistake a failed query for a missing function.
package lambda
