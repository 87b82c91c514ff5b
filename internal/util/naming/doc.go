// Package naming provides consistent names for deployment resources.
//
// The artifact name is derived only from the function name, so re-running a
// deploy overwrites the same local file and the same S3 key.
package naming
