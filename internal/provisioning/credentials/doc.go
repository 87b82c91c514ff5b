// Package credentials verifies that the injected credentials resolve to a
// caller identity before anything is built or changed.
package credentials
