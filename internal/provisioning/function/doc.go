// Package function reconciles the remote side of a deploy.
//
// It ensures the artifact bucket exists, uploads the archive, then creates
// the function when it is absent or updates its code when it is present.
// Existence is looked up immediately before branching, and a failed lookup
// stops the run instead of being treated as absent.
package function
