// Package provisioning provides shared types, interfaces, and orchestration for deployments.
//
// # Subpackages
//
//   - credentials/ — caller identity check
//   - packaging/ — source directory to zip artifact
//   - function/ — bucket, upload, and create-or-update of the function
//
// # Core Types
//
// Context carries configuration, state, platform clients, and the observer.
// Phase defines a deployment step with Name() and Provision() methods.
// State accumulates results from each phase (identity, artifact, bucket, function).
package provisioning
