// Package config defines the deployment configuration used by every
// lambdeploy phase.
//
// A [Config] is assembled in three layers: an optional YAML file
// (lambdeploy.yaml), the environment injected by the CI runner, and CLI
// flags applied by the handlers. [Config.Validate] runs once at startup so
// that a misconfigured environment fails before any remote call is made.
package config
