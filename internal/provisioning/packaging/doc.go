// Package packaging builds the deployment archive from the source directory.
package packaging
