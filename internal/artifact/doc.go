// Package artifact builds the deployment archive for a function.
//
// [Build] zips a source directory so that its contents sit at the archive
// root, which is the layout Lambda expects for zip deployments. Any archive
// left at the target path by an earlier run is removed first.
package artifact
