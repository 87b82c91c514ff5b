package naming

import (
	"fmt"
	"path/filepath"
)

// ArchiveExt is the extension of every deployment artifact.
const ArchiveExt = ".zip"

func Artifact(function string) string {
	return function + ArchiveExt
}

// ArtifactPath joins the artifact name onto the work directory.
func ArtifactPath(workDir, function string) string {
	return filepath.Join(workDir, Artifact(function))
}

func ObjectURI(bucket, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, key)
}

// MetricsJob is the job label used in the metrics textfile.
func MetricsJob(function string) string {
	return fmt.Sprintf("lambdeploy-%s", function)
}
