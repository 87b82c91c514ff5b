// Package s3 wraps the AWS S3 client for artifact storage.
//
// It covers the calls a deploy needs: bucket existence checks, bucket
// creation in a region, and streaming an archive from disk into a key.
// Errors from S3-compatible services are classified by typed SDK errors
// first and by API error code second.
package s3
