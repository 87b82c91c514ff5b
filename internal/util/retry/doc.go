// Package retry polls a condition with exponential backoff.
//
// [Until] is used to wait for eventually consistent control-plane state,
// such as a Lambda function finishing a code update. Errors wrapped with
// [Fatal] stop polling immediately.
package retry
