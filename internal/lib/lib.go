// Package lib groups integrations that sit beside the request path:
// the asynq-backed job queue in lib/job and the Resend email client in lib/email.
package lib
