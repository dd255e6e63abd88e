// Package notify delivers short user-facing messages (translation failures,
// "copied" confirmations) to whatever surface displays them. Senders never
// wait for the message to be shown.
package notify
