// Package session turns settled input text into translations.
//
// A Session is a small state machine (Idle, Detecting, Translating) fed with
// events. Each settle increments a request id; responses carrying an older id
// are discarded, so only the result of the latest input is ever shown. In
// flight calls are never aborted by a newer settle, they are left to finish
// and are then ignored.
package session
