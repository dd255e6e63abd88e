// Package errorcodes turns failures of the remote translation service into
// messages that can be shown to the user. Known error codes are looked up in
// localized message tables; unknown codes fall back to the message the
// service sent.
package errorcodes
