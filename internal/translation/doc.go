// Package translation provides the remote machine-translation backends used
// by livetrans. Every backend implements Translator, a stateless pair of
// operations: detecting the language of a text and translating a text between
// two languages. Backends perform no retries and no caching; failures are
// reported as *RemoteError or *TransportError.
package translation
