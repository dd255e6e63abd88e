// Package catalog holds the static table of supported source languages and
// the target languages each of them can be translated into. The table is
// embedded in the binary, parsed once and shared read-only afterwards.
package catalog
