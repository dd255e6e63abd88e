// Package debounce coalesces a rapid stream of input values into a single
// settled value once the input has been quiet for a configured duration.
// A pending value can also be committed immediately with Flush or dropped
// with Cancel.
package debounce
