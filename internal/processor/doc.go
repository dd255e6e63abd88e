// Package processor wires configuration, translation backend and session
// together and runs one of the program modes: a single text, a batch file,
// an interactive terminal loop or the GUI.
package processor
