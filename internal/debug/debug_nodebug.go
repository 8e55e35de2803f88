//go:build !debug

package debug

// Printf does nothing unless built with the debug tag.
func Printf(msg string, args ...any) {}

const On = false
