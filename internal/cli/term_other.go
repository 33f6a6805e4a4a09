//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

// isTerminal reports false, so the shell reads plain lines.
func isTerminal(uintptr) bool {
	return false
}
