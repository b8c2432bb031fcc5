//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

// IsTerminal reports whether fd refers to a terminal. Terminal detection
// is not available on this platform, so output is never styled in auto mode.
func IsTerminal(fd uintptr) bool {
	return false
}
