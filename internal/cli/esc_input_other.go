//go:build !darwin && !linux

package cli

import "time"

// Without poll a lone Esc cannot be told apart from the start of a key
// sequence, so Esc is never read as back.
func inputPending(uintptr, time.Duration) bool {
	return true
}
