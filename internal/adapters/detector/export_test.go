package detector

// SetTerminal overrides terminal detection for the duration of a test.
func SetTerminal(t interface{ Cleanup(func()) }, tty bool) {
	prev := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { isTerminal = prev })
}
