package shell

// SetLookPath replaces the binary lookup used by Available.
func SetLookPath(i *Invoker, fn func(string) (string, error)) {
	i.lookPath = fn
}
