package tools

// Host bundles the collaborators a screen needs from the application.
type Host struct {
	Toaster   Toaster
	Clipboard Clipboard
	Navigator Navigator
	Links     LinkOpener
	// ResetTransactions clears pending transaction state before a send flow
	ResetTransactions func()
}

// NewRecorderHost wires every collaborator to one Recorder.
func NewRecorderHost(r *Recorder) Host {
	return Host{Toaster: r, Clipboard: r, Navigator: r, Links: r}
}
