package git

// IClient is the subset of repository state the runner needs.
type IClient interface {
	// Dirty reports whether tracked files under dir have uncommitted changes.
	Dirty(dir string) (bool, error)
	// CurrentCommitSHA returns the HEAD commit of the repository holding dir.
	CurrentCommitSHA(dir string) (string, error)
}
