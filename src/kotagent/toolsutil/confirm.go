package toolsutil

// Confirmer is the interactive confirmation boundary consulted before
// mutating operations. Implementations block until the user answers.
type Confirmer interface {
	// Confirm asks the user to approve the described action. detail may
	// carry a preview, such as a diff, and may be empty.
	Confirm(description, detail string) bool
}

// AutoApprove is the brave/autonomous mode confirmer: every action is
// approved without asking.
type AutoApprove struct{}

func (AutoApprove) Confirm(string, string) bool { return true }
