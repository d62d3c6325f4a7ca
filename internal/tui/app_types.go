package tui

import "context"

// screenKind names the four list screens. Workflow overlays (wizards, the
// delete confirm, the email overlay) sit on top of whichever screen opened
// them and are tracked separately on the model.
type screenKind int

const (
	screenProfiles screenKind = iota
	screenClients
	screenProjects
	screenInvoices
)

// screen is the navigation position: which list is showing plus the chain
// of parent ids that scope it. Deeper ids are only meaningful for deeper
// kinds; ascending clears the id of the level being left.
type screen struct {
	kind      screenKind
	profileID int64
	clientID  int64
	projectID int64
}

func (s screen) parent() screen {
	switch s.kind {
	case screenClients:
		return screen{kind: screenProfiles}
	case screenProjects:
		return screen{kind: screenClients, profileID: s.profileID}
	case screenInvoices:
		return screen{kind: screenProjects, profileID: s.profileID, clientID: s.clientID}
	default:
		return s
	}
}

// activeWizard pairs a wizard with the closure that persists its draft.
// The closure captures the draft struct and parent id so the wizard engine
// stays storage-agnostic.
type activeWizard struct {
	w    *entityWizard
	save func(ctx context.Context) error
}

// confirmDelete is the pending destructive action behind the y/n modal.
type confirmDelete struct {
	prompt string
	focus  confirmFocus
	run    func(ctx context.Context) error
}
