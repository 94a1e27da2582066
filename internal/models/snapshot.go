package models

// Flags gate duplicate submissions of the same operation kind
type Flags struct {
	Ingesting bool
	Asking    bool
	Resetting bool
}

// Snapshot is an immutable copy of the session state handed to the UI
type Snapshot struct {
	SessionID     string
	Turns         []Turn
	Staged        *Document
	Flags         Flags
	Notifications []Notification
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Snapshot    Snapshot // Latest state pushed by core
	Input       string   // User input field
	Status      string   // Status bar text
	LoadingDots int      // Animation counter for loading dots
	Width       int      // Terminal width
	Height      int      // Terminal height
}

// Busy reports whether any remote call is outstanding
func (m AppModel) Busy() bool {
	f := m.Snapshot.Flags
	return f.Ingesting || f.Asking || f.Resetting
}
