package port

import "github.com/dreamw/travel-quote/internal/domain"

// FeedbackPresenter shows submission feedback to the user
type FeedbackPresenter interface {
	// Show makes message visible, styled by kind
	Show(message string, kind domain.FeedbackKind)

	// Hide clears the message and its visibility
	Hide()

	// Reveal brings the feedback region into view
	Reveal()
}

// Form is the UI surface holding the quote form fields
type Form interface {
	// Snapshot returns the current field values
	Snapshot() domain.FormState

	// SetField changes one field, as a user edit would
	SetField(name, value string)

	// Reset clears all fields
	Reset()

	// SetBusy disables the submit control and shows it loading (or undoes that)
	SetBusy(busy bool)
}
