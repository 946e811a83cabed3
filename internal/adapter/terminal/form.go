package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/gookit/color"
)

// Form holds the quote form in memory and reports the submit state on out
type Form struct {
	mu    sync.Mutex
	out   io.Writer
	state domain.FormState
	busy  bool
}

func NewForm(initial domain.FormState, out io.Writer) *Form {
	return &Form{state: initial, out: out}
}

func (f *Form) Snapshot() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.state
	if f.state.Extra != nil {
		s.Extra = make(map[string]string, len(f.state.Extra))
		for k, v := range f.state.Extra {
			s.Extra[k] = v
		}
	}
	return s
}

// SetField sets a field by its payload name. Unknown names become extra fields.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case domain.FieldName:
		f.state.Name = value
	case domain.FieldEmail:
		f.state.Email = value
	case domain.FieldOrigin:
		f.state.Origin = value
	case domain.FieldDestination:
		f.state.Destination = value
	case domain.FieldStartDate:
		f.state.StartDate = value
	case domain.FieldEndDate:
		f.state.EndDate = value
	case domain.FieldTravelers:
		f.state.Travelers = value
	case domain.FieldWebsite:
		f.state.Website = value
	case domain.FieldConsent:
		f.state.Consent = parseChecked(value)
	default:
		if f.state.Extra == nil {
			f.state.Extra = make(map[string]string)
		}
		f.state.Extra[name] = value
	}
}

func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = domain.FormState{}
}

func (f *Form) SetBusy(busy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if busy && !f.busy {
		fmt.Fprintln(f.out, color.Cyan.Sprint("Sending your request..."))
	}
	f.busy = busy
}

// Busy reports whether a submission is in flight
func (f *Form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func parseChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "yes", "y", "1":
		return true
	}
	return false
}
