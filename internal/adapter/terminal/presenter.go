package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/gookit/color"
)

// Presenter prints feedback messages to a terminal
type Presenter struct {
	mu      sync.Mutex
	out     io.Writer
	message string
	kind    domain.FeedbackKind
	visible bool
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Show(message string, kind domain.FeedbackKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = message
	p.kind = kind
	p.visible = true

	switch kind {
	case domain.FeedbackSuccess:
		fmt.Fprintln(p.out, color.Green.Sprint("✔ "+message))
	default:
		fmt.Fprintln(p.out, color.Red.Sprint("✘ "+message))
	}
}

func (p *Presenter) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = ""
	p.kind = ""
	p.visible = false
}

// Reveal is a no-op: the message is always the latest terminal output
func (p *Presenter) Reveal() {}

// Current returns the visible message, if any
func (p *Presenter) Current() (message string, kind domain.FeedbackKind, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message, p.kind, p.visible
}
