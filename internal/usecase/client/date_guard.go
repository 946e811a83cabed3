package client

import (
	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/dreamw/travel-quote/internal/port"
)

// DateGuard keeps the trip dates ordered while the user edits them
type DateGuard struct {
	form      port.Form
	presenter port.FeedbackPresenter
}

func NewDateGuard(form port.Form, presenter port.FeedbackPresenter) *DateGuard {
	return &DateGuard{form: form, presenter: presenter}
}

// StartDateChanged raises an earlier end date to the new start date
func (g *DateGuard) StartDateChanged() {
	f := g.form.Snapshot()
	if f.EndDate != "" && domain.DateBefore(f.EndDate, f.StartDate) {
		g.form.SetField(domain.FieldEndDate, f.StartDate)
	}
}

// EndDateChanged rejects an end date before the start date: the user is
// told and the end date falls back to the start date.
func (g *DateGuard) EndDateChanged() {
	f := g.form.Snapshot()
	if f.StartDate != "" && domain.DateBefore(f.EndDate, f.StartDate) {
		g.presenter.Show(domain.MsgEndBeforeStart, domain.FeedbackError)
		g.form.SetField(domain.FieldEndDate, f.StartDate)
	}
}
