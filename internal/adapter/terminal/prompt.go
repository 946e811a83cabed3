package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/gookit/color"
)

type question struct {
	field    string
	label    string
	optional bool
}

// Prompter fills a Form by asking for each visible field in turn
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	form     *Form
	minDate  string
	onChange func(field string)
}

// NewPrompter reads answers from in. onChange is called after each field
// is set, the way an input "change" event would fire.
func NewPrompter(in io.Reader, out io.Writer, form *Form, minDate string, onChange func(field string)) *Prompter {
	if onChange == nil {
		onChange = func(string) {}
	}
	return &Prompter{
		in:       bufio.NewReader(in),
		out:      out,
		form:     form,
		minDate:  minDate,
		onChange: onChange,
	}
}

func (p *Prompter) questions() []question {
	dateHint := fmt.Sprintf(" (YYYY-MM-DD, from %s)", p.minDate)
	return []question{
		{field: domain.FieldName, label: "Full name"},
		{field: domain.FieldEmail, label: "Email"},
		{field: "phone", label: "Phone", optional: true},
		{field: domain.FieldOrigin, label: "Travelling from"},
		{field: domain.FieldDestination, label: "Destination"},
		{field: domain.FieldStartDate, label: "Departure date" + dateHint},
		{field: domain.FieldEndDate, label: "Return date" + dateHint},
		{field: domain.FieldTravelers, label: "Number of travellers"},
		{field: "message", label: "Anything else we should know", optional: true},
		{field: domain.FieldConsent, label: "May we contact you about this quote? [y/N]"},
	}
}

// Fill asks every question. Empty answers keep the current value. Dates
// before minDate or in the wrong format are refused and asked again, and
// the return date may not precede the departure date.
func (p *Prompter) Fill() error {
	for _, q := range p.questions() {
		for {
			answer, err := p.ask(q)
			if err != nil {
				return err
			}
			if answer == "" {
				break
			}
			if msg := p.checkDate(q.field, answer); msg != "" {
				fmt.Fprintln(p.out, color.Red.Sprint("✘ "+msg))
				continue
			}
			p.form.SetField(q.field, answer)
			p.onChange(q.field)
			break
		}
	}
	return nil
}

func (p *Prompter) ask(q question) (string, error) {
	current := p.form.Snapshot().Value(q.field)
	label := q.label
	if q.optional {
		label += " (optional)"
	}
	if current != "" && q.field != domain.FieldConsent {
		label += fmt.Sprintf(" [%s]", current)
	}
	fmt.Fprintf(p.out, "%s: ", label)

	answer, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// checkDate returns the message for a date answer the form must refuse
func (p *Prompter) checkDate(field, answer string) string {
	if field != domain.FieldStartDate && field != domain.FieldEndDate {
		return ""
	}
	if err := domain.CheckDateInput(answer, p.minDate); err != nil {
		return err.Error()
	}
	if field == domain.FieldEndDate && domain.DateBefore(answer, p.form.Snapshot().StartDate) {
		return domain.MsgEndBeforeStart
	}
	return ""
}
