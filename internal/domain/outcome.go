package domain

import "fmt"

// Outcome is the result of one submit action
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeRateLimited
	OutcomeInvalid
	OutcomeNetworkFailure
	OutcomeBusy // a submission is already in flight
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRateLimited:
		return "rejected-rate-limited"
	case OutcomeInvalid:
		return "rejected-invalid"
	case OutcomeNetworkFailure:
		return "network-failure"
	case OutcomeBusy:
		return "busy"
	}
	return "unknown"
}

// FeedbackKind selects how a feedback message is styled
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Submission feedback messages
const (
	MsgRateLimited = "You have reached the maximum number of submissions per hour. Please try again later."
	MsgSendFailed  = "We couldn't send the email. Please check your details or try again in a moment."
)

// AcceptedMessage is shown after a successful submission
func AcceptedMessage(email string) string {
	return fmt.Sprintf("Thanks! We've emailed a confirmation to %s and will follow up within 24–48 hours.", email)
}
