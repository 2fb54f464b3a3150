package booking

type Status string

const (
	StatusPaymentPending Status = "payment_pending"
	StatusReceived       Status = "received"
	StatusOnTheCall      Status = "on_the_call"
	StatusSubmitted      Status = "submitted"
	StatusProcessing     Status = "processing"
	StatusMeetingDue     Status = "meeting_due"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// Terminal statuses do not move again without an explicit admin update.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var transitions = map[Kind]map[Status]map[Status]bool{
	KindConsultation: {
		StatusPaymentPending: {StatusReceived: true, StatusCancelled: true},
		StatusReceived:       {StatusOnTheCall: true, StatusCancelled: true},
		StatusOnTheCall:      {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted:      {},
		StatusCancelled:      {},
	},
	KindKundli: {
		StatusPaymentPending: {StatusSubmitted: true, StatusCancelled: true},
		StatusSubmitted:      {StatusProcessing: true, StatusCancelled: true},
		StatusProcessing:     {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted:      {},
		StatusCancelled:      {},
	},
	KindDemo: {
		StatusSubmitted:  {StatusMeetingDue: true, StatusCancelled: true},
		StatusMeetingDue: {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted:  {},
		StatusCancelled:  {},
	},
}

// ValidStatus reports whether s belongs to the kind's status vocabulary.
func ValidStatus(k Kind, s Status) bool {
	_, ok := transitions[k][s]
	return ok
}

// CanTransition is only consulted in strict mode; the permissive default
// accepts any member of the kind's status set.
func CanTransition(k Kind, from, to Status) bool {
	return transitions[k][from][to]
}

// slotHoldingStatuses are the demo statuses that keep a (date, time) slot
// occupied for conflict checks.
var slotHoldingStatuses = []Status{StatusSubmitted, StatusMeetingDue}
