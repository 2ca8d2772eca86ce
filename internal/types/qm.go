package types

// QmCheckID identifies one quality-management criterion.
type QmCheckID string

const (
	QmGreetingCorrect     QmCheckID = "greeting_correct"
	QmSinVerified         QmCheckID = "sin_verified"
	QmPhoneVerified       QmCheckID = "phone_verified"
	QmIdentityConfirmed   QmCheckID = "identity_confirmed"
	QmDisclosureGiven     QmCheckID = "disclosure_given"
	QmEmpathyShown        QmCheckID = "empathy_shown"
	QmNextStepsSummarized QmCheckID = "next_steps_summarized"
	QmClosingCourteous    QmCheckID = "closing_courteous"
)

// QmChecks is the closed set of checks in display order.
var QmChecks = []QmCheckID{
	QmGreetingCorrect,
	QmSinVerified,
	QmPhoneVerified,
	QmIdentityConfirmed,
	QmDisclosureGiven,
	QmEmpathyShown,
	QmNextStepsSummarized,
	QmClosingCourteous,
}

var qmLabels = map[QmCheckID]string{
	QmGreetingCorrect:     "Agent greeted member correctly",
	QmSinVerified:         "SIN verified",
	QmPhoneVerified:       "Phone number verified",
	QmIdentityConfirmed:   "Identity confirmed",
	QmDisclosureGiven:     "Required disclosure given",
	QmEmpathyShown:        "Empathy shown",
	QmNextStepsSummarized: "Next steps summarized",
	QmClosingCourteous:    "Courteous closing",
}

// Label returns the display label, or the raw id for unknown checks.
func (id QmCheckID) Label() string {
	if l, ok := qmLabels[id]; ok {
		return l
	}
	return string(id)
}

// Valid reports whether id belongs to the closed check set.
func (id QmCheckID) Valid() bool {
	_, ok := qmLabels[id]
	return ok
}
