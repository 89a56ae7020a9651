package chat

import "errors"

var ErrNoPendingConsent = errors.New("chat: no consent decision pending")

type ConsentState string

const (
	ConsentUnknown  ConsentState = "UNKNOWN"
	ConsentChecking ConsentState = "CHECKING"
	ConsentAccepted ConsentState = "ACCEPTED"
	ConsentDeclined ConsentState = "DECLINED"
)

// ConsentGate holds the per-user, per-conversation disclaimer state. A user
// who never wrote in a thread must acknowledge the data-retention notice
// before their first message goes out; a user with prior history is never
// prompted again.
type ConsentGate struct {
	state       ConsentState
	pendingText string
}

// NewConsentGate starts a gate for a user with no prior messages.
func NewConsentGate() *ConsentGate {
	return &ConsentGate{state: ConsentUnknown}
}

// NewAcceptedGate seeds the gate for a user whose fetched history already
// contains their own messages.
func NewAcceptedGate() *ConsentGate {
	return &ConsentGate{state: ConsentAccepted}
}

func (g *ConsentGate) State() ConsentState { return g.state }

// Accepted reports whether sends pass through without interception.
func (g *ConsentGate) Accepted() bool { return g.state == ConsentAccepted }

// Intercept records a send attempt made before acceptance. The attempted
// text is held so it can be resubmitted if the user accepts.
func (g *ConsentGate) Intercept(text string) {
	g.state = ConsentChecking
	g.pendingText = text
}

// Accept resolves the disclaimer positively and releases the held text, if
// any, for automatic resubmission. Further sends are never intercepted.
func (g *ConsentGate) Accept() (pending string, err error) {
	if g.state != ConsentChecking {
		return "", ErrNoPendingConsent
	}
	pending = g.pendingText
	g.state = ConsentAccepted
	g.pendingText = ""
	return pending, nil
}

// Decline aborts the held send. The state returns to UNKNOWN so a later
// attempt prompts again; the caller keeps the composed text.
func (g *ConsentGate) Decline() error {
	if g.state != ConsentChecking {
		return ErrNoPendingConsent
	}
	g.state = ConsentUnknown
	g.pendingText = ""
	return nil
}
