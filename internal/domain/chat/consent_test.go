package chat

import (
	"errors"
	"testing"
)

func TestConsentGateFirstSendIsIntercepted(t *testing.T) {
	gate := NewConsentGate()
	if gate.Accepted() {
		t.Fatal("fresh gate must not be accepted")
	}
	gate.Intercept("hola")
	if gate.State() != ConsentChecking {
		t.Fatalf("state = %s, want %s", gate.State(), ConsentChecking)
	}
}

func TestConsentGateAcceptReleasesPendingText(t *testing.T) {
	gate := NewConsentGate()
	gate.Intercept("¿Está disponible?")

	pending, err := gate.Accept()
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if pending != "¿Está disponible?" {
		t.Fatalf("pending = %q, want the intercepted text", pending)
	}
	if !gate.Accepted() {
		t.Fatal("gate must be accepted after Accept")
	}

	// No further interception for this conversation in the session.
	if _, err := gate.Accept(); !errors.Is(err, ErrNoPendingConsent) {
		t.Fatalf("second Accept error = %v, want ErrNoPendingConsent", err)
	}
}

func TestConsentGateDeclineReturnsToUnknown(t *testing.T) {
	gate := NewConsentGate()
	gate.Intercept("hola")

	if err := gate.Decline(); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if gate.State() != ConsentUnknown {
		t.Fatalf("state = %s, want %s", gate.State(), ConsentUnknown)
	}

	// A later attempt prompts again.
	gate.Intercept("hola otra vez")
	if gate.State() != ConsentChecking {
		t.Fatalf("state = %s, want %s", gate.State(), ConsentChecking)
	}
}

func TestConsentGateDecisionsRequirePendingCheck(t *testing.T) {
	gate := NewConsentGate()
	if err := gate.Decline(); !errors.Is(err, ErrNoPendingConsent) {
		t.Fatalf("Decline error = %v, want ErrNoPendingConsent", err)
	}
	if _, err := gate.Accept(); !errors.Is(err, ErrNoPendingConsent) {
		t.Fatalf("Accept error = %v, want ErrNoPendingConsent", err)
	}
}

func TestNewAcceptedGateSkipsDisclaimer(t *testing.T) {
	gate := NewAcceptedGate()
	if !gate.Accepted() {
		t.Fatal("seeded gate must be accepted")
	}
}
