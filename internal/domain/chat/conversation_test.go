package chat

import (
	"errors"
	"testing"
	"time"
)

func TestSortMessagesIsStableOnEqualTimestamps(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []Message{
		{ID: "m3", CreatedAt: at.Add(time.Minute)},
		{ID: "m1", CreatedAt: at},
		{ID: "m2", CreatedAt: at},
	}
	SortMessages(msgs)

	got := []string{string(msgs[0].ID), string(msgs[1].ID), string(msgs[2].ID)}
	want := []string{"m1", "m2", "m3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestValidateText(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "hola", want: "hola"},
		{name: "trimmed", in: "  ¿Está disponible?  ", want: "¿Está disponible?"},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: "   \t\n", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateText(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrEmptyMessage) {
					t.Fatalf("error = %v, want ErrEmptyMessage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateText(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHasMessageFrom(t *testing.T) {
	conv := &Conversation{
		Messages: []Message{
			{ID: "m1", SenderID: "u2"},
			{ID: "m2", SenderID: "u1"},
		},
	}
	if !conv.HasMessageFrom("u1") {
		t.Fatal("expected prior message from u1")
	}
	if conv.HasMessageFrom("u3") {
		t.Fatal("u3 never wrote in this thread")
	}
}
