package memory

import (
	"errors"
	"testing"
	"time"

	domainchat "compramex/internal/domain/chat"
)

func seedConversation(t *testing.T, store *ChatStore, id domainchat.ConversationID, msgs ...domainchat.Message) {
	t.Helper()
	store.Replace(&domainchat.Conversation{
		ID:       id,
		BuyerID:  "u1",
		SellerID: "u2",
		Messages: msgs,
	})
}

func TestLoadUnknownConversation(t *testing.T) {
	store := NewChatStore()
	if _, err := store.Load("missing"); !errors.Is(err, domainchat.ErrConversationNotFound) {
		t.Fatalf("error = %v, want ErrConversationNotFound", err)
	}
}

func TestAppendIsIdempotentByMessageID(t *testing.T) {
	store := NewChatStore()
	at := time.Now().UTC()
	seedConversation(t, store, "c1", domainchat.Message{ID: "m1", ConversationID: "c1", SenderID: "u1", Text: "hola", CreatedAt: at})

	dup := domainchat.Message{ID: "m1", ConversationID: "c1", SenderID: "u1", Text: "hola", CreatedAt: at}
	if err := store.Append(dup); err != nil {
		t.Fatalf("Append duplicate: %v", err)
	}

	msgs, err := store.MessagesOf("c1")
	if err != nil {
		t.Fatalf("MessagesOf: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len = %d, want 1 (duplicate append must be a no-op)", len(msgs))
	}
}

func TestAppendToUnknownConversation(t *testing.T) {
	store := NewChatStore()
	err := store.Append(domainchat.Message{ID: "m1", ConversationID: "nope"})
	if !errors.Is(err, domainchat.ErrConversationNotFound) {
		t.Fatalf("error = %v, want ErrConversationNotFound", err)
	}
}

func TestReplaceInstallsSortedSnapshot(t *testing.T) {
	store := NewChatStore()
	at := time.Now().UTC()
	store.Replace(&domainchat.Conversation{
		ID: "c1",
		Messages: []domainchat.Message{
			{ID: "m2", ConversationID: "c1", CreatedAt: at.Add(time.Second)},
			{ID: "m1", ConversationID: "c1", CreatedAt: at},
		},
	})

	msgs, err := store.MessagesOf("c1")
	if err != nil {
		t.Fatalf("MessagesOf: %v", err)
	}
	if msgs[0].ID != "m1" || msgs[1].ID != "m2" {
		t.Fatalf("order = [%s %s], want [m1 m2]", msgs[0].ID, msgs[1].ID)
	}
}

func TestReplaceKeepsReadMarkers(t *testing.T) {
	store := NewChatStore()
	seedConversation(t, store, "c1")
	if err := store.MarkRead("c1", "u1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	// A poll snapshot without local metadata must not wipe the marker.
	store.Replace(&domainchat.Conversation{ID: "c1"})

	conv, err := store.Load("c1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := conv.ReadMarkers["u1"]; !ok {
		t.Fatal("read marker for u1 lost across Replace")
	}
}

func TestMarkReadAdvancesMarkerAndClearsUnread(t *testing.T) {
	store := NewChatStore()
	store.Replace(&domainchat.Conversation{
		ID:          "c1",
		UnreadCount: map[string]int{"u1": 3},
	})

	before := time.Now().UTC()
	if err := store.MarkRead("c1", "u1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	conv, err := store.Load("c1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conv.UnreadCount["u1"] != 0 {
		t.Fatalf("unread = %d, want 0", conv.UnreadCount["u1"])
	}
	if conv.ReadMarkers["u1"].Before(before) {
		t.Fatal("read marker did not advance to now")
	}
}

func TestMessagesOfReturnsACopy(t *testing.T) {
	store := NewChatStore()
	at := time.Now().UTC()
	seedConversation(t, store, "c1", domainchat.Message{ID: "m1", ConversationID: "c1", CreatedAt: at})

	msgs, err := store.MessagesOf("c1")
	if err != nil {
		t.Fatalf("MessagesOf: %v", err)
	}
	msgs[0].Text = "mutated"

	again, err := store.MessagesOf("c1")
	if err != nil {
		t.Fatalf("MessagesOf: %v", err)
	}
	if again[0].Text == "mutated" {
		t.Fatal("caller mutation leaked into the store")
	}
}
