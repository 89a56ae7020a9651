package chat

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrConversationNotFound = errors.New("chat: conversation not found")
	ErrEmptyMessage         = errors.New("chat: message text is empty")
)

type ConversationID string

type MessageID string

// Message is a single chat entry. Messages are immutable once created; the
// hosted backend never edits or deletes them within the retention window.
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	SenderID       string
	Text           string
	CreatedAt      time.Time
}

// Participant carries the subset of a user profile shown inside a thread.
type Participant struct {
	ID       string
	Nickname string
	Colonia  string
	City     string
}

// ListingRef identifies the product a conversation is about.
type ListingRef struct {
	ID       string
	Title    string
	PriceMXN int64
}

// Conversation is one buyer<->seller thread about one listing. The backend
// deduplicates by (product, buyer, seller), so re-contacting a seller about
// the same listing always resolves to the same thread.
type Conversation struct {
	ID          ConversationID
	BuyerID     string
	SellerID    string
	OtherUser   Participant
	Listing     ListingRef
	Messages    []Message
	UnreadCount map[string]int
	ReadMarkers map[string]time.Time
	CreatedAt   time.Time
}

// HasMessageFrom reports whether the user already wrote in this thread.
func (c *Conversation) HasMessageFrom(userID string) bool {
	for _, m := range c.Messages {
		if m.SenderID == userID {
			return true
		}
	}
	return false
}

// SortMessages orders messages by non-decreasing creation time. The sort is
// stable so that equal timestamps keep the arrival order of the fetch.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}

// ValidateText rejects empty or whitespace-only message bodies before any
// network call is attempted.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyMessage
	}
	return trimmed, nil
}
