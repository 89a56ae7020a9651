package memory

import (
	"sync"
	"time"

	domainchat "compramex/internal/domain/chat"
)

// ChatStore is the in-memory home of every open conversation view. It owns
// conversation metadata, message history and read markers; it never touches
// the network itself.
type ChatStore struct {
	mu    sync.RWMutex
	items map[domainchat.ConversationID]*domainchat.Conversation
}

// NewChatStore builds an empty store.
func NewChatStore() *ChatStore {
	return &ChatStore{
		items: make(map[domainchat.ConversationID]*domainchat.Conversation),
	}
}

// Load returns a conversation or ErrConversationNotFound. Callers treat the
// error as "not fetched yet", not as a hard failure.
func (s *ChatStore) Load(id domainchat.ConversationID) (*domainchat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.items[id]
	if !ok {
		return nil, domainchat.ErrConversationNotFound
	}
	return conv, nil
}

// Replace installs a full backend snapshot for one conversation. Messages
// are immutable and fetches return complete history, so replacing is
// equivalent to merging without the conflict handling. Read markers and
// unread counts survive the swap.
func (s *ChatStore) Replace(conv *domainchat.Conversation) {
	if conv == nil {
		return
	}
	domainchat.SortMessages(conv.Messages)
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.items[conv.ID]; ok {
		if conv.ReadMarkers == nil {
			conv.ReadMarkers = prev.ReadMarkers
		}
		if conv.UnreadCount == nil {
			conv.UnreadCount = prev.UnreadCount
		}
	}
	if conv.ReadMarkers == nil {
		conv.ReadMarkers = make(map[string]time.Time)
	}
	if conv.UnreadCount == nil {
		conv.UnreadCount = make(map[string]int)
	}
	s.items[conv.ID] = conv
}

// Append adds one message to its conversation. Appending a message whose ID
// is already present is a no-op: polling may re-deliver the same message.
func (s *ChatStore) Append(msg domainchat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.items[msg.ConversationID]
	if !ok {
		return domainchat.ErrConversationNotFound
	}
	for _, existing := range conv.Messages {
		if existing.ID == msg.ID {
			return nil
		}
	}
	conv.Messages = append(conv.Messages, msg)
	domainchat.SortMessages(conv.Messages)
	return nil
}

// MessagesOf returns the ordered history of a conversation. The slice is a
// copy so callers can hold it across later store mutations.
func (s *ChatStore) MessagesOf(id domainchat.ConversationID) ([]domainchat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.items[id]
	if !ok {
		return nil, domainchat.ErrConversationNotFound
	}
	out := make([]domainchat.Message, len(conv.Messages))
	copy(out, conv.Messages)
	return out, nil
}

// MarkRead advances the user's read marker to now and clears their unread
// count. Opening a conversation always does this, whether or not any
// message was actually on screen.
func (s *ChatStore) MarkRead(id domainchat.ConversationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.items[id]
	if !ok {
		return domainchat.ErrConversationNotFound
	}
	if conv.ReadMarkers == nil {
		conv.ReadMarkers = make(map[string]time.Time)
	}
	if conv.UnreadCount == nil {
		conv.UnreadCount = make(map[string]int)
	}
	conv.ReadMarkers[userID] = time.Now().UTC()
	conv.UnreadCount[userID] = 0
	return nil
}
