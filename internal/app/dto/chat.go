package dto

import (
	"time"

	"compramex/internal/app/chatview"
	domainchat "compramex/internal/domain/chat"
	"compramex/internal/infra/backend"
)

// ChatMessage contains a single message payload.
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChatParticipant is the other side of a thread.
type ChatParticipant struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Colonia  string `json:"colonia,omitempty"`
	City     string `json:"city,omitempty"`
}

// ChatListing identifies the product a thread is about.
type ChatListing struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	PriceMXN int64  `json:"price_mxn"`
}

// ConversationView is the live state of one mounted conversation screen.
type ConversationView struct {
	ConversationID string          `json:"conversation_id"`
	Loading        bool            `json:"loading"`
	Failed         bool            `json:"failed"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	OtherUser      ChatParticipant `json:"other_user"`
	Product        ChatListing     `json:"product"`
	Messages       []ChatMessage   `json:"messages"`
	ConsentVisible bool            `json:"consent_visible"`
	Draft          string          `json:"draft,omitempty"`
}

// ConversationSummary is one row of the dashboard conversations tab.
type ConversationSummary struct {
	ID          string          `json:"id"`
	OtherUser   ChatParticipant `json:"other_user"`
	Product     ChatListing     `json:"product"`
	LastMessage *ChatMessage    `json:"last_message,omitempty"`
	UnreadCount int             `json:"unread_count"`
}

// MapConversationView converts a view snapshot for the wire.
func MapConversationView(snap chatview.Snapshot) ConversationView {
	view := ConversationView{
		ConversationID: string(snap.ConversationID),
		Loading:        snap.Loading,
		Failed:         snap.Failed,
		FailureReason:  snap.FailureReason,
		OtherUser:      mapChatParticipant(snap.OtherUser),
		Product:        mapChatListing(snap.Listing),
		Messages:       make([]ChatMessage, 0, len(snap.Messages)),
		ConsentVisible: snap.ConsentVisible,
		Draft:          snap.Draft,
	}
	for _, msg := range snap.Messages {
		view.Messages = append(view.Messages, MapChatMessage(msg))
	}
	return view
}

// MapChatMessage converts one domain message.
func MapChatMessage(msg domainchat.Message) ChatMessage {
	return ChatMessage{
		ID:             string(msg.ID),
		ConversationID: string(msg.ConversationID),
		SenderID:       msg.SenderID,
		Content:        msg.Text,
		CreatedAt:      msg.CreatedAt,
	}
}

// MapConversationSummaries converts dashboard rows.
func MapConversationSummaries(items []backend.ConversationSummary) []ConversationSummary {
	out := make([]ConversationSummary, 0, len(items))
	for _, item := range items {
		summary := ConversationSummary{
			ID:          string(item.ID),
			OtherUser:   mapChatParticipant(item.OtherUser),
			Product:     mapChatListing(item.Listing),
			UnreadCount: item.UnreadCount,
		}
		if item.LastMessage != nil {
			last := MapChatMessage(*item.LastMessage)
			summary.LastMessage = &last
		}
		out = append(out, summary)
	}
	return out
}

func mapChatParticipant(p domainchat.Participant) ChatParticipant {
	return ChatParticipant{
		ID:       p.ID,
		Nickname: p.Nickname,
		Colonia:  p.Colonia,
		City:     p.City,
	}
}

func mapChatListing(l domainchat.ListingRef) ChatListing {
	return ChatListing{
		ID:       l.ID,
		Title:    l.Title,
		PriceMXN: l.PriceMXN,
	}
}
