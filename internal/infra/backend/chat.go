package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	domainchat "compramex/internal/domain/chat"
)

type wireParticipant struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Colonia  string `json:"colonia"`
	City     string `json:"city"`
}

type wireListing struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	PriceMXN int64  `json:"price_mxn"`
}

type wireMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type wireConversation struct {
	ID        string          `json:"id"`
	BuyerID   string          `json:"buyer_id"`
	SellerID  string          `json:"seller_id"`
	OtherUser wireParticipant `json:"other_user"`
	Product   wireListing     `json:"product"`
	Messages  []wireMessage   `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
}

// GetConversation fetches the full current state of one thread as seen by
// userID: metadata, the other participant, the listing and every message.
func (c *Client) GetConversation(ctx context.Context, id domainchat.ConversationID, userID string) (*domainchat.Conversation, error) {
	query := url.Values{}
	query.Set("userId", userID)
	var wire wireConversation
	if err := c.get(ctx, "/conversations/"+url.PathEscape(string(id)), query, &wire); err != nil {
		return nil, err
	}
	return mapConversation(wire), nil
}

// MarkRead acknowledges every message in the conversation for the user.
func (c *Client) MarkRead(ctx context.Context, id domainchat.ConversationID, userID string) error {
	payload := map[string]string{
		"conversation_id": string(id),
		"user_id":         userID,
	}
	return c.send(ctx, http.MethodPut, "/messages/mark-read", payload, nil)
}

// SendMessage transmits one outbound message and returns the created entry.
func (c *Client) SendMessage(ctx context.Context, id domainchat.ConversationID, senderID, content string) (domainchat.Message, error) {
	payload := map[string]string{
		"conversation_id": string(id),
		"sender_id":       senderID,
		"content":         content,
	}
	var wire wireMessage
	if err := c.send(ctx, http.MethodPost, "/messages", payload, &wire); err != nil {
		return domainchat.Message{}, err
	}
	return mapMessage(wire), nil
}

// CreateConversation returns the thread for (product, buyer, seller),
// creating it only if none exists. The backend deduplicates, so contacting
// the same seller about the same listing twice yields the same thread.
func (c *Client) CreateConversation(ctx context.Context, productID, buyerID, sellerID string) (*domainchat.Conversation, error) {
	payload := map[string]string{
		"product_id": productID,
		"buyer_id":   buyerID,
		"seller_id":  sellerID,
	}
	var wire wireConversation
	if err := c.send(ctx, http.MethodPost, "/conversations", payload, &wire); err != nil {
		return nil, err
	}
	return mapConversation(wire), nil
}

type wireConversationSummary struct {
	ID          string          `json:"id"`
	OtherUser   wireParticipant `json:"other_user"`
	Product     wireListing     `json:"product"`
	LastMessage *wireMessage    `json:"last_message,omitempty"`
	UnreadCount int             `json:"unread_count"`
}

// ConversationSummary is one row of the dashboard conversations tab.
type ConversationSummary struct {
	ID          domainchat.ConversationID
	OtherUser   domainchat.Participant
	Listing     domainchat.ListingRef
	LastMessage *domainchat.Message
	UnreadCount int
}

// ListConversations returns every thread the user participates in.
func (c *Client) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {
	query := url.Values{}
	query.Set("userId", userID)
	var wires []wireConversationSummary
	if err := c.get(ctx, "/conversations", query, &wires); err != nil {
		return nil, err
	}
	out := make([]ConversationSummary, 0, len(wires))
	for _, w := range wires {
		summary := ConversationSummary{
			ID:          domainchat.ConversationID(w.ID),
			OtherUser:   mapParticipant(w.OtherUser),
			Listing:     mapListing(w.Product),
			UnreadCount: w.UnreadCount,
		}
		if w.LastMessage != nil {
			last := mapMessage(*w.LastMessage)
			summary.LastMessage = &last
		}
		out = append(out, summary)
	}
	return out, nil
}

func mapConversation(w wireConversation) *domainchat.Conversation {
	conv := &domainchat.Conversation{
		ID:        domainchat.ConversationID(w.ID),
		BuyerID:   w.BuyerID,
		SellerID:  w.SellerID,
		OtherUser: mapParticipant(w.OtherUser),
		Listing:   mapListing(w.Product),
		Messages:  make([]domainchat.Message, 0, len(w.Messages)),
		CreatedAt: w.CreatedAt,
	}
	for _, m := range w.Messages {
		conv.Messages = append(conv.Messages, mapMessage(m))
	}
	return conv
}

func mapMessage(w wireMessage) domainchat.Message {
	return domainchat.Message{
		ID:             domainchat.MessageID(w.ID),
		ConversationID: domainchat.ConversationID(w.ConversationID),
		SenderID:       w.SenderID,
		Text:           w.Content,
		CreatedAt:      w.CreatedAt,
	}
}

func mapParticipant(w wireParticipant) domainchat.Participant {
	return domainchat.Participant{
		ID:       w.ID,
		Nickname: w.Nickname,
		Colonia:  w.Colonia,
		City:     w.City,
	}
}

func mapListing(w wireListing) domainchat.ListingRef {
	return domainchat.ListingRef{
		ID:       w.ID,
		Title:    w.Title,
		PriceMXN: w.PriceMXN,
	}
}
