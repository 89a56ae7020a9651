// Package chatview owns the client-side state of one open conversation:
// the poll loop that keeps it in sync with the hosted API, the consent
// gate in front of a user's first message, and the compose path.
package chatview

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainchat "compramex/internal/domain/chat"
	"compramex/internal/infra/storage/memory"
)

// ErrConsentPending signals that the send was intercepted and the
// disclaimer dialog is now visible; nothing went over the wire.
var ErrConsentPending = errors.New("chatview: consent decision pending")

// ErrViewClosed is returned by operations on a torn-down view.
var ErrViewClosed = errors.New("chatview: view is closed")

// DefaultPollInterval matches the original screen's refresh cadence.
const DefaultPollInterval = 3 * time.Second

// Backend is the slice of the hosted API a conversation view needs.
type Backend interface {
	GetConversation(ctx context.Context, id domainchat.ConversationID, userID string) (*domainchat.Conversation, error)
	MarkRead(ctx context.Context, id domainchat.ConversationID, userID string) error
	SendMessage(ctx context.Context, id domainchat.ConversationID, senderID, content string) (domainchat.Message, error)
}

// Snapshot is the UI-facing state of a view. Every field reflects a single
// consistent backend fetch, never an interleave of two polls.
type Snapshot struct {
	ConversationID domainchat.ConversationID
	Loading        bool
	Failed         bool
	FailureReason  string
	Messages       []domainchat.Message
	OtherUser      domainchat.Participant
	Listing        domainchat.ListingRef
	ConsentVisible bool
	Draft          string
}

// View is one mounted conversation. The identity is injected at
// construction; the view never reads it from ambient state. A single mutex
// serializes poll completions and user actions, standing in for the
// original's single-threaded event loop.
type View struct {
	conversationID domainchat.ConversationID
	userID         string
	backend        Backend
	store          *memory.ChatStore
	logger         *slog.Logger
	interval       time.Duration

	mu         sync.Mutex
	consent    *domainchat.ConsentGate
	draft      string
	loading    bool
	failed     bool
	failReason string
	loaded     bool
	closed     bool
	issuedSeq  uint64
	appliedSeq uint64
	pollCtx    context.Context
	cancel     context.CancelFunc
}

// Config assembles a view's collaborators.
type Config struct {
	ConversationID domainchat.ConversationID
	UserID         string
	Backend        Backend
	Store          *memory.ChatStore
	Logger         *slog.Logger
	PollInterval   time.Duration
}

// NewView builds an unmounted view.
func NewView(cfg Config) (*View, error) {
	if cfg.Backend == nil {
		return nil, errors.New("chatview: backend required")
	}
	if cfg.Store == nil {
		return nil, errors.New("chatview: store required")
	}
	if cfg.ConversationID == "" || cfg.UserID == "" {
		return nil, errors.New("chatview: conversation id and user id required")
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &View{
		conversationID: cfg.ConversationID,
		userID:         cfg.UserID,
		backend:        cfg.Backend,
		store:          cfg.Store,
		logger:         cfg.Logger,
		interval:       interval,
		consent:        domainchat.NewConsentGate(),
		loading:        true,
	}, nil
}

// Open starts the poll loop: one immediate fetch before the first scheduled
// tick, a single mark-read for the whole mount, then a fixed-cadence
// refetch until Close. Ticks are issued on schedule regardless of whether
// the previous response has arrived; a per-fetch sequence number discards
// responses that would roll the snapshot backwards.
func (v *View) Open(ctx context.Context) {
	v.mu.Lock()
	if v.cancel != nil || v.closed {
		v.mu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	v.pollCtx = pollCtx
	v.cancel = cancel
	v.mu.Unlock()

	go func() {
		v.fetch(pollCtx)
		v.markRead(pollCtx)

		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				go v.fetch(pollCtx)
			}
		}
	}()
}

// Close stops polling and tears the view down. In-flight responses are
// allowed to finish but their results are discarded.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.closed = true
}

// Send validates and dispatches one outbound message. Empty text is
// rejected before any network call. A first-time sender is intercepted by
// the consent gate instead of transmitting. A transport failure keeps the
// draft and is surfaced; the message is never inserted locally before the
// backend confirms it, so a failed send cannot show a ghost message.
func (v *View) Send(ctx context.Context, text string) error {
	trimmed, err := domainchat.ValidateText(text)
	if err != nil {
		return err
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	if !v.consent.Accepted() {
		v.consent.Intercept(trimmed)
		v.draft = trimmed
		v.mu.Unlock()
		return ErrConsentPending
	}
	v.draft = trimmed
	v.mu.Unlock()

	return v.transmit(ctx, trimmed)
}

// AcceptConsent resolves the disclaimer positively and resubmits the held
// message, if any.
func (v *View) AcceptConsent(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	pending, err := v.consent.Accept()
	v.mu.Unlock()
	if err != nil {
		return err
	}
	if pending == "" {
		return nil
	}
	return v.transmit(ctx, pending)
}

// DeclineConsent aborts the held send. The composed text stays in the
// draft so the user can retry; the message list is untouched.
func (v *View) DeclineConsent() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	return v.consent.Decline()
}

// Snapshot returns the current UI state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		ConversationID: v.conversationID,
		Loading:        v.loading,
		Failed:         v.failed,
		FailureReason:  v.failReason,
		ConsentVisible: v.consent.State() == domainchat.ConsentChecking,
		Draft:          v.draft,
	}
	conv, err := v.store.Load(v.conversationID)
	if err != nil {
		return snap
	}
	snap.OtherUser = conv.OtherUser
	snap.Listing = conv.Listing
	snap.Messages = make([]domainchat.Message, len(conv.Messages))
	copy(snap.Messages, conv.Messages)
	return snap
}

// transmit sends confirmed text and schedules an out-of-band refetch so the
// message appears before the next scheduled tick.
func (v *View) transmit(ctx context.Context, text string) error {
	_, err := v.backend.SendMessage(ctx, v.conversationID, v.userID, text)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	if err != nil {
		v.draft = text
		v.failed = true
		v.failReason = "message not sent"
		v.mu.Unlock()
		if v.logger != nil {
			v.logger.Error("send failed", "conversation_id", v.conversationID, "error", err)
		}
		return err
	}
	v.draft = ""
	v.failed = false
	v.failReason = ""
	refetchCtx := v.pollCtx
	v.mu.Unlock()

	// Refetch immediately instead of waiting for the next tick so the sent
	// message shows up promptly. Uses the poll context: the request that
	// carried the send may be gone before the refetch lands.
	if refetchCtx != nil {
		go v.fetch(refetchCtx)
	}
	return nil
}

// fetch performs one poll: issue a sequenced request, then apply the
// response only if the view is still mounted and no later-issued response
// has already been applied.
func (v *View) fetch(ctx context.Context) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.issuedSeq++
	seq := v.issuedSeq
	v.mu.Unlock()

	conv, err := v.backend.GetConversation(ctx, v.conversationID, v.userID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || seq <= v.appliedSeq {
		return
	}
	if err != nil {
		// A failed poll keeps the previous snapshot; the next tick retries.
		if v.logger != nil {
			v.logger.Warn("poll failed", "conversation_id", v.conversationID, "error", err)
		}
		if !v.loaded {
			v.loading = false
			v.failed = true
			v.failReason = "conversation unavailable"
		}
		return
	}
	v.appliedSeq = seq
	v.store.Replace(conv)
	v.loading = false
	v.loaded = true
	v.failed = false
	v.failReason = ""
	if v.consent.State() == domainchat.ConsentUnknown && conv.HasMessageFrom(v.userID) {
		// Prior history in the thread counts as consent already given.
		v.consent = domainchat.NewAcceptedGate()
	}
}

// markRead acknowledges the thread once per mount, remotely and locally.
func (v *View) markRead(ctx context.Context) {
	if err := v.backend.MarkRead(ctx, v.conversationID, v.userID); err != nil {
		if v.logger != nil {
			v.logger.Warn("mark-read failed", "conversation_id", v.conversationID, "error", err)
		}
		return
	}
	if err := v.store.MarkRead(v.conversationID, v.userID); err != nil &&
		!errors.Is(err, domainchat.ErrConversationNotFound) && v.logger != nil {
		v.logger.Warn("local mark-read failed", "conversation_id", v.conversationID, "error", err)
	}
}
