package chatview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainchat "compramex/internal/domain/chat"
	"compramex/internal/infra/storage/memory"
)

// Manager tracks the conversation views currently mounted by signed-in
// users. Each (conversation, user) pair has at most one live view; opening
// it again returns the existing one instead of starting a second poller.
type Manager struct {
	backend  Backend
	store    *memory.ChatStore
	logger   *slog.Logger
	interval time.Duration

	mu    sync.Mutex
	views map[viewKey]*View
}

type viewKey struct {
	conversationID domainchat.ConversationID
	userID         string
}

// NewManager builds an empty registry.
func NewManager(backend Backend, store *memory.ChatStore, logger *slog.Logger, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Manager{
		backend:  backend,
		store:    store,
		logger:   logger,
		interval: interval,
		views:    make(map[viewKey]*View),
	}
}

// Open mounts (or returns) the view for a conversation and starts polling.
func (m *Manager) Open(ctx context.Context, conversationID domainchat.ConversationID, userID string) (*View, error) {
	key := viewKey{conversationID: conversationID, userID: userID}

	m.mu.Lock()
	if existing, ok := m.views[key]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.mu.Unlock()

	view, err := NewView(Config{
		ConversationID: conversationID,
		UserID:         userID,
		Backend:        m.backend,
		Store:          m.store,
		Logger:         m.logger,
		PollInterval:   m.interval,
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if existing, ok := m.views[key]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.views[key] = view
	m.mu.Unlock()

	view.Open(ctx)
	return view, nil
}

// Get returns a mounted view, if any.
func (m *Manager) Get(conversationID domainchat.ConversationID, userID string) (*View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	view, ok := m.views[viewKey{conversationID: conversationID, userID: userID}]
	return view, ok
}

// Close unmounts a view and stops its poller.
func (m *Manager) Close(conversationID domainchat.ConversationID, userID string) {
	key := viewKey{conversationID: conversationID, userID: userID}
	m.mu.Lock()
	view, ok := m.views[key]
	if ok {
		delete(m.views, key)
	}
	m.mu.Unlock()
	if ok {
		view.Close()
	}
}

// CloseAll tears every view down, used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	views := make([]*View, 0, len(m.views))
	for _, v := range m.views {
		views = append(views, v)
	}
	m.views = make(map[viewKey]*View)
	m.mu.Unlock()
	for _, v := range views {
		v.Close()
	}
}
