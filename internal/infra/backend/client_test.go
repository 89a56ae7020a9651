package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domaincatalog "compramex/internal/domain/catalog"
)

func searchParamsForTest() domaincatalog.SearchParams {
	return domaincatalog.SearchParams{
		Query:    "bicicleta",
		Category: "sports",
		State:    "CDMX",
		City:     "Ciudad de México",
		Colonia:  "Condesa",
		MinPrice: 1000,
		MaxPrice: 20000,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL, CallTimeout: 2 * time.Second}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"success": true, "data": json.RawMessage(payload)}); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
}

func TestGetConversation(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/conversations/c1" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "u1" {
			t.Fatalf("userId = %q, want u1", got)
		}
		writeEnvelope(t, w, map[string]any{
			"id":        "c1",
			"buyer_id":  "u1",
			"seller_id": "u2",
			"other_user": map[string]any{
				"id": "u2", "nickname": "TechSeller", "colonia": "Roma Norte", "city": "Ciudad de México",
			},
			"product": map[string]any{"id": "p1", "title": "iPhone 13 Pro Max", "price_mxn": 18000},
			"messages": []map[string]any{
				{"id": "m1", "conversation_id": "c1", "sender_id": "u1", "content": "hola", "created_at": createdAt},
			},
		})
	}))

	conv, err := client.GetConversation(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("GetConversation: %v", err)
	}
	if conv.ID != "c1" || conv.OtherUser.Nickname != "TechSeller" {
		t.Fatalf("conversation = %+v", conv)
	}
	if conv.Listing.Title != "iPhone 13 Pro Max" || conv.Listing.PriceMXN != 18000 {
		t.Fatalf("listing = %+v", conv.Listing)
	}
	if len(conv.Messages) != 1 || conv.Messages[0].Text != "hola" || !conv.Messages[0].CreatedAt.Equal(createdAt) {
		t.Fatalf("messages = %+v", conv.Messages)
	}
}

func TestSendMessagePostsExactBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/messages" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		want := map[string]string{
			"conversation_id": "c1",
			"sender_id":       "u1",
			"content":         "¿Está disponible?",
		}
		for k, v := range want {
			if body[k] != v {
				t.Fatalf("body[%s] = %q, want %q", k, body[k], v)
			}
		}
		writeEnvelope(t, w, map[string]any{
			"id": "m9", "conversation_id": "c1", "sender_id": "u1",
			"content": "¿Está disponible?", "created_at": time.Now().UTC(),
		})
	}))

	msg, err := client.SendMessage(context.Background(), "c1", "u1", "¿Está disponible?")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.ID != "m9" || msg.SenderID != "u1" {
		t.Fatalf("message = %+v", msg)
	}
}

func TestMarkRead(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/messages/mark-read" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["conversation_id"] != "c1" || body["user_id"] != "u1" {
			t.Fatalf("body = %v", body)
		}
		writeEnvelope(t, w, map[string]any{"acknowledged": true})
	}))

	if err := client.MarkRead(context.Background(), "c1", "u1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
}

func TestCreateConversationDedupPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/conversations" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["product_id"] != "p1" || body["buyer_id"] != "u1" || body["seller_id"] != "u2" {
			t.Fatalf("body = %v", body)
		}
		writeEnvelope(t, w, map[string]any{"id": "c1", "buyer_id": "u1", "seller_id": "u2"})
	}))

	conv, err := client.CreateConversation(context.Background(), "p1", "u1", "u2")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if conv.ID != "c1" {
		t.Fatalf("conversation id = %s, want c1", conv.ID)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := client.GetConversation(context.Background(), "missing", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestFailureEnvelopeNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "conversation not found"})
	}))

	_, err := client.GetConversation(context.Background(), "missing", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.GetConversation(context.Background(), "c1", "u1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestTransportErrorMapsToUnavailable(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	_, err := client.GetConversation(context.Background(), "c1", "u1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestSearchProductsEncodesFilters(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		checks := map[string]string{
			"search":    "bicicleta",
			"category":  "sports",
			"state":     "CDMX",
			"city":      "Ciudad de México",
			"colonia":   "Condesa",
			"min_price": "1000",
			"max_price": "20000",
			"limit":     "20",
			"offset":    "0",
		}
		for k, v := range checks {
			if q.Get(k) != v {
				t.Fatalf("query[%s] = %q, want %q", k, q.Get(k), v)
			}
		}
		writeEnvelope(t, w, []map[string]any{
			{"id": "p2", "title": "Bicicleta de Montaña Trek", "price_mxn": 12500, "is_active": true},
		})
	}))

	products, err := client.SearchProducts(context.Background(), searchParamsForTest())
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Bicicleta de Montaña Trek" {
		t.Fatalf("products = %+v", products)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "vecino@example.mx", "wrong")
	if err == nil {
		t.Fatal("expected credentials error")
	}
}
