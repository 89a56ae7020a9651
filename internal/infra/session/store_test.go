package session

import (
	"testing"
	"time"

	domainuser "compramex/internal/domain/user"
)

func TestPutAndResolve(t *testing.T) {
	store := NewStore(time.Hour)
	identity := domainuser.Identity{ID: "u1", Nickname: "Vecina", Colonia: "Roma Norte", City: "Ciudad de México", State: "CDMX"}

	token := store.Put(identity)
	if token == "" {
		t.Fatal("token must not be empty")
	}
	got, ok := store.Resolve(token)
	if !ok || got != identity {
		t.Fatalf("Resolve = %+v, %v", got, ok)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	store := NewStore(time.Hour)
	if _, ok := store.Resolve("nope"); ok {
		t.Fatal("unknown token must not resolve")
	}
}

func TestExpiredTokenIsDropped(t *testing.T) {
	store := NewStore(time.Millisecond)
	token := store.Put(domainuser.Identity{ID: "u1"})
	time.Sleep(5 * time.Millisecond)
	if _, ok := store.Resolve(token); ok {
		t.Fatal("expired token must not resolve")
	}
}

func TestDrop(t *testing.T) {
	store := NewStore(time.Hour)
	token := store.Put(domainuser.Identity{ID: "u1"})
	store.Drop(token)
	if _, ok := store.Resolve(token); ok {
		t.Fatal("dropped token must not resolve")
	}
}
