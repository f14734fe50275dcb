package session

import (
	"sync"
	"testing"
	"time"

	"relicquest/game/engine"
)

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	pack := engine.DefaultContentPack()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", pack)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Error("Expected engine to be initialized")
		}
		if session.Engine.GetHealth() != engine.MaxHealth {
			t.Errorf("Expected a fresh game at full health, got %d", session.Engine.GetHealth())
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", pack)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID == "" {
			t.Error("Expected auto-generated session ID")
		}
		if len(session.ID) != 8 {
			t.Errorf("Expected 8-character session ID, got %d characters", len(session.ID))
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", pack)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", pack)
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid pack", func(t *testing.T) {
		if _, err := manager.Create("bad-pack", &engine.ContentPack{}); err == nil {
			t.Error("Expected error for an empty content pack")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	pack := engine.DefaultContentPack()

	created, err := manager.Create("lookup", pack)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("existing session", func(t *testing.T) {
		session, err := manager.Get("lookup")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance back")
		}
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		session, err := manager.Get("LOOKUP")
		if err != nil {
			t.Fatalf("Failed to get session with uppercase ID: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance back")
		}
	})

	t.Run("missing session", func(t *testing.T) {
		if _, err := manager.Get("missing"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	pack := engine.DefaultContentPack()

	manager.Create("doomed", pack)

	if err := manager.Delete("DOOMED"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("doomed"); err != ErrSessionNotFound {
		t.Errorf("Expected session gone after delete, got %v", err)
	}
	if err := manager.Delete("doomed"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound for double delete, got %v", err)
	}
}

func TestManager_ListAndCount(t *testing.T) {
	manager := NewManager()
	pack := engine.DefaultContentPack()

	if manager.Count() != 0 {
		t.Errorf("Expected empty manager, got %d sessions", manager.Count())
	}

	manager.Create("a", pack)
	manager.Create("b", pack)
	manager.Create("c", pack)

	if manager.Count() != 3 {
		t.Errorf("Expected 3 sessions, got %d", manager.Count())
	}
	if len(manager.List()) != 3 {
		t.Errorf("Expected 3 sessions listed, got %d", len(manager.List()))
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	pack := engine.DefaultContentPack()

	session, _ := manager.Create("touch", pack)
	before := session.LastAccessedAt

	time.Sleep(10 * time.Millisecond)
	if err := manager.UpdateLastAccessed("touch"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected LastAccessedAt to advance")
	}

	if err := manager.UpdateLastAccessed("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	pack := engine.DefaultContentPack()

	stale, _ := manager.Create("stale", pack)
	manager.Create("fresh", pack)

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, err := manager.Get("stale"); err != ErrSessionNotFound {
		t.Error("Expected the stale session to be gone")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Errorf("Expected the fresh session to survive: %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	pack := engine.DefaultContentPack()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", pack)
			if err != nil {
				t.Errorf("Concurrent create failed: %v", err)
				return
			}
			if _, err := manager.Get(session.ID); err != nil {
				t.Errorf("Concurrent get failed: %v", err)
			}
			manager.UpdateLastAccessed(session.ID)
		}()
	}
	wg.Wait()

	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions after concurrent creates, got %d", manager.Count())
	}
}
