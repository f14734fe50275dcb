// Package session provides in-memory session management for the game.
//
// Manager is a thread-safe store of active sessions keyed by short IDs.
// Each session owns its own engine instance with an independent random
// source, so concurrent sessions never share grid layouts. Sessions are
// purely in-memory; nothing survives a process restart.
//
// Session identifiers are derived from UUIDs and truncated to 8
// characters for easy reference. Lookups are case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", pack)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Stale sessions can be removed with CleanupExpiredSessions, typically
// driven by a background ticker in main.
package session
