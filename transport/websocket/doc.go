// Package websocket pushes live game updates to connected clients.
//
// The package uses a hub-and-spoke model: a central Hub tracks clients
// grouped by session ID, and every state change (move, answer, reset)
// is fanned out as a JSON message to the clients watching that session.
// Inbound client messages are ignored; the connection is kept alive with
// ping/pong.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded:
//   - {session_id, event: "state_update", game_state: {...}}
//   - {session_id, event: "<custom>", data: {...}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a state change
//	hub.BroadcastToSession(sessionID, engineSnapshot)
package websocket
