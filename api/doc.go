// Package api implements the REST surface of the game server.
//
// Server wraps a gorilla/mux router around the service layer:
//
//	POST   /api/sessions              create a session (optional pack_id)
//	GET    /api/sessions              list sessions
//	GET    /api/sessions/{id}         session details
//	DELETE /api/sessions/{id}         delete a session
//	GET    /api/sessions/{id}/state   current game state
//	POST   /api/sessions/{id}/move    move the player
//	POST   /api/sessions/{id}/answer  answer the active puzzle
//	POST   /api/sessions/{id}/reset   restart the session
//	GET    /api/sessions/{id}/history paginated move history
//	GET    /api/packs                 list content packs
//	GET    /api/packs/{name}          content pack details
//	GET    /api/health                health check
//	GET    /ws?session={id}           WebSocket state stream
//
// All responses are JSON. State-changing handlers push the fresh state
// snapshot to the WebSocket hub so connected viewers stay in sync.
package api
