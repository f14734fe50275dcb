// Package mcp exposes the game to AI agents over the Model Context
// Protocol.
//
// Client is a thin MCP server that proxies every tool call to the REST
// API, so MCP agents and HTTP clients always observe the same state.
//
// MCP Tools:
//   - create_session: Create a new game session with optional pack selection
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - game_state: Get current game state with grid visualization
//   - move: Execute a single directional move
//   - submit_answer: Answer the active puzzle
//   - reset_game: Reset game to initial state
//   - move_history: Retrieve move history with pagination
//   - list_packs: List available content packs
//   - game_instructions: Get comprehensive game instructions and rules
//   - describe_room: Get detailed info about a discovered grid room
//
// Transport Modes:
//
// The server supports stdio for local MCP clients and HTTP for remote
// integration; both are wired up in main.
package mcp
