// Package service defines the game's service layer.
//
// GameService is the boundary surface consumed by every transport (REST
// API, WebSocket pushes, MCP tools): session lifecycle plus the three
// game entry points: move, answer submission, and reset. Transports
// never touch an engine directly; they receive read-only state snapshots
// so the engine's grid cannot be mutated from outside.
//
// The package also defines the SessionManager and PackManager contracts
// the service depends on, and the DTO types (MoveResult, AnswerResult,
// GameEvent, history pagination) shared across transports.
package service
