package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"relicquest/game/engine"
	"relicquest/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Relic Quest",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Relic Quest - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Explore a 5x5 vault, claim all 3 relics by solving their puzzles, then
answer the vault's final question. Health runs out if you hit too many
traps or miss too many answers.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current game state with map
- move: Single move (up/down/left/right) - requires intent explanation
- submit_answer: Answer the active puzzle
- reset_game: Reset to initial state
- move_history: View past moves
- list_packs: List available content packs
- game_instructions: Get comprehensive game instructions and rules
- describe_room: Get detailed info about a discovered room

NOTE: The 'intent' parameter on move/submit_answer serves as rubber duck
debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional content pack selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the content pack to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_answer",
		Description: "Answer the puzzle currently blocking input",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"answer": map[string]interface{}{
					"type":        "string",
					"description": "Answer text (case-insensitive, surrounding whitespace ignored)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you believe this answer is right (serves as a rubber duck)",
				},
			},
			Required: []string{"session_id", "answer"},
		},
	}, c.handleSubmitAnswer)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List available content packs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPacks)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_room",
		Description: "Get detailed information about a grid room. Only discovered rooms reveal their contents; undiscovered rooms stay hidden.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the room to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the room to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeRoom)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	packID, _ := args["pack_id"].(string)

	body := map[string]string{}
	if packID != "" {
		body["pack_id"] = packID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPack: %s\n\n%s",
		session.ID, session.PackName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		mode := ""
		if s.GameState != nil {
			mode = string(s.GameState.Mode)
		}
		result += fmt.Sprintf("- %s (Pack: %s, Mode: %s, Created: %s)\n",
			s.ID, s.PackName, mode, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent serves as rubber duck debugging - no further processing needed
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleSubmitAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	answer, _ := args["answer"].(string)
	intent, _ := args["intent"].(string)
	_ = intent

	body := map[string]interface{}{
		"answer": answer,
	}

	var result service.AnswerResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/answer", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatAnswerResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var packs []service.PackInfo
	err := c.apiCall("GET", "/api/packs", nil, &packs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Content Packs:\n\n"
	for _, pack := range packs {
		result += fmt.Sprintf("• %s (id: %s)\n  %s\n  Puzzles: %d\n\n",
			pack.Name, pack.PackID, pack.Description, pack.PuzzleCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Relic Quest - Complete Instructions

GAME OBJECTIVE:
Explore the 5x5 vault, claim all 3 relics by solving their puzzles, then
open the vault room and answer its final question to win.

GAME MECHANICS:
• Movement: up/down/left/right, one room per move. Pushing against an
  outer wall is a no-op.
• Discovery: a room's contents trigger the first time you enter it.
  Traps fire once; re-entering a sprung trap room is safe.
• Relics: each relic room opens a puzzle (riddle, word scramble, or
  quiz). Solve it to claim the relic, earn gold and experience, and
  recover some health.
• Traps: deal 20-29 damage on first entry. At 0 health the run ends.
• Wrong answers: cost 10 health and the puzzle stays open. If a wrong
  answer leaves you at 10 health or less, the run ends immediately.
• Puzzles block movement: while a puzzle is open, the only way forward
  is submit_answer.
• The vault (bottom-right corner) stays locked until all 3 relics are
  claimed. Solving its final puzzle chains into one last bonus
  question; answering that wins the game and pays out the final reward.

MAP LEGEND:
• @ - your current position
• S - start room
• R - relic room (r once its relic is claimed)
• X - sprung trap
• V - the vault (final room)
• . - explored empty room
• ? - unexplored room

UNDISCOVERED ROOMS ARE HIDDEN: the map only shows what you have
entered. Use describe_room on explored coordinates for details.

STRATEGY NOTES FOR AI AGENTS:
- The three relics sit in the corners away from the vault; the vault is
  at the bottom-right. Plan sweeps that cover unexplored rooms on the
  way rather than backtracking.
- Watch health_risk in the state output. DANGER means one wrong answer
  ends the run - step carefully and reason about the puzzle before
  answering.
- Quiz puzzles include their options in the puzzle text. Scrambles ask
  you to unscramble a word; answer with the unscrambled word.
- Answers are case-insensitive and surrounding whitespace is ignored,
  but they must otherwise match exactly. Guessing burns health.
- A reset regenerates the whole vault: trap positions, which puzzle
  each relic guards, and ambient events all reroll.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 8-character ID
- Sessions maintain independent state and content pack

Good luck in the vault!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	gridSize := len(state.Grid)
	if x < 0 || x >= gridSize || y < 0 || y >= gridSize {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Grid size is %dx%d (0-%d for both x and y)",
			x, y, gridSize, gridSize, gridSize-1)), nil
	}

	room := state.Grid[y][x]

	if !room.Discovered {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Room at (%d, %d) has not been explored yet. Move there to discover what it holds.", x, y)), nil
	}

	var kind, description string
	switch room.Kind {
	case engine.RoomStart:
		kind = "Start"
		description = "The room where the run began. Nothing else here."
	case engine.RoomEmpty:
		if room.Event != nil {
			kind = "Empty (with ambient event)"
			description = fmt.Sprintf("An empty chamber. Its ambient event (%s) already fired on first entry.", room.Event.Kind)
		} else {
			kind = "Empty"
			description = "An empty chamber. Safe to pass through."
		}
	case engine.RoomRelic:
		if state.SolvedRelics[room.RelicID] {
			kind = "Relic (claimed)"
			description = fmt.Sprintf("Relic %d has already been claimed. The room is quiet now.", room.RelicID)
		} else {
			kind = "Relic"
			description = fmt.Sprintf("Relic %d rests here behind a %s puzzle. Enter to face it.", room.RelicID, room.PuzzleType)
		}
	case engine.RoomTrap:
		kind = "Trap (sprung)"
		description = "A trap that already fired. Re-entering is safe."
	case engine.RoomFinal:
		if state.RelicsCollected < engine.RelicCount {
			kind = "Vault (locked)"
			description = fmt.Sprintf("The vault door. Locked until all relics are claimed (%d/%d).",
				state.RelicsCollected, engine.RelicCount)
		} else {
			kind = "Vault"
			description = "The vault door. All relics claimed; entering poses the final question."
		}
	}

	playerNote := ""
	if x == state.PlayerPos.X && y == state.PlayerPos.Y {
		playerNote = "\nYou are standing here."
	}

	result := fmt.Sprintf("Room at (%d, %d):\nType: %s\n%s%s", x, y, kind, description, playerNote)
	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPack: %s\nCreated: %s\n\n%s",
		session.ID, session.PackName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Health: %d/%d | Relics: %d/%d | Gold: %d | XP: %d | Moves: %d\n",
		state.PlayerPos.X, state.PlayerPos.Y,
		state.Health, state.MaxHealth,
		state.RelicsCollected, engine.RelicCount,
		state.Gold, state.Experience, state.TotalMoves))
	result.WriteString(fmt.Sprintf("Mode: %s\n", state.Mode))

	if state.HealthRisk != "" {
		result.WriteString(fmt.Sprintf("Health risk: %s\n", state.HealthRisk))
	}
	result.WriteString("\n")

	// Map: only discovered rooms reveal their contents
	result.WriteString(formatGrid(state))

	if state.ActivePuzzle != nil {
		p := state.ActivePuzzle
		result.WriteString(fmt.Sprintf("\nACTIVE PUZZLE (%s %s):\n%s\n", p.Tag, p.Puzzle.Type, p.Puzzle.Question))
		if len(p.Puzzle.Options) > 0 {
			result.WriteString("Options: " + strings.Join(p.Puzzle.Options, ", ") + "\n")
		}
		result.WriteString("Use submit_answer to respond.\n")
	}

	switch state.Mode {
	case engine.ModeWon:
		result.WriteString(fmt.Sprintf("\nVICTORY! Title earned: %s\n", state.Title))
	case engine.ModeLost:
		result.WriteString("\nGAME OVER\n")
	}

	if state.Narrative != "" {
		result.WriteString(fmt.Sprintf("\nNarrative: %s", state.Narrative))
	}

	return result.String()
}

func formatGrid(state *engine.GameState) string {
	var b strings.Builder
	for y := range state.Grid {
		for x := range state.Grid[y] {
			if x == state.PlayerPos.X && y == state.PlayerPos.Y {
				b.WriteString("@")
				continue
			}
			b.WriteString(roomChar(state, state.Grid[y][x]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// roomChar returns the map character for a room, hiding undiscovered ones
func roomChar(state *engine.GameState, room engine.Room) string {
	if !room.Discovered {
		return "?"
	}
	switch room.Kind {
	case engine.RoomStart:
		return "S"
	case engine.RoomRelic:
		if state.SolvedRelics[room.RelicID] {
			return "r"
		}
		return "R"
	case engine.RoomTrap:
		return "X"
	case engine.RoomFinal:
		return "V"
	default:
		return "."
	}
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "Move successful\n"
	} else {
		response = "Move failed\n"
	}

	if result.Step != nil {
		s := result.Step
		response += fmt.Sprintf("Step: %s (%d,%d)->(%d,%d) room=%s health=%d\n",
			s.Dir, s.From.X, s.From.Y, s.To.X, s.To.Y, s.RoomKind, s.HealthAfter)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	if len(result.PossibleMoves) > 0 {
		response += "Possible moves: " + strings.Join(result.PossibleMoves, ",") + "\n"
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatAnswerResult(result *service.AnswerResult) string {
	response := ""
	if result.Correct {
		response = "Correct!\n"
	} else {
		response = "Wrong answer\n"
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "ok"
		if !move.Success {
			status = "blocked"
		}
		result += fmt.Sprintf("%d. %s %s [Health: %d]\n",
			move.MoveNumber, move.Action, status, move.Health)
	}

	return result
}
