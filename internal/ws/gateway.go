package ws

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sketchparty/internal/lobby"
)

// Gateway wires HTTP and websocket routes to the lobby registry. It maps
// inbound actions onto engine calls and reports engine errors back to the
// originating client as action_error events.
type Gateway struct {
	reg *lobby.Registry
	hub *Hub
}

func NewGateway(reg *lobby.Registry, hub *Hub) *Gateway {
	return &Gateway{reg: reg, hub: hub}
}

// Register mounts all routes on app.
func (g *Gateway) Register(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:code", websocket.New(g.handleConn))

	app.Post("/lobby/create", g.createLobby)
	app.Get("/api/lobbies", g.listLobbies)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
}

func (g *Gateway) createLobby(c *fiber.Ctx) error {
	var body struct {
		Name       string `json:"name"`
		MaxPlayers int    `json:"maxPlayers"`
		IsPrivate  bool   `json:"isPrivate"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	l, err := g.reg.Create(lobby.CreateParams{
		Name:       body.Name,
		MaxPlayers: body.MaxPlayers,
		IsPrivate:  body.IsPrivate,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"code": l.Code})
}

func (g *Gateway) listLobbies(c *fiber.Ctx) error {
	return c.JSON(g.reg.ListPublic())
}

// handleConn runs for the lifetime of one websocket connection. The player
// joins the lobby named in the path on connect and leaves when the socket
// dies, whichever way it dies.
func (g *Gateway) handleConn(conn *websocket.Conn) {
	code := conn.Params("code")
	name := conn.Query("name")
	if name == "" {
		name = "anonymous"
	}

	l, err := g.reg.FindByCode(code)
	if err != nil {
		zap.S().Debugf("ws: join rejected, no lobby %s", code)
		conn.Close()
		return
	}

	player := lobby.NewPlayer(name)
	client := newClient(player.ID, conn)
	g.hub.add(code, client)

	if err := l.AddPlayer(player); err != nil {
		// The pumps never start on a rejected join, so write the error
		// straight to the socket.
		if raw, ok := encode(lobby.EventActionError, lobby.ErrorData{Message: err.Error()}); ok {
			conn.WriteMessage(websocket.TextMessage, raw)
		}
		g.hub.remove(code, player.ID)
		client.cleanup()
		return
	}

	go client.readPump(func(msg WSMessage) bool {
		return g.dispatch(l, player.ID, msg)
	})
	client.writePump()

	g.hub.remove(code, player.ID)
	l.RemovePlayer(player.ID)
}

// dispatch routes one inbound message. Returning false closes the
// connection.
func (g *Gateway) dispatch(l *lobby.Lobby, playerID string, msg WSMessage) bool {
	switch msg.Type {
	case msgStartGame:
		if err := l.StartGame(); err != nil {
			g.sendError(l.Code, playerID, err)
		}

	case msgGuess:
		var p guessPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			zap.S().Debugf("ws: bad guess payload from %s: %v", playerID, err)
			return true
		}
		l.SubmitGuess(playerID, p.Text)

	case msgStroke, msgDrawPoint, msgClearCanvas:
		l.ForwardDrawing(playerID, msg.Type, msg.Data)

	case msgKick:
		var p kickPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return true
		}
		if err := l.Kick(playerID, p.TargetID); err != nil {
			g.sendError(l.Code, playerID, err)
			return true
		}
		g.hub.disconnect(l.Code, p.TargetID)

	case msgLeave:
		return false

	default:
		zap.S().Debugf("ws: unknown message type %q from %s", msg.Type, playerID)
	}
	return true
}

func (g *Gateway) sendError(code, playerID string, err error) {
	// Engine errors are recoverable and local; the caller just gets told.
	var msg string
	switch {
	case errors.Is(err, lobby.ErrLobbyFull):
		msg = "lobby is full"
	case errors.Is(err, lobby.ErrInsufficientPlayers):
		msg = "need at least 2 players to start"
	case errors.Is(err, lobby.ErrNotAuthorized):
		msg = "only the lobby creator can do that"
	default:
		msg = err.Error()
	}
	g.hub.ForLobby(code).To(playerID, lobby.EventActionError, lobby.ErrorData{Message: msg})
}
