// Package wsapi implements the /ws realtime protocol of spec.md §6,
// grounded on the register/unregister/broadcast manager pattern used
// for WebSocket fan-out elsewhere in the example pack.
package wsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	marsmission "github.com/neoragex2002/mars-mission"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub owns a Simulator subscription per client and relays commands
// into the simulator, and ticks out into the client's send channel.
type Hub struct {
	engine    *marsmission.Engine
	simulator *marsmission.Simulator
	logger    log.Logger
}

// NewHub builds a Hub bound to engine and simulator.
func NewHub(engine *marsmission.Engine, simulator *marsmission.Simulator) *Hub {
	return &Hub{engine: engine, simulator: simulator, logger: marsmission.NewLogger("wsapi")}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// ServeHTTP upgrades the connection, sends the initial "init" message,
// then starts the read and write pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Log("level", "error", "subsys", "wsapi", "status", "upgrade failed", "err", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBufferSize), hub: h}

	if err := c.sendInit(); err != nil {
		h.logger.Log("level", "error", "subsys", "wsapi", "status", "init send failed", "err", err)
		conn.Close()
		return
	}

	sub := h.simulator.Subscribe(c.id)
	go c.pumpTicks(sub)
	go c.writePump()
	c.readPump()
}

func (c *client) sendInit() error {
	info, err := c.hub.simulator.Snapshot()
	if err != nil {
		return err
	}
	earthOrbit, _ := c.hub.engine.GetOrbitPoints("earth", 360)
	marsOrbit, _ := c.hub.engine.GetOrbitPoints("mars", 360)
	earth, _ := marsmission.PlanetByName("earth")
	mars, _ := marsmission.PlanetByName("mars")

	payload := map[string]interface{}{
		"type":              "init",
		"mission_info":      info,
		"planets":           map[string]interface{}{"earth": earth.Elements, "mars": mars.Elements},
		"simulation_state":  c.hub.simulator.State(),
		"earth_orbit":       earthOrbit,
		"mars_orbit":        marsOrbit,
		"current_snapshot":  info,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.send <- data
	return nil
}

// pumpTicks relays the simulator's per-subscriber channel into the
// client's websocket send buffer as "update" messages.
func (c *client) pumpTicks(sub chan marsmission.MissionInfo) {
	for info := range sub {
		state := c.hub.simulator.State()
		msg := map[string]interface{}{
			"type": "update",
		}
		mergeMissionInfo(msg, info)
		msg["simulation"] = map[string]interface{}{
			"time_speed": state.TimeSpeed,
			"paused":     state.Paused,
			"is_running": state.IsRunning,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		select {
		case c.send <- data:
		default:
			// client buffer full; drop this tick rather than block
		}
	}
	close(c.send)
}

func mergeMissionInfo(dst map[string]interface{}, info marsmission.MissionInfo) {
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return
	}
	for k, v := range fields {
		dst[k] = v
	}
}

// clientCommand decodes the command name separately from its numeric
// arguments: speed/time are kept as raw JSON so a per-argument type
// mismatch (e.g. speed:"fast") doesn't discard the command name,
// matching original_source/backend/main.py's generic-parse-then-
// try/except-the-conversion shape.
type clientCommand struct {
	Command string          `json:"command"`
	Speed   json.RawMessage `json:"speed"`
	Time    json.RawMessage `json:"time"`
}

func (c *client) readPump() {
	defer func() {
		c.hub.simulator.Unsubscribe(c.id)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.handleCommand(raw)
	}
}

// handleCommand dispatches a client command per spec.md §6, replying
// with ack/error and (on a state-changing success) an immediate update.
func (c *client) handleCommand(raw []byte) {
	var cmd clientCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		c.sendError("", "Invalid JSON message")
		return
	}

	var err error
	switch cmd.Command {
	case "start":
		c.hub.simulator.Start()
	case "pause":
		c.hub.simulator.Pause()
	case "stop":
		c.hub.simulator.StopSim()
	case "set_speed":
		speed, perr := parseNumericArg(cmd.Speed, 1.0)
		if perr != nil {
			c.sendError(cmd.Command, fmt.Sprintf("Invalid speed: %s", perr))
			return
		}
		err = c.hub.simulator.SetSpeed(speed)
	case "set_time":
		t, perr := parseNumericArg(cmd.Time, 0.0)
		if perr != nil {
			c.sendError(cmd.Command, fmt.Sprintf("Invalid time: %s", perr))
			return
		}
		err = c.hub.simulator.SetTime(t)
	case "get_snapshot":
		info, snapErr := c.hub.simulator.Snapshot()
		if snapErr != nil {
			c.sendError(cmd.Command, snapErr.Error())
			return
		}
		c.sendSnapshot(info)
		return
	default:
		c.sendError(cmd.Command, "Unknown command")
		return
	}

	if err != nil {
		c.sendError(cmd.Command, err.Error())
		return
	}
	c.sendAck(cmd.Command)
	c.sendImmediateUpdate()
}

// parseNumericArg decodes a raw JSON argument as a float64, applying
// def when the argument was omitted, matching original_source/backend/
// main.py's data.get("speed", 1.0) / data.get("time", ...) plus
// try/except(TypeError, ValueError) float conversion.
func parseNumericArg(raw json.RawMessage, def float64) (float64, error) {
	if len(raw) == 0 {
		return def, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%s", string(raw))
	}
	return v, nil
}

func (c *client) sendAck(command string) {
	data, _ := json.Marshal(map[string]string{"type": "ack", "command": command})
	c.send <- data
}

func (c *client) sendError(command, message string) {
	data, _ := json.Marshal(map[string]string{"type": "error", "command": command, "message": message})
	c.send <- data
}

func (c *client) sendSnapshot(info marsmission.MissionInfo) {
	data, _ := json.Marshal(map[string]interface{}{"type": "snapshot", "data": info})
	c.send <- data
}

func (c *client) sendImmediateUpdate() {
	info, err := c.hub.simulator.Snapshot()
	if err != nil {
		return
	}
	state := c.hub.simulator.State()
	msg := map[string]interface{}{"type": "update"}
	mergeMissionInfo(msg, info)
	msg["simulation"] = map[string]interface{}{
		"time_speed": state.TimeSpeed,
		"paused":     state.Paused,
		"is_running": state.IsRunning,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.send <- data
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
