package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/permission"
	"github.com/probelab/lanscope/internal/probe"
	"github.com/probelab/lanscope/internal/shared/id"
	"github.com/probelab/lanscope/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Any page on the LAN may watch the stream; the browser's own
		// permission gate governs what it can probe.
		return true
	},
}

// Recorder receives stream metrics. A nil Recorder disables recording.
type Recorder interface {
	RecordWSMessage(direction, msgType string)
	IncWSConnections()
	DecWSConnections()
}

// connection is one subscribed client. Writes are serialized because
// broadcasts arrive from probe and refresh goroutines concurrently with
// read-loop replies.
type connection struct {
	clientID string

	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *connection) send(msg types.StreamMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Handler fans probe transitions and permission refreshes out to every
// connected stream client.
type Handler struct {
	lifecycle *probe.Lifecycle
	reader    *permission.Reader
	log       *logging.Logger
	rec       Recorder

	mu    sync.Mutex
	conns map[*connection]struct{}
}

// NewHandler creates a stream handler and subscribes it to the lifecycle
// and the permission reader.
func NewHandler(lifecycle *probe.Lifecycle, reader *permission.Reader, log *logging.Logger, rec Recorder) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	h := &Handler{
		lifecycle: lifecycle,
		reader:    reader,
		log:       log.Component("stream"),
		rec:       rec,
		conns:     make(map[*connection]struct{}),
	}

	lifecycle.Watch(func(outcome types.RequestOutcome) {
		h.broadcast(types.StreamMessage{
			Type:      "probe",
			Outcome:   &outcome,
			Timestamp: time.Now().Unix(),
		})
	})
	reader.Watch(func(snapshot types.PermissionSnapshot) {
		h.broadcast(types.StreamMessage{
			Type:       "permission",
			Permission: &snapshot,
			Timestamp:  time.Now().Unix(),
		})
	})

	return h
}

// HandleConnection upgrades the request and serves the stream until the
// client disconnects. The hello message carries the current outcome and
// permission snapshot so clients start synchronized.
func (h *Handler) HandleConnection(c *gin.Context) {
	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := &connection{
		clientID: id.NewClientID().String(),
		conn:     raw,
	}
	h.register(conn)
	defer h.unregister(conn)

	outcome := h.lifecycle.Outcome()
	snapshot := h.reader.Current()
	h.reply(conn, types.StreamMessage{
		Type:       "hello",
		ClientID:   conn.clientID,
		Outcome:    &outcome,
		Permission: &snapshot,
		Message:    "Connected to lanscope state stream",
		Timestamp:  time.Now().Unix(),
	})

	for {
		var msg types.StreamMessage
		if err := raw.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read error", zap.String("client_id", conn.clientID), zap.Error(err))
			}
			return
		}
		if h.rec != nil {
			h.rec.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "ping":
			h.reply(conn, types.StreamMessage{Type: "pong", Timestamp: time.Now().Unix()})
		case "status":
			outcome := h.lifecycle.Outcome()
			snapshot := h.reader.Current()
			h.reply(conn, types.StreamMessage{
				Type:       "status",
				Outcome:    &outcome,
				Permission: &snapshot,
				Timestamp:  time.Now().Unix(),
			})
		default:
			h.reply(conn, types.StreamMessage{
				Type:      "error",
				Message:   "unknown message type",
				Timestamp: time.Now().Unix(),
			})
		}
	}
}

// ClientCount returns the number of connected stream clients.
func (h *Handler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Handler) register(conn *connection) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	if h.rec != nil {
		h.rec.IncWSConnections()
	}
	h.log.Debug("stream client connected", zap.String("client_id", conn.clientID))
}

func (h *Handler) unregister(conn *connection) {
	h.mu.Lock()
	_, present := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if !present {
		return
	}

	conn.conn.Close()
	if h.rec != nil {
		h.rec.DecWSConnections()
	}
	h.log.Debug("stream client disconnected", zap.String("client_id", conn.clientID))
}

func (h *Handler) reply(conn *connection, msg types.StreamMessage) {
	if err := conn.send(msg); err != nil {
		h.log.Debug("websocket write failed", zap.String("client_id", conn.clientID), zap.Error(err))
		return
	}
	if h.rec != nil {
		h.rec.RecordWSMessage("out", msg.Type)
	}
}

// broadcast sends one message to every live connection. Connections whose
// writes fail are dropped; their read loops unwind on the closed socket.
func (h *Handler) broadcast(msg types.StreamMessage) {
	h.mu.Lock()
	conns := make([]*connection, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.send(msg); err != nil {
			h.log.Debug("dropping stream client", zap.String("client_id", conn.clientID), zap.Error(err))
			h.unregister(conn)
			continue
		}
		if h.rec != nil {
			h.rec.RecordWSMessage("out", msg.Type)
		}
	}
}
