package proxy

import (
	"bufio"
	"net"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go.makar.dev/proxy/internal/errs"
	"go.makar.dev/proxy/pkg/backplane"
	"go.makar.dev/proxy/pkg/config"
	"go.makar.dev/proxy/pkg/proto"
	"go.makar.dev/proxy/pkg/proto/packet/clientbound"
	"go.makar.dev/proxy/pkg/proto/packet/serverbound"
	"go.makar.dev/proxy/pkg/proto/state"
)

// connection is one accepted client socket, driven through the Handshake
// -> {Status | Login} -> Play state machine. It owns its socket exclusively
// and talks to Players and the Backplane only through their public
// channel-backed APIs.
type connection struct {
	conn      net.Conn
	log       *zap.Logger
	cfg       config.Config
	players   *Players
	backplane *Backplane

	reader *bufio.Reader
	out    chan []byte // capacity 100; owned by writeLoop, closed by readLoop

	st       state.State
	protocol int32

	id       uuid.UUID
	hasID    bool
	username string
}

// newConnection wraps an accepted socket. Call serve to drive it; serve
// blocks until the client disconnects or a fatal protocol error occurs.
func newConnection(c net.Conn, cfg config.Config, players *Players, bp *Backplane, log *zap.Logger) *connection {
	return &connection{
		conn:      c,
		log:       log.With(zap.Stringer("remoteAddr", c.RemoteAddr())),
		cfg:       cfg,
		players:   players,
		backplane: bp,
		reader:    bufio.NewReader(c),
		out:       make(chan []byte, 100),
		st:        state.Handshake,
	}
}

func (c *connection) serve() {
	go c.writeLoop()
	c.readLoop()
}

// writeLoop drains c.out to the socket until the channel is closed by
// readLoop. On a write error it closes the underlying socket so readLoop's
// blocked read unblocks with an error; it never closes c.out itself, since
// readLoop is its sole owner.
func (c *connection) writeLoop() {
	w := bufio.NewWriter(c.conn)
	for frame := range c.out {
		if _, err := w.Write(frame); err != nil {
			if !errs.IsConnClosedErr(err) {
				c.log.Debug("write error, closing connection", zap.Error(err))
			}
			_ = c.conn.Close()
			return
		}
		if err := w.Flush(); err != nil {
			if !errs.IsConnClosedErr(err) {
				c.log.Debug("flush error, closing connection", zap.Error(err))
			}
			_ = c.conn.Close()
			return
		}
	}
}

func (c *connection) readLoop() {
	defer c.disconnect()
	for {
		deadline := time.Now().Add(time.Duration(c.cfg.ReadTimeout) * time.Millisecond)
		_ = c.conn.SetReadDeadline(deadline)

		frame, err := proto.ReadFrame(c.reader)
		if err != nil {
			if !errs.IsConnClosedErr(err) {
				c.log.Debug("connection closed", zap.Error(err))
			}
			return
		}

		pkt, err := serverbound.DecodeFrame(c.st, frame)
		if err != nil {
			c.log.Warn("unknown or malformed packet, closing connection", zap.Error(err))
			return
		}

		if err := c.handle(pkt); err != nil {
			c.log.Warn("fatal connection error", zap.Error(err))
			return
		}
	}
}

// disconnect runs exactly once per connection, on any readLoop exit path:
// it unregisters the player (if one was ever registered) and tears down
// the outbound channel and socket.
func (c *connection) disconnect() {
	if c.hasID {
		c.players.Del(c.id)
	}
	close(c.out)
	_ = c.conn.Close()
}

// handle dispatches one decoded proxy-bound packet per the state machine
// and local-handling rules.
func (c *connection) handle(pkt serverbound.Packet) error {
	switch p := pkt.(type) {
	case serverbound.Handshake:
		c.protocol = p.Protocol
		if p.NextState == 1 {
			c.st = state.Status
		} else {
			c.st = state.Login
		}
		return nil

	case serverbound.StatusRequest:
		return c.sendStatusResponse()

	case serverbound.StatusPing:
		return c.sendStatusPong(p.Payload)

	case serverbound.LoginStart:
		return c.completeLogin(p.Name)

	case serverbound.PlayerPositionAndLook:
		return c.echoPosition(p)

	case serverbound.PlayerPosition, serverbound.PlayerIsOnGround,
		serverbound.PluginMessage, serverbound.KeepAlive:
		// Dropped locally; the proxy performs no physics and drives no
		// keep-alive timer of its own.
		return nil

	case serverbound.ClientSettings:
		if c.hasID {
			c.backplane.Send(backplane.ClientSettings{Player: c.id, Locale: p.Locale})
		}
		return nil

	case serverbound.ChatMessage:
		if c.hasID && c.username != "" {
			c.backplane.Send(backplane.ChatMessage{Player: c.id, Message: p.Message})
		}
		return nil

	default:
		return nil
	}
}

func (c *connection) sendStatusResponse() error {
	online := c.players.Count()
	body := statusJSON(c.cfg, online)
	frame, err := clientbound.EncodeFrame(clientbound.StatusResponse{Status: body})
	if err != nil {
		return err
	}
	c.out <- frame
	return nil
}

// sendStatusPong writes the raw 10-byte frame (length 0x09, id 0x01, the
// echoed u64) directly, bypassing EncodeFrame since its shape is fixed
// rather than derived from a payload buffer.
func (c *connection) sendStatusPong(payload uint64) error {
	var buf [10]byte
	buf[0] = 0x09
	buf[1] = 0x01
	for i := 0; i < 8; i++ {
		buf[2+i] = byte(payload >> uint(56-8*i))
	}
	c.out <- buf[:]
	return nil
}

func (c *connection) completeLogin(username string) error {
	c.id = uuid.New()
	c.hasID = true
	c.username = username

	frame, err := clientbound.EncodeFrame(clientbound.LoginSuccess{
		UUID:     c.id.String(),
		Username: username,
	})
	if err != nil {
		return err
	}
	c.out <- frame

	c.players.Put(c.id, c.out)
	c.backplane.Send(backplane.JoinGameRequest{ID: c.id, Username: username})
	c.st = state.Play
	return nil
}

func (c *connection) echoPosition(p serverbound.PlayerPositionAndLook) error {
	frame, err := clientbound.EncodeFrame(clientbound.PlayerPositionAndLook{
		X:     p.X,
		Y:     p.Y,
		Z:     p.Z,
		Yaw:   p.Yaw,
		Pitch: p.Pitch,
		Flags: 0,
	})
	if err != nil {
		return err
	}
	c.out <- frame
	return nil
}
