package proxy

import (
	"bufio"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go.makar.dev/proxy/internal/queue"
	"go.makar.dev/proxy/pkg/backplane"
	"go.makar.dev/proxy/pkg/proto/packet/clientbound"
)

// Backplane owns the one persistent TCP connection to the upstream
// application server. It lowers inbound ProxyBoundPacket events into
// client-protocol frames routed through Players, and serializes outbound
// ServerBoundPacket events from Connections onto the wire.
type Backplane struct {
	conn    net.Conn
	log     *zap.Logger
	players *Players
	out     *queue.Bounded // of backplane.ServerBoundPacket
	done    chan struct{} // closed once readLoop exits
}

// DialBackplane connects to addr and starts the actor's read and write
// loops. A returned error means the dial failed; Proxy's backplane
// supervisor retries it after a one-second pause.
func DialBackplane(addr string, players *Players, log *zap.Logger) (*Backplane, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return newBackplane(conn, players, log), nil
}

// newBackplane starts the actor's read and write loops over an
// already-established connection. Split out from DialBackplane so tests
// can supply a net.Pipe instead of dialing a real socket.
func newBackplane(conn net.Conn, players *Players, log *zap.Logger) *Backplane {
	b := &Backplane{
		conn:    conn,
		log:     log.Named("backplane"),
		players: players,
		out:     queue.NewBounded(100),
		done:    make(chan struct{}),
	}
	go b.writeLoop()
	go b.readLoop()
	return b
}

// Done is closed once the backplane connection has been torn down,
// letting a supervisor redial.
func (b *Backplane) Done() <-chan struct{} {
	return b.done
}

// Send enqueues p for delivery upstream. Blocks if the outbound queue is
// full, the same backpressure every other queue in the proxy applies.
func (b *Backplane) Send(p backplane.ServerBoundPacket) {
	b.out.Push(p)
}

func (b *Backplane) writeLoop() {
	w := bufio.NewWriter(b.conn)
	for {
		v, ok := b.out.Pop()
		if !ok {
			return
		}
		p := v.(backplane.ServerBoundPacket)
		frame, err := backplane.EncodeServerBound(p)
		if err != nil {
			b.log.Error("encoding server-bound packet", zap.Error(err))
			continue
		}
		if _, err := w.Write(frame); err != nil {
			b.log.Warn("writing to upstream, closing backplane", zap.Error(err))
			_ = b.conn.Close()
			return
		}
		if err := w.Flush(); err != nil {
			b.log.Warn("flushing to upstream, closing backplane", zap.Error(err))
			_ = b.conn.Close()
			return
		}
	}
}

func (b *Backplane) readLoop() {
	defer func() {
		b.out.Close()
		_ = b.conn.Close()
		close(b.done)
	}()
	r := bufio.NewReader(b.conn)
	for {
		payload, err := backplane.ReadFrame(r)
		if err != nil {
			b.log.Info("backplane connection closed", zap.Error(err))
			return
		}
		pkt, err := backplane.DecodeProxyBound(payload)
		if err != nil {
			b.log.Warn("decoding proxy-bound packet", zap.Error(err))
			continue
		}
		b.lower(pkt)
	}
}

// lower turns one upstream event into the client-protocol frames it
// implies and routes each through Players to the named player's socket.
func (b *Backplane) lower(pkt backplane.ProxyBoundPacket) {
	switch p := pkt.(type) {
	case backplane.JoinGame:
		frame, err := clientbound.EncodeFrame(clientbound.JoinGame{
			EntityID:         p.EntityID,
			Gamemode:         p.Gamemode,
			Dimension:        p.Dimension,
			Difficulty:       p.Difficulty,
			MaxPlayers:       p.MaxPlayers,
			LevelType:        p.LevelType,
			ReducedDebugInfo: p.ReducedDebugInfo,
		})
		if err != nil {
			b.log.Error("encoding JoinGame", zap.Error(err))
			return
		}
		b.players.Send(p.Player, frame)

	case backplane.ChatMessage:
		frame, err := clientbound.EncodeFrame(clientbound.ChatMessage{
			JSON:     p.JSON,
			Position: p.Position,
		})
		if err != nil {
			b.log.Error("encoding ChatMessage", zap.Error(err))
			return
		}
		b.players.Send(p.Player, frame)

	case backplane.Title:
		b.lowerTitle(p.Player, p.Action)

	default:
		b.log.Warn("unhandled proxy-bound packet type")
	}
}

// lowerTitle pushes contiguous frames in the order required by the spec's
// Title-lowering rule: optional SetTitle, optional SetSubtitle, then
// always SetTimes for a Set; exactly one frame for Hide/Reset.
func (b *Backplane) lowerTitle(player uuid.UUID, action backplane.TitleAction) {
	switch a := action.(type) {
	case backplane.Set:
		if a.Title != nil {
			b.sendTitle(player, clientbound.SetTitle{Chat: *a.Title})
		}
		if a.Subtitle != nil {
			b.sendTitle(player, clientbound.SetSubtitle{Chat: *a.Subtitle})
		}
		b.sendTitle(player, clientbound.SetTimes{FadeIn: a.FadeIn, Stay: a.Stay, FadeOut: a.FadeOut})
	case backplane.Hide:
		b.sendTitle(player, clientbound.Hide{})
	case backplane.Reset:
		b.sendTitle(player, clientbound.Reset{})
	default:
		b.log.Warn("unhandled title action")
	}
}

func (b *Backplane) sendTitle(player uuid.UUID, action clientbound.TitleAction) {
	frame, err := clientbound.EncodeFrame(clientbound.Title{Action: action})
	if err != nil {
		b.log.Error("encoding Title", zap.Error(err))
		return
	}
	b.players.Send(player, frame)
}
