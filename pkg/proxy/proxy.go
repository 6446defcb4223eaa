// Package proxy implements the Minecraft 1.8.8 protocol-translating
// reverse proxy: an Acceptor binds the client-facing listener and spawns a
// connection per socket, a Players registry tracks live outbound
// channels, and a Backplane actor bridges the proxy to the single
// upstream application server.
package proxy

import (
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go.makar.dev/proxy/pkg/config"
)

// Proxy is the top-level handle returned to cmd/makar. Run blocks serving
// client connections until Shutdown is called or the listener errors.
type Proxy struct {
	cfg     config.Config
	log     *zap.Logger
	players *Players

	shuttingDown atomic.Bool

	listenerMu sync.RWMutex // protects listener, set once acceptLoop binds
	listener   net.Listener
	ready      chan struct{} // closed once listener is bound

	backplaneMu sync.RWMutex // protects backplane, replaced on redial
	backplane   *Backplane
}

// New builds a Proxy but does not yet bind a listener or dial upstream;
// call Run to do both.
func New(cfg config.Config, log *zap.Logger) *Proxy {
	return &Proxy{cfg: cfg, log: log, ready: make(chan struct{})}
}

// Run binds the client-facing listener, dials the backplane, and accepts
// connections until Shutdown is called or the listener errors. It also
// supervises the backplane connection, redialing it if upstream drops,
// until Shutdown is requested.
func (p *Proxy) Run() error {
	players := NewPlayers(p.log)
	p.players = players

	g := new(errgroup.Group)
	g.Go(func() error {
		err := p.acceptLoop()
		if err != nil {
			p.Shutdown()
		}
		return err
	})
	g.Go(func() error { return p.superviseBackplane() })
	return g.Wait()
}

func (p *Proxy) acceptLoop() error {
	ln, err := net.Listen("tcp", p.cfg.Bind)
	if err != nil {
		return err
	}
	p.listenerMu.Lock()
	p.listener = ln
	p.listenerMu.Unlock()
	close(p.ready)
	p.log.Info("listening for client connections", zap.String("bind", p.cfg.Bind))

	for {
		c, err := ln.Accept()
		if err != nil {
			if p.shuttingDown.Load() || isClosedListenerErr(err) {
				p.log.Info("listener closed, shutting down")
				return nil
			}
			return err
		}
		bp := p.currentBackplane()
		if bp == nil {
			// No upstream connection yet; refuse the socket rather than
			// leave the client hanging mid-handshake.
			_ = c.Close()
			continue
		}
		conn := newConnection(c, p.cfg, p.players, bp, p.log)
		go conn.serve()
	}
}

// superviseBackplane keeps one live Backplane connection, redialing with a
// short backoff whenever upstream drops, until Shutdown is requested. The
// spec leaves restart policy to "the surrounding process supervisor"; this
// is that supervisor.
func (p *Proxy) superviseBackplane() error {
	for {
		if p.shuttingDown.Load() {
			return nil
		}
		bp, err := DialBackplane(p.cfg.Backplane, p.players, p.log)
		if err != nil {
			p.log.Warn("dialing backplane, retrying", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		p.setCurrentBackplane(bp)

		<-bp.Done()
		if p.shuttingDown.Load() {
			return nil
		}
		p.log.Warn("backplane connection lost, redialing")
	}
}

func (p *Proxy) currentBackplane() *Backplane {
	p.backplaneMu.RLock()
	defer p.backplaneMu.RUnlock()
	return p.backplane
}

func (p *Proxy) setCurrentBackplane(bp *Backplane) {
	p.backplaneMu.Lock()
	defer p.backplaneMu.Unlock()
	p.backplane = bp
	if p.shuttingDown.Load() {
		_ = bp.conn.Close()
	}
}

// Shutdown stops accepting new connections, closes the current backplane
// connection, and tells the backplane supervisor not to redial. In-flight
// client connections finish on their own; the proxy does not force-close
// them.
func (p *Proxy) Shutdown() {
	p.shuttingDown.Store(true)
	p.listenerMu.RLock()
	ln := p.listener
	p.listenerMu.RUnlock()
	if ln != nil {
		_ = ln.Close()
	}
	if bp := p.currentBackplane(); bp != nil {
		_ = bp.conn.Close()
	}
}

// Addr blocks until the client-facing listener is bound and returns its
// address. Used by tests that need a live port before dialing in.
func (p *Proxy) Addr() net.Addr {
	<-p.ready
	p.listenerMu.RLock()
	defer p.listenerMu.RUnlock()
	return p.listener.Addr()
}

func isClosedListenerErr(err error) bool {
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return netErr.Err.Error() == "use of closed network connection"
	}
	return false
}
