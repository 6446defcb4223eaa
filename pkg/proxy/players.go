package proxy

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// outboundSender is the channel a Connection drains to its socket. Players
// never writes to a socket directly; it only hands frames to the channel
// the owning Connection already reads from.
type outboundSender chan<- []byte

// playersPut registers id with tx, replacing any existing registration.
type playersPut struct {
	id uuid.UUID
	tx outboundSender
}

// playersDel removes id. A no-op if id isn't registered.
type playersDel struct {
	id uuid.UUID
}

// playersSend pushes frame onto id's outbound channel. Silently dropped if
// id isn't registered; the registration is torn down if the channel turns
// out to be closed.
type playersSend struct {
	id    uuid.UUID
	frame []byte
}

// playersCount asks for the current number of registered players, through
// a one-shot reply channel.
type playersCount struct {
	reply chan<- int
}

type playersCommand interface{ isPlayersCommand() }

func (playersPut) isPlayersCommand()   {}
func (playersDel) isPlayersCommand()   {}
func (playersSend) isPlayersCommand()  {}
func (playersCount) isPlayersCommand() {}

// Players is the process-wide registry from player id to that player's
// outbound channel. It is owned by exactly one goroutine; every other actor
// talks to it only through its command channel, never by touching the map.
type Players struct {
	commands chan playersCommand
	log      *zap.Logger
}

// NewPlayers starts the Players actor and returns a handle to it. The
// command channel is bounded the same as every other queue in the proxy.
func NewPlayers(log *zap.Logger) *Players {
	p := &Players{
		commands: make(chan playersCommand, 100),
		log:      log.Named("players"),
	}
	go p.run()
	return p
}

func (p *Players) run() {
	registry := make(map[uuid.UUID]outboundSender)
	for cmd := range p.commands {
		switch c := cmd.(type) {
		case playersPut:
			registry[c.id] = c.tx
		case playersDel:
			delete(registry, c.id)
		case playersSend:
			tx, ok := registry[c.id]
			if !ok {
				continue
			}
			if !trySend(tx, c.frame) {
				delete(registry, c.id)
			}
		case playersCount:
			select {
			case c.reply <- len(registry):
			default:
				p.log.Warn("count reply channel dropped")
			}
		}
	}
}

// trySend reports whether frame was delivered. It blocks while tx is full.
// A closed channel panics on send, so we recover and report false.
func trySend(tx outboundSender, frame []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	tx <- frame
	return true
}

// Put registers id -> tx, replacing any prior registration.
func (p *Players) Put(id uuid.UUID, tx chan<- []byte) {
	p.commands <- playersPut{id: id, tx: tx}
}

// Del removes id's registration, if any.
func (p *Players) Del(id uuid.UUID) {
	p.commands <- playersDel{id: id}
}

// Send pushes frame to id's outbound channel, dropping it silently if id
// isn't registered.
func (p *Players) Send(id uuid.UUID, frame []byte) {
	p.commands <- playersSend{id: id, frame: frame}
}

// Count returns the current number of registered players.
func (p *Players) Count() int {
	reply := make(chan int, 1)
	p.commands <- playersCount{reply: reply}
	return <-reply
}
