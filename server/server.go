// Package server serves sessions to remote clients over ssh.
package server

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/masqdata/masq/flags"
	"github.com/masqdata/masq/session"
	"github.com/masqdata/masq/store"
)

var ErrServerClosed = errors.New("server: closed")

type subServer interface {
	Close() error
	Shutdown(ctx context.Context) error
}

type Server struct {
	Handler func(ses *session.Session, rr io.RuneReader, w io.Writer)
	Store   *store.Store
	Flags   flags.Flags

	mutex     sync.Mutex
	servers   map[subServer]struct{}
	lastSesid uint64
}

func (svr *Server) newSession(user, typ, addr string) *session.Session {
	ses := session.NewSession(svr.Store)
	ses.User = user
	ses.Type = typ
	ses.Addr = addr
	if svr.Flags != nil {
		ses.SetFlags(svr.Flags)
	}
	ses.SetSessionID(atomic.AddUint64(&svr.lastSesid, 1))
	return ses
}

func (svr *Server) addServer(ss subServer) {
	svr.mutex.Lock()
	defer svr.mutex.Unlock()

	if svr.servers == nil {
		svr.servers = map[subServer]struct{}{}
	}
	svr.servers[ss] = struct{}{}
}

// Handle runs one session for a connected client; it returns when the
// client disconnects.
func (svr *Server) Handle(rr io.RuneReader, w io.Writer, user, typ, addr string) {
	svr.Handler(svr.newSession(user, typ, addr), rr, w)
}

// HandleSession runs a session handler, for statement sources that are
// not remote connections: the console, command line statements, and
// statement files.
func (svr *Server) HandleSession(h session.Handler, user, typ, addr string) {
	h(svr.newSession(user, typ, addr))
}

func (svr *Server) Close() error {
	svr.mutex.Lock()
	defer svr.mutex.Unlock()

	var err error
	for ss := range svr.servers {
		cerr := ss.Close()
		if err == nil {
			err = cerr
		}
		delete(svr.servers, ss)
	}
	if svr.Store != nil {
		serr := svr.Store.Close()
		if err == nil {
			err = serr
		}
	}
	return err
}

// Shutdown stops listening and waits for active connections to finish.
func (svr *Server) Shutdown(ctx context.Context) error {
	svr.mutex.Lock()
	servers := make([]subServer, 0, len(svr.servers))
	for ss := range svr.servers {
		servers = append(servers, ss)
	}
	svr.mutex.Unlock()

	var err error
	for _, ss := range servers {
		serr := ss.Shutdown(ctx)
		if err == nil {
			err = serr
		}
	}
	if svr.Store != nil {
		serr := svr.Store.Close()
		if err == nil {
			err = serr
		}
	}
	return err
}
