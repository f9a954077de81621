// FILE: lixenwraith/dlog/example/gnet/main.go
package main

import (
	"github.com/lixenwraith/dlog"
	"github.com/lixenwraith/dlog/compat"
	"github.com/lixenwraith/dlog/lockorder"
	"github.com/panjf2000/gnet/v2"
)

// Lock levels, innermost first
const (
	regionLock lockorder.Level = iota
	clientsLock
)

// echoServer tracks connected clients the way a remote desktop server would
type echoServer struct {
	gnet.BuiltinEventEngine

	logger    *dlog.Logger
	clientsMu *lockorder.Mutex
	regionMu  *lockorder.Mutex
	clients   map[string]int
	traffic   int
}

func (es *echoServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	es.clientsMu.LockChecked(es.logger, lockorder.DefaultWarning)
	es.clients[c.RemoteAddr().String()] = 0
	n := len(es.clients)
	es.clientsMu.Unlock()

	es.logger.Print(dlog.LevelClients, dlog.Here("Client %s connected, %d total\n"), c.RemoteAddr(), n)
	return nil, gnet.None
}

func (es *echoServer) OnClose(c gnet.Conn, err error) gnet.Action {
	es.clientsMu.LockChecked(es.logger, lockorder.DefaultWarning)
	delete(es.clients, c.RemoteAddr().String())
	es.clientsMu.Unlock()

	if err != nil {
		es.logger.Print(dlog.LevelConnErr, dlog.Here("Client %s dropped: %v\n"), c.RemoteAddr(), err)
	} else {
		es.logger.Print(dlog.LevelClients, dlog.Here("Client %s disconnected\n"), c.RemoteAddr())
	}
	return gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)

	// Clients is the outer lock and region the inner one; the reverse is reported
	es.clientsMu.LockChecked(es.logger, lockorder.DefaultWarning)
	es.regionMu.LockChecked(es.logger, lockorder.DefaultWarning)
	es.clients[c.RemoteAddr().String()] += len(buf)
	es.traffic += len(buf)
	es.regionMu.Unlock()
	es.clientsMu.Unlock()

	if _, err := c.Write(buf); err != nil {
		es.logger.Print(dlog.LevelSockErr, dlog.Here("Write to %s failed: %v\n"), c.RemoteAddr(), err)
	}
	es.logger.Print(dlog.LevelSockInfo, "Echoed %d bytes to %s\n", len(buf), c.RemoteAddr())
	return gnet.None
}

func main() {
	logger, err := dlog.NewBuilder().
		ModeString("debug,file").
		File("gnet-echo.log", false).
		LevelString("all").
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	gnetAdapter, err := compat.NewBuilder().WithLogger(logger).BuildGnet()
	if err != nil {
		panic(err)
	}

	server := &echoServer{
		logger:    logger,
		clientsMu: lockorder.MustNew(clientsLock),
		regionMu:  lockorder.MustNew(regionLock),
		clients:   make(map[string]int),
	}

	logger.Print(dlog.LevelState, "Echo server starting on tcp://127.0.0.1:9000\n")

	err = gnet.Run(
		server,
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Print(dlog.LevelState, "Echo server stopped: %v\n", err)
	}
}
