// FILE: lixenwraith/dlog/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/dlog"
	"github.com/lixenwraith/dlog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger := dlog.NewLogger()
	err := logger.ApplyConfigString(
		"mode=debug,file",
		"file=fasthttp.log",
		"append=true",
		"level=sockinfo",
		"style=time_inline",
	)
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(dlog.LevelIntInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			requestHandler(logger, ctx)
		},
		Logger: fasthttpAdapter,

		Name:              "dlog-example",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	logger.Print(dlog.LevelState, "Starting server on :8080\n")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Print(dlog.LevelState, "Server stopped: %v\n", err)
	}
}

func requestHandler(logger *dlog.Logger, ctx *fasthttp.RequestCtx) {
	logger.Print(dlog.LevelClients, dlog.Here("%s %s from %s\n"), ctx.Method(), ctx.Path(), ctx.RemoteAddr())

	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	if strings.Contains(msg, "connection cannot be served") {
		return dlog.LevelIntWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return dlog.LevelSockErr
	}

	return compat.DetectLogLevel(msg)
}
