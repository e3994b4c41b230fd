package kafka

import (
	"io"
	"log"
)

// Logger is the interface the client logs through. It is satisfied by the
// standard library's *log.Logger, so the zero-configuration default is to
// leave it as a no-op and let callers point it at their own logger.
type Logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// StdLogger is the default Config.Logger; the engine reports a failed
// post-bootstrap metadata refresh through it. Silent by default.
var StdLogger Logger = log.New(io.Discard, "[kafka] ", log.LstdFlags)

// DebugLogger additionally logs one line per frame dispatch() sends or
// reads, including the correlation id; the line for a sent request also
// carries its byte length. Off by default; assign a
// *log.Logger to trace wire traffic.
var DebugLogger Logger = log.New(io.Discard, "[kafka-debug] ", log.LstdFlags|log.Lmicroseconds)
