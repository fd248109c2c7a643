// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
//
// This interface supports both CLI and [MCP] server modes, allowing seamless
// switching between human-readable output and structured logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints an informational message.
	Printf(format string, v ...any)
	// Println prints an informational message.
	Println(v ...any)
	// Errorf formats and prints a non-fatal failure, e.g. an issuer that could not be downloaded.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger writing to stderr with timestamps disabled,
// so that rendered hierarchies on stdout can be piped.
func NewCLILogger() *CLILogger {
	return &CLILogger{logger: log.New(os.Stderr, "", 0)}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Errorf prints a log message prefixed with "error: ".
func (c *CLILogger) Errorf(format string, v ...any) {
	c.logger.Print("error: " + fmt.Sprintf(format, v...))
}

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// MCPLogger implements Logger for [MCP] server mode.
// It suppresses output by default since MCP communication happens over stdio,
// but can be configured to write JSON lines to a separate destination.
//
// MCPLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type MCPLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// entry is one JSON log line.
type entry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewMCPLogger creates a new [MCP] logger.
// When silent is true, or writer is nil, nothing is written.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewMCPLogger(writer io.Writer, silent bool) *MCPLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &MCPLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf logs an "info" line.
func (m *MCPLogger) Printf(format string, v ...any) { m.write("info", fmt.Sprintf(format, v...)) }

// Println logs an "info" line.
func (m *MCPLogger) Println(v ...any) { m.write("info", fmt.Sprint(v...)) }

// Errorf logs an "error" line.
func (m *MCPLogger) Errorf(format string, v ...any) { m.write("error", fmt.Sprintf(format, v...)) }

// write encodes one line through a pooled buffer and emits it with a single Write.
func (m *MCPLogger) write(level, msg string) {
	if m.silent {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// Encoding a struct of strings cannot fail.
	_ = json.NewEncoder(buf).Encode(entry{
		Time:    time.Now().UTC().Format(time.RFC3339),
		Level:   level,
		Message: msg,
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	_, _ = m.writer.Write(buf.Bytes())
}

// SetOutput sets the output destination for the MCP logger.
// A nil writer discards output.
func (m *MCPLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w == nil {
		w = io.Discard
	}
	m.writer = w
}
