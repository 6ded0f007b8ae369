// Package httpd is the final-project web server: a raw TCP listener whose
// per-connection handling runs on a shared thread pool instead of a thread
// per connection. The protocol surface is intentionally tiny — a request
// line is routed onto one of two pages.
package httpd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
	"github.com/google/uuid"

	"github.com/ferranSanchezLlado/threadpool"
)

const (
	acceptRetryInitial = 5 * time.Millisecond
	acceptRetryMax     = 1 * time.Second
)

// Server accepts connections and hands each one to the pool as a job.
// The accept loop itself never blocks on a busy worker.
type Server struct {
	addr       string
	htmlDir    string
	sleepDelay time.Duration
	pool       *threadpool.Pool

	mu sync.Mutex
	ln net.Listener
}

// New wires a server to an existing pool. The pool is owned by the caller;
// the server never stops it.
func New(addr, htmlDir string, sleepDelay time.Duration, pool *threadpool.Pool) *Server {
	return &Server{
		addr:       addr,
		htmlDir:    htmlDir,
		sleepDelay: sleepDelay,
		pool:       pool,
	}
}

// Listen binds the configured address. Split from Serve so callers can
// learn the bound address before traffic starts (":0" in tests).
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("httpd: listen %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return nil
}

// Addr reports the bound listener address, or "" before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Run is Listen followed by Serve.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve accepts until ctx is canceled or the listener fails permanently.
// Transient accept errors are paced with backoff instead of spinning.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("httpd: Serve called before Listen")
	}

	log := lg.FromContext(ctx)
	log.Info("server listening", lg.String("addr", ln.Addr().String()))

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	bo := boff.New(acceptRetryInitial, acceptRetryMax, time.Now().UnixNano())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info("server stopped accepting")
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Temporary() {
				delay := bo.Next()
				log.Warn("accept failed; backing off",
					lg.String("sleep", delay.String()),
					lg.Any("error", err),
				)
				time.Sleep(delay)
				continue
			}
			return fmt.Errorf("httpd: accept: %w", err)
		}
		bo = boff.New(acceptRetryInitial, acceptRetryMax, time.Now().UnixNano())

		id := uuid.NewString()
		if err := s.pool.Execute(func() { s.handle(ctx, id, conn) }); err != nil {
			log.Warn("connection rejected; pool closed", lg.String("conn", id))
			_ = conn.Close()
		}
	}
}

// handle runs on a pool worker: read the request line, route it, answer
// with the page and Content-Length framing, close.
func (s *Server) handle(ctx context.Context, id string, conn net.Conn) {
	defer conn.Close()

	log := lg.FromContext(ctx).With(
		lg.String("conn", id),
		lg.String("remote", conn.RemoteAddr().String()),
	)

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		log.Warn("read request", lg.Any("error", err))
		return
	}

	status, page := s.route(strings.TrimRight(line, "\r\n"))
	body, err := os.ReadFile(filepath.Join(s.htmlDir, page))
	if err != nil {
		log.Error("read page", lg.String("page", page), lg.Any("error", err))
		return
	}

	resp := fmt.Sprintf("%s\r\nContent-Length: %d\r\n\r\n%s", status, len(body), body)
	if _, err := conn.Write([]byte(resp)); err != nil {
		log.Warn("write response", lg.Any("error", err))
		return
	}
	log.Info("served", lg.String("status", status))
}

// route maps a request line onto a status line and page. The table is
// fixed: the root page, a deliberately slow page that exercises the pool
// under concurrent load, and a 404 fallback for everything else.
func (s *Server) route(line string) (status, page string) {
	switch {
	case strings.HasPrefix(line, "GET / HTTP/1.1"):
		return "HTTP/1.1 200 OK", "hello.html"
	case strings.HasPrefix(line, "GET /sleep HTTP/1.1"):
		time.Sleep(s.sleepDelay)
		return "HTTP/1.1 200 OK", "hello.html"
	default:
		return "HTTP/1.1 404 NOT FOUND", "404.html"
	}
}
