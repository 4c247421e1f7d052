// Package probe es un listener TCP mínimo que contesta a cualquier conexión
// con un texto fijo. Sirve solo para comprobar que un puerto es alcanzable.
package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"mdr-twin-gateway/internal/platform/logger"
)

const (
	DefaultPayload      = "Server is alive"
	DefaultReadTimeout  = 200 * time.Millisecond
	DefaultWriteTimeout = 2 * time.Second
)

type Server struct {
	Payload string
	Logger  logger.Logger

	// ReadTimeout acota cuánto se espera a que el cliente mande algo antes
	// de responder. Lo leído se descarta sin parsear.
	ReadTimeout time.Duration
}

// Response arma la respuesta HTTP/1.1 fija para que curl o un navegador la lean.
func Response(payload string) []byte {
	return []byte("HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Length: " + strconv.Itoa(len(payload)) + "\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		payload)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve atiende conexiones hasta que ctx se cancele (devuelve nil) o Accept falle.
// Cada conexión va en su propia goroutine; Serve espera a que terminen.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := s.Logger
	if log == nil {
		log = logger.Nop()
	}
	payload := s.Payload
	if payload == "" {
		payload = DefaultPayload
	}
	resp := Response(payload)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-done:
		}
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			_ = ln.Close()
			return err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(conn, resp, log)
		}()
	}
}

func (s *Server) handle(conn net.Conn, resp []byte, log logger.Logger) {
	defer conn.Close()

	readTimeout := s.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	// Drenar lo que haya mandado el cliente evita un RST al cerrar con datos sin leer.
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	buf := make([]byte, 4096)
	_, _ = conn.Read(buf)

	_ = conn.SetWriteDeadline(time.Now().Add(DefaultWriteTimeout))
	if _, err := conn.Write(resp); err != nil {
		log.Warn("probe write failed", logger.Fields{"remote": conn.RemoteAddr().String(), "error": err.Error()})
		return
	}
	log.Debug("probe answered", logger.Fields{"remote": conn.RemoteAddr().String()})
}
