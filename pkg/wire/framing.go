package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/privacyzk/privacyzk/config"
)

// Stream is the external transport/mux collaborator this package
// depends on but does not implement: a bidirectional, closable byte
// pipe with independent read/write deadlines, matching the shape a
// libp2p-style mux stream already presents.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// ReadTimeout and WriteTimeout are the per-frame I/O deadlines; StreamTimeout
// bounds an entire responder-side request/response exchange.
var (
	ReadTimeout    = time.Duration(config.ReadTimeoutSeconds) * time.Second
	WriteTimeout   = time.Duration(config.WriteTimeoutSeconds) * time.Second
	StreamTimeout  = time.Duration(config.StreamTimeoutSeconds) * time.Second
	ConnectTimeout = time.Duration(config.OutboundConnectTimeoutSeconds) * time.Second
)

// WriteFrame writes a 4-byte big-endian length prefix followed by
// payload, under timeout. payload must already be within MaxFrameBytes;
// this is the last line of defense, not the primary size check.
func WriteFrame(s Stream, payload []byte, timeout time.Duration) error {
	if len(payload) > config.MaxFrameBytes {
		return sizeErr("write_frame", fmt.Errorf("%d bytes exceeds frame cap %d", len(payload), config.MaxFrameBytes))
	}
	if err := s.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return ioErr("write_frame", err)
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := s.Write(header[:]); err != nil {
		return classifyIOErr("write_frame", err)
	}
	if len(payload) == 0 {
		return nil
	}
	if _, err := s.Write(payload); err != nil {
		return classifyIOErr("write_frame", err)
	}
	return nil
}

// ReadFrame reads a 4-byte big-endian length prefix and exactly that
// many payload bytes, under timeout. A length exceeding MaxFrameBytes is
// rejected before the payload is read, so a hostile peer cannot force
// an unbounded allocation.
func ReadFrame(s Stream, timeout time.Duration) ([]byte, error) {
	if err := s.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, ioErr("read_frame", err)
	}

	var header [4]byte
	if _, err := io.ReadFull(s, header[:]); err != nil {
		return nil, classifyIOErr("read_frame", err)
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > uint32(config.MaxFrameBytes) {
		return nil, sizeErr("read_frame", fmt.Errorf("frame length %d exceeds cap %d", n, config.MaxFrameBytes))
	}
	if n == 0 {
		return []byte{}, nil
	}

	if err := s.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, ioErr("read_frame", err)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(s, payload); err != nil {
		return nil, classifyIOErr("read_frame", err)
	}
	return payload, nil
}

type timeoutLike interface{ Timeout() bool }

func classifyIOErr(op string, err error) error {
	if te, ok := err.(timeoutLike); ok && te.Timeout() {
		return timeoutErr(op, err)
	}
	return ioErr(op, err)
}
