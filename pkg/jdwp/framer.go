package jdwp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Mode distinguishes the minimum valid frame length between a command frame
// (8-byte header) and a reply frame from the JVM (11-byte header: length,
// id, flags, and a 2-byte error code). The flags byte itself is always the
// first byte of Payload in both modes, since it sits at wire offset 8.
type Mode int

const (
	ModeCommand Mode = iota
	ModeReply
)

func (m Mode) minLength() uint32 {
	if m == ModeReply {
		return 11
	}
	return 8
}

// Packet is a single JDWP frame: the 4-byte length, the 4-byte id, and the
// remaining length-8 bytes verbatim. For reply frames the first 3 bytes of
// Payload are the flags byte and 2-byte error code, preserved as opaque
// payload end-to-end rather than parsed out.
type Packet struct {
	Length  uint32
	ID      uint32
	Payload []byte
}

// Flags returns the flags byte (wire offset 8). A reply-mode frame always
// has one (at least 3 payload bytes); a command-mode frame of length 8 has
// no payload, and Flags then returns 0.
func (p Packet) Flags() byte {
	if len(p.Payload) == 0 {
		return 0
	}
	return p.Payload[0]
}

// ReadFrame reads one frame from r. It returns io.EOF if the stream ends
// before the first header byte, fails with ErrShortRead if it ends after
// that but before length bytes are obtained, and ErrMalformedLength if
// length is below the minimum for mode.
func ReadFrame(r io.Reader, mode Mode) (Packet, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		// A clean io.EOF here means the peer closed the connection between
		// frames, not mid-frame, so it is propagated as-is for callers to
		// treat as a normal disconnect; io.ErrUnexpectedEOF (a partial
		// header) is a genuine short read.
		if errors.Is(err, io.EOF) {
			return Packet{}, err
		}
		return Packet{}, fmt.Errorf("read frame header: %w", shortReadIfEOF(err))
	}

	length := binary.BigEndian.Uint32(hdr[0:4])
	id := binary.BigEndian.Uint32(hdr[4:8])

	if length < mode.minLength() {
		return Packet{}, fmt.Errorf("frame length %d below minimum %d for mode: %w", length, mode.minLength(), ErrMalformedLength)
	}

	rest := make([]byte, length-8)
	if _, err := io.ReadFull(r, rest); err != nil {
		return Packet{}, fmt.Errorf("read frame payload: %w", shortReadIfEOF(err))
	}

	return Packet{Length: length, ID: id, Payload: rest}, nil
}

// WriteFrame writes one frame to w. Single-writer ownership of w is what
// makes this atomic with respect to other writes on the same stream;
// WriteFrame itself takes no lock.
func WriteFrame(w io.Writer, p Packet, mode Mode) error {
	if p.Length < mode.minLength() {
		return fmt.Errorf("frame length %d below minimum %d for mode: %w", p.Length, mode.minLength(), ErrMalformedLength)
	}

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], p.Length)
	binary.BigEndian.PutUint32(hdr[4:8], p.ID)

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := w.Write(p.Payload); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	return nil
}
