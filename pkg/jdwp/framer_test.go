package jdwp

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriteFrameReadFrameRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		mode Mode
		pkt  Packet
	}{
		{"command no payload", ModeCommand, Packet{Length: 8, ID: 7, Payload: nil}},
		{"command with payload", ModeCommand, Packet{Length: 11, ID: 42, Payload: []byte{1, 2, 3}}},
		{"reply minimal", ModeReply, Packet{Length: 11, ID: 42, Payload: []byte{0x80, 0x00, 0x00}}},
		{"reply with data", ModeReply, Packet{Length: 14, ID: 42, Payload: []byte{0x80, 0x00, 0x00, 9, 9, 9}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFrame(&buf, tc.pkt, tc.mode); err != nil {
				t.Fatalf("WriteFrame: %v", err)
			}

			got, err := ReadFrame(&buf, tc.mode)
			if err != nil {
				t.Fatalf("ReadFrame: %v", err)
			}

			if got.Length != tc.pkt.Length || got.ID != tc.pkt.ID {
				t.Fatalf("got %+v, want %+v", got, tc.pkt)
			}
			if !bytes.Equal(got.Payload, tc.pkt.Payload) {
				t.Fatalf("payload mismatch: got %v, want %v", got.Payload, tc.pkt.Payload)
			}
		})
	}
}

func TestReadFrameMalformedLength(t *testing.T) {
	var buf bytes.Buffer
	// length=4, which is below the command minimum of 8.
	buf.Write([]byte{0, 0, 0, 4, 0, 0, 0, 1})

	_, err := ReadFrame(&buf, ModeCommand)
	if !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("got %v, want ErrMalformedLength", err)
	}
}

func TestReadFrameReplyRequiresElevenBytes(t *testing.T) {
	var buf bytes.Buffer
	// length=8 is a valid command frame but too short for a reply.
	buf.Write([]byte{0, 0, 0, 8, 0, 0, 0, 1})

	_, err := ReadFrame(&buf, ModeReply)
	if !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("got %v, want ErrMalformedLength", err)
	}
}

func TestReadFrameShortRead(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 11, 0, 0, 0, 1, 0x80}) // header says 11 bytes total, only 1 payload byte present

	_, err := ReadFrame(&buf, ModeReply)
	if !errors.Is(err, ErrShortRead) {
		t.Fatalf("got %v, want ErrShortRead", err)
	}
}

func TestHandshakeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHandshake(&buf); err != nil {
		t.Fatalf("WriteHandshake: %v", err)
	}
	if err := ReadHandshake(&buf); err != nil {
		t.Fatalf("ReadHandshake: %v", err)
	}
}

func TestReadHandshakeMismatch(t *testing.T) {
	r := bytes.NewReader([]byte("not-the-handshake0000"))
	err := ReadHandshake(r)
	if !errors.Is(err, ErrHandshakeMismatch) {
		t.Fatalf("got %v, want ErrHandshakeMismatch", err)
	}
}

func TestReadHandshakeShortRead(t *testing.T) {
	r := bytes.NewReader([]byte("short"))
	err := ReadHandshake(r)
	if !errors.Is(err, ErrShortRead) && !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want a short-read error", err)
	}
}

func TestPacketFlags(t *testing.T) {
	p := Packet{Payload: []byte{FlagReply, 0, 0}}
	if p.Flags() != FlagReply {
		t.Fatalf("got %x, want FlagReply", p.Flags())
	}

	empty := Packet{}
	if empty.Flags() != 0 {
		t.Fatalf("got %x, want 0 for empty payload", empty.Flags())
	}
}
