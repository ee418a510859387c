// Package jdwp implements the wire-level framing for the Java Debug Wire
// Protocol: the 14-byte handshake and the big-endian length-prefixed packet
// format shared by command and reply frames.
package jdwp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Handshake is the fixed ASCII string both ends of a JDWP connection send
// and expect before any framed packet.
const Handshake = "JDWP-Handshake"

// Flag values found in byte 8 of every frame.
const (
	FlagCommand byte = 0x00
	FlagReply   byte = 0x80
)

// Sentinel errors for the framing layer. Per-connection they are fatal on
// the upstream side and connection-local on the downstream side.
var (
	ErrShortRead       = errors.New("jdwp: short read before frame length satisfied")
	ErrMalformedLength = errors.New("jdwp: frame length below minimum for mode")
	ErrHandshakeMismatch = errors.New("jdwp: handshake bytes did not match JDWP-Handshake")
)

// WriteHandshake sends the fixed handshake string.
func WriteHandshake(w io.Writer) error {
	if _, err := io.WriteString(w, Handshake); err != nil {
		return fmt.Errorf("write handshake: %w", err)
	}
	return nil
}

// ReadHandshake reads exactly len(Handshake) bytes and verifies they match.
func ReadHandshake(r io.Reader) error {
	buf := make([]byte, len(Handshake))
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("read handshake: %w", shortReadIfEOF(err))
	}
	if !bytes.Equal(buf, []byte(Handshake)) {
		return fmt.Errorf("received %q: %w", buf, ErrHandshakeMismatch)
	}
	return nil
}

func shortReadIfEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortRead
	}
	return err
}
