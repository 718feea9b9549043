// Package sender streams a finished program to a machine controller,
// either directly over a serial port or through an SPJS websocket
// bridge.
package sender

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/tarm/serial"
)

// ErrReset is returned when the controller resets before the whole
// program was acknowledged.
var ErrReset = errors.New("controller reset")

// commandLines splits a program into the lines worth transmitting.
// Comment and blank lines are dropped and inline comments stripped;
// the controller would only count them against its receive buffer.
func commandLines(program string) []string {
	var out []string
	for _, line := range strings.Split(program, "\n") {
		if i := strings.Index(line, ";"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Serial sends a program line by line, waiting for each line's
// ok/error acknowledgement before sending the next.
type Serial struct {
	rw   io.ReadWriteCloser
	scan *bufio.Scanner
}

// DialSerial opens the named serial port at the given baud rate.
func DialSerial(name string, baud int) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, err
	}
	return NewSerial(port), nil
}

// NewSerial wraps an existing connection.
func NewSerial(rw io.ReadWriteCloser) *Serial {
	return &Serial{rw: rw, scan: bufio.NewScanner(rw)}
}

func (s *Serial) Close() error { return s.rw.Close() }

// Send writes the program line by line, blocking on each
// acknowledgement.
func (s *Serial) Send(program string) error {
	for _, line := range commandLines(program) {
		_, err := s.rw.Write([]byte(line + "\n"))
		if err != nil {
			return err
		}
		err = s.awaitAck()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Serial) awaitAck() error {
	for s.scan.Scan() {
		data := s.scan.Bytes()
		switch {
		case bytes.Equal(data, []byte("ok")):
			return nil
		case bytes.HasPrefix(data, []byte("error:")):
			return errors.New(strings.TrimSpace(string(data)))
		case bytes.HasPrefix(data, []byte("Grbl")):
			return ErrReset
		}
		// status chatter; keep waiting
	}
	if err := s.scan.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
