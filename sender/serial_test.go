package sender

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePort struct {
	in     *bytes.Buffer
	out    bytes.Buffer
	closed bool
}

func newFakePort(responses string) *fakePort {
	return &fakePort{in: bytes.NewBufferString(responses)}
}

func (f *fakePort) Read(p []byte) (int, error)  { return f.in.Read(p) }
func (f *fakePort) Write(p []byte) (int, error) { return f.out.Write(p) }
func (f *fakePort) Close() error                { f.closed = true; return nil }

func TestSerial_Send(t *testing.T) {
	port := newFakePort("ok\nok\n")
	s := NewSerial(port)

	err := s.Send("; header\n\nG21 ; Set units to millimeters\nG0 X1.0000 ; Rapid move to x=1.0000\n")
	assert.NoError(t, err)
	assert.Equal(t, "G21\nG0 X1.0000\n", port.out.String())

	assert.NoError(t, s.Close())
	assert.True(t, port.closed)
}

func TestSerial_Send_IgnoresChatter(t *testing.T) {
	port := newFakePort("<Idle|MPos:0.000,0.000,0.000>\nok\n")
	s := NewSerial(port)

	assert.NoError(t, s.Send("G21\n"))
}

func TestSerial_Send_Error(t *testing.T) {
	port := newFakePort("error:20\n")
	s := NewSerial(port)

	err := s.Send("G99\n")
	assert.EqualError(t, err, "error:20")
}

func TestSerial_Send_Reset(t *testing.T) {
	port := newFakePort("Grbl 1.1f ['$' for help]\n")
	s := NewSerial(port)

	err := s.Send("G21\n")
	assert.Equal(t, ErrReset, err)
}

func TestSerial_Send_EOF(t *testing.T) {
	port := newFakePort("")
	s := NewSerial(port)

	assert.Error(t, s.Send("G21\n"))
}

func TestSerial_Send_NothingToSend(t *testing.T) {
	port := newFakePort("")
	s := NewSerial(port)

	assert.NoError(t, s.Send("; only comments\n\n"))
	assert.Equal(t, "", port.out.String())
}
