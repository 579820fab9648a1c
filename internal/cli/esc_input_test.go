package cli

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	*bytes.Reader
}

func (fakeTerminal) Fd() uintptr { return 0 }

func newFakeEscReader(data []byte, pending bool) *escBackReader {
	r := newEscBackReader(fakeTerminal{bytes.NewReader(data)})
	r.hasPending = func(uintptr, time.Duration) bool { return pending }
	return r
}

func TestEscBackReader_LoneEscape(t *testing.T) {
	r := newFakeEscReader([]byte{escByte}, false)

	buf := make([]byte, 4)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	assert.Equal(t, ctrlCByte, buf[0])
	assert.True(t, r.takeBack())
	assert.False(t, r.takeBack())
}

func TestEscBackReader_EscapeWithPendingInput(t *testing.T) {
	r := newFakeEscReader([]byte{'a', escByte}, true)

	buf := make([]byte, 4)
	n, err := r.Read(buf)
	require.NoError(t, err)

	assert.Equal(t, []byte{'a', escByte}, buf[:n])
	assert.False(t, r.takeBack())
}

func TestEscBackReader_SequenceInOneRead(t *testing.T) {
	r := newFakeEscReader([]byte{escByte, '[', 'A'}, false)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{escByte, '[', 'A'}, out)
	assert.False(t, r.takeBack())
}

func TestEscBackReader_PipeArrowSequence(t *testing.T) {
	reader, writer, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = reader.Close()
		_ = writer.Close()
	})

	go func() {
		_, _ = writer.Write([]byte{escByte, '[', 'A'})
		_ = writer.Close()
	}()

	out, err := io.ReadAll(newEscBackReader(reader))
	require.NoError(t, err)
	assert.Equal(t, []byte{escByte, '[', 'A'}, out)
}
