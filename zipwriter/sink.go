package zipwriter

import (
	"io"
	"os"
)

// Stream is the user-supplied output sink: a write/close pair plus an
// error flag, mirroring the C callback-struct interface of spec §6. Archive
// output never reenters Stream's own caller; Write/Close are invoked
// synchronously and in order.
type Stream struct {
	UserData any
	Write    func(s *Stream, p []byte) (n int, err error)
	Close    func(s *Stream) error
	Err      error
}

// sink adapts a Stream to io.Writer, tracking the archive's cumulative
// byte offset and a sticky error: once Err is set, every further Write is a
// no-op that returns it, matching spec §4.B's short-circuit behavior.
type sink struct {
	stream Stream
	offset uint64
}

func newSink(s Stream) *sink {
	return &sink{stream: s}
}

func (s *sink) Write(p []byte) (int, error) {
	if s.stream.Err != nil {
		return 0, s.stream.Err
	}
	n, err := s.stream.Write(&s.stream, p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.stream.Err = err
	}
	s.offset += uint64(n)
	return n, err
}

func (s *sink) close() error {
	if s.stream.Close == nil {
		return s.stream.Err
	}
	if err := s.stream.Close(&s.stream); err != nil && s.stream.Err == nil {
		s.stream.Err = err
	}
	return s.stream.Err
}

// NewFileStream returns a Stream backed by a sequential file writer at
// path, the out-of-scope default sink spec §1 calls "a thin wrapper over a
// sequential file writer".
func NewFileStream(path string) (Stream, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Stream{}, err
	}
	return Stream{
		UserData: f,
		Write: func(s *Stream, p []byte) (int, error) {
			return s.UserData.(*os.File).Write(p)
		},
		Close: func(s *Stream) error {
			return s.UserData.(*os.File).Close()
		},
	}, nil
}
