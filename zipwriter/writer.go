// Package zipwriter streams a ZIP64 archive, compressing each entry's body
// with package deflate, to any pluggable output Stream. It never buffers a
// whole file in memory and never seeks or rewrites a byte it has already
// handed to the sink.
package zipwriter

import (
	"bytes"
	"errors"
	"log"
	"time"

	"github.com/zipflow/zipflow/deflate"
)

const debug = false

func printf(format string, a ...interface{}) {
	if debug {
		log.Printf(format, a...)
	}
}

var (
	// ErrClosed is returned by BeginFile on a Writer past Finish. Write and
	// WriteText report ErrNoCurrentFile then, and a repeated Finish returns
	// the sink's error.
	ErrClosed = errors.New("zipwriter: archive is finished")

	// ErrNoCurrentFile is returned by Write/WriteText when no file is open.
	ErrNoCurrentFile = errors.New("zipwriter: no file is open")

	// ErrEmptyName is returned by BeginFile for an empty name.
	ErrEmptyName = errors.New("zipwriter: file name is empty")
)

type writerState int

const (
	stateIdle writerState = iota
	stateInFile
	stateFinished
)

// Writer is a streaming ZIP64 archive in progress. Create one with Create
// or CreateWithStream, drive it through BeginFile/Write/WriteText, and call
// Finish exactly once.
type Writer struct {
	sink *sink
	enc  *deflate.Encoder

	dosTime uint16
	dosDate uint16

	cdBuf    bytes.Buffer
	numFiles uint64

	state   writerState
	curName fileName
	curOff  uint64
}

// Create opens path for sequential writing and returns a new archive.
func Create(path string) (*Writer, error) {
	stream, err := NewFileStream(path)
	if err != nil {
		return nil, err
	}
	return CreateWithStream(stream)
}

// CreateWithStream creates an archive backed by a caller-supplied Stream.
// The archive's timestamp is captured once, now, from local wall clock, and
// reused for every entry (spec §4.G).
func CreateWithStream(stream Stream) (*Writer, error) {
	if stream.Write == nil {
		return nil, errors.New("zipwriter: stream has no Write function")
	}
	now := time.Now()
	w := &Writer{
		sink:    newSink(stream),
		dosTime: encodeDOSTime(now),
		dosDate: encodeDOSDate(now),
	}
	w.enc = deflate.NewEncoder(w.sink)
	return w, nil
}

// BeginFile starts a new entry named name. If a file is already open, it is
// ended first (as if the caller had not called Write again). Names longer
// than 0xFFFE bytes are silently truncated.
func (w *Writer) BeginFile(name string) error {
	if w.state == stateFinished {
		return ErrClosed
	}
	if w.state == stateInFile {
		w.endFile()
	}
	if name == "" {
		return ErrEmptyName
	}

	w.curName.set(name)
	w.curOff = w.sink.offset
	printf("zipwriter: begin file %q at offset %d", name, w.curOff)

	_, err := w.sink.Write(encodeLocalFileHeader(w.curName.bytes(), w.dosTime, w.dosDate))
	w.enc.Reset(w.sink)
	if beginErr := w.enc.Begin(); err == nil {
		err = beginErr
	}

	// The file count and its eventual central-directory entry roll forward
	// even if the header write above failed (spec §9 open question, option a).
	w.numFiles++
	w.state = stateInFile
	return err
}

// Write appends payload bytes to the current entry. It fails with
// ErrNoCurrentFile if no file is open.
func (w *Writer) Write(p []byte) (int, error) {
	if w.state != stateInFile {
		return 0, ErrNoCurrentFile
	}
	return w.enc.Write(p)
}

// WriteText is a convenience equal to Write([]byte(s)).
func (w *Writer) WriteText(s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// endFile closes out the current entry: flushes the remaining DEFLATE
// stage, emits the data descriptor, and appends a central-directory entry.
func (w *Writer) endFile() {
	w.enc.Close()
	w.sink.Write(encodeDataDescriptor(w.enc.CRC32()))

	entry := encodeCentralFileHeader(
		w.curName.bytes(), w.dosTime, w.dosDate,
		w.enc.CRC32(), w.enc.CompressedSize(), w.enc.UncompressedSize(),
		w.curOff,
	)
	w.cdBuf.Write(entry)
	w.state = stateIdle
}

// Finish ends the current entry if one is open, writes the central
// directory followed by EOCD64, its locator, and the legacy EOCD, then
// closes the sink. The returned error is the first sink failure observed
// across the archive's lifetime, if any. Finish always tears down
// resources regardless of prior errors and is safe to call more than once.
func (w *Writer) Finish() error {
	if w.state == stateFinished {
		return w.sink.stream.Err
	}
	if w.state == stateInFile {
		w.endFile()
	}

	cdOffset := w.sink.offset
	w.sink.Write(w.cdBuf.Bytes())
	cdSize := uint64(w.cdBuf.Len())

	eocd64Offset := w.sink.offset
	w.sink.Write(encodeEOCD64(w.numFiles, cdSize, cdOffset))
	w.sink.Write(encodeEOCD64Locator(eocd64Offset))
	w.sink.Write(encodeEOCD())

	closeErr := w.sink.close()
	w.state = stateFinished

	if w.sink.stream.Err != nil {
		return w.sink.stream.Err
	}
	return closeErr
}
