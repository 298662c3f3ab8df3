package deflate

import (
	"bytes"
	"compress/flate"
	"io"
	"math/rand"
	"testing"
)

// roundTrip compresses data with an Encoder and decompresses the result
// with the standard library's flate reader, since the fixed-Huffman,
// single-block streams this package produces are valid RFC 1951 DEFLATE.
func roundTrip(t *testing.T, data []byte) {
	t.Helper()

	var compressed bytes.Buffer
	enc := NewEncoder(&compressed)
	if err := enc.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := enc.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got, want := enc.UncompressedSize(), uint64(len(data)); got != want {
		t.Errorf("UncompressedSize() = %d, want %d", got, want)
	}
	if got, want := enc.CompressedSize(), uint64(compressed.Len()); got != want {
		t.Errorf("CompressedSize() = %d, want %d (actual bytes written)", got, want)
	}

	r := flate.NewReader(&compressed)
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate.Reader: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round-trip mismatch: got %d bytes, want %d bytes", len(got), len(data))
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripShort(t *testing.T) {
	roundTrip(t, []byte("hello"))
}

func TestRoundTripRepeated(t *testing.T) {
	roundTrip(t, bytes.Repeat([]byte{0}, 65536))
}

func TestRoundTripExactlyOneStage(t *testing.T) {
	data := make([]byte, stageSize)
	rng := rand.New(rand.NewSource(1))
	rng.Read(data)
	roundTrip(t, data)
}

func TestRoundTripMultipleStages(t *testing.T) {
	data := make([]byte, stageSize*3+17)
	rng := rand.New(rand.NewSource(2))
	rng.Read(data)
	roundTrip(t, data)
}

func TestRoundTripChunkedWrites(t *testing.T) {
	data := make([]byte, stageSize+1000)
	rng := rand.New(rand.NewSource(3))
	rng.Read(data)

	var compressed bytes.Buffer
	enc := NewEncoder(&compressed)
	if err := enc.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for i := 0; i < len(data); i++ {
		if _, err := enc.Write(data[i : i+1]); err != nil {
			t.Fatalf("Write at %d: %v", i, err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := flate.NewReader(&compressed)
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate.Reader: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("chunked round-trip mismatch")
	}
}

func TestRoundTripTextWithRepeats(t *testing.T) {
	text := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 500)
	roundTrip(t, text)
	var compressed bytes.Buffer
	enc := NewEncoder(&compressed)
	enc.Begin()
	enc.Write(text)
	enc.Close()
	if compressed.Len() >= len(text) {
		t.Errorf("compressed size %d did not shrink repetitive input of %d bytes", compressed.Len(), len(text))
	}
}

func TestResetReusesEncoder(t *testing.T) {
	enc := NewEncoder(io.Discard)
	enc.Begin()
	enc.Write([]byte("first file"))
	enc.Close()
	firstCRC := enc.CRC32()

	var compressed bytes.Buffer
	enc.Reset(&compressed)
	enc.Begin()
	enc.Write([]byte("hello"))
	enc.Close()

	if enc.CRC32() == firstCRC {
		t.Errorf("CRC32 after Reset unexpectedly matches previous file")
	}
	if want := uint32(0x3610a686); enc.CRC32() != want {
		t.Errorf("CRC32() = %#08x, want %#08x", enc.CRC32(), want)
	}

	r := flate.NewReader(&compressed)
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate.Reader: %v", err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}
