// Package deflate implements a fixed-Huffman DEFLATE encoder purpose-built
// for streaming ZIP64 archives: a 32 KiB sliding window, a chained hash
// table for match search, lazy one-step-lookahead matching, and a single
// fixed-Huffman block per call to Close. It favors a small, simple
// implementation over an optimal one (see package matchlen for the
// word-at-a-time match-length inner loop).
package deflate

import (
	"io"

	"github.com/zipflow/zipflow/crc32"
	"github.com/zipflow/zipflow/matchlen"
)

// Encoder streams one DEFLATE-compressed file body to dst. Create one with
// NewEncoder and Reset it (cheaply, without reallocating the window or hash
// chains) between files.
type Encoder struct {
	win window
	hc  hashChains
	bw  bitWriter

	crc              uint32
	uncompressedSize uint64
}

// NewEncoder returns an Encoder ready to compress a stream to dst. Call
// Begin before the first Write.
func NewEncoder(dst io.Writer) *Encoder {
	e := &Encoder{}
	e.Reset(dst)
	return e
}

// Reset rebinds the encoder to dst and clears all per-file state: the
// window cursor, hash chains (cleared, not freed), bit accumulator, CRC
// and size counters. Safe to call between files on the same Encoder.
func (e *Encoder) Reset(dst io.Writer) {
	e.win.reset()
	e.hc.reset()
	e.bw.reset(dst)
	e.crc = 0
	e.uncompressedSize = 0
}

// Begin emits the single DEFLATE block header used for every entry:
// BFINAL=1, BTYPE=01 (fixed Huffman).
func (e *Encoder) Begin() error {
	e.bw.add(1, 1) // BFINAL
	e.bw.add(1, 2) // BTYPE = fixed Huffman
	return e.bw.err
}

// Write feeds caller bytes into the sliding window, running an encode pass
// each time a full 32 KiB stage accumulates. It never buffers more than one
// stage of input regardless of how large p is.
func (e *Encoder) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		if e.bw.err != nil {
			return total - len(p), e.bw.err
		}
		n := e.win.fill(p)
		p = p[n:]
		if e.win.full() {
			e.encodeStage()
		}
	}
	return total, e.bw.err
}

// Close flushes any partial stage, emits the end-of-block symbol, pads to a
// byte boundary, and flushes the staging buffer to the sink.
func (e *Encoder) Close() error {
	if e.win.cursor > 0 {
		e.encodeStage()
	}
	e.huffmanSymbol(endOfBlock)
	e.bw.padToByte()
	e.bw.flushStaging()
	return e.bw.err
}

// CRC32 returns the finalized CRC-32 of all bytes written so far.
func (e *Encoder) CRC32() uint32 { return e.crc }

// UncompressedSize returns the total bytes passed to Write.
func (e *Encoder) UncompressedSize() uint64 { return e.uncompressedSize }

// CompressedSize returns the bytes flushed to the sink for this file's
// body, not counting the local header or data descriptor.
func (e *Encoder) CompressedSize() uint64 { return e.bw.compressedSize }

// Err returns the first sink write error encountered, if any.
func (e *Encoder) Err() error { return e.bw.err }

// encodeStage runs one DEFLATE pass over the current stage contents (full
// 32 KiB, or a shorter final stage on Close), updates the running CRC and
// uncompressed size, and slides the window and hash chains down for the
// next stage.
func (e *Encoder) encodeStage() {
	data := e.win.stage()
	n := len(data)

	i := 0
	for i+minMatchLen <= n {
		key := data[i : i+3]
		length, dist, ok := e.findMatch(data, i, n)
		e.hc.insert(key, i+historySize)
		if ok && i+1+minMatchLen <= n {
			// Lazy matching: if position i+1 yields a strictly longer
			// match, take the literal at i instead. The chain entry for i
			// just inserted above is itself a valid candidate here, exactly
			// as in the reference encoder.
			if nextLen, _, nextOK := e.findMatch(data, i+1, n); nextOK && nextLen > length {
				ok = false
			}
		}
		if ok {
			e.emitMatch(length, dist)
			i += length
		} else {
			e.huffmanLiteral(data[i])
			i++
		}
	}
	for ; i < n; i++ {
		e.huffmanLiteral(data[i])
	}

	e.crc = crc32.Update(e.crc, data)
	e.uncompressedSize += uint64(n)

	e.win.slide()
	e.hc.slide()
	printf("deflate: stage of %d bytes encoded, crc=%08x", n, e.crc)
}

// emitMatch writes the length/distance symbol pair for a match of the given
// length and distance.
func (e *Encoder) emitMatch(length, dist int) {
	j := lengthCode(length)
	e.huffmanSymbol(257 + j)
	if lengthExtra[j] > 0 {
		e.bw.add(uint32(length-int(lengthBase[j])), uint(lengthExtra[j]))
	}
	k := distCode(dist)
	e.bw.add(reverseBits(uint32(k), 5), 5)
	if distExtra[k] > 0 {
		e.bw.add(uint32(dist-int(distBase[k])), uint(distExtra[k]))
	}
}

// findMatch searches the hash chain for the 3-byte key at stage position i
// (data is the current stage, n its length) and returns the longest match,
// breaking ties toward the most recently inserted candidate (later wins).
func (e *Encoder) findMatch(data []byte, i, n int) (length, distance int, ok bool) {
	key := data[i : i+3]
	curAbs := i + historySize

	maxMatch := maxMatchLen
	if n-i < maxMatch {
		maxMatch = n - i
	}

	best := minMatchLen
	bestAbs := -1
	for _, o := range e.hc.chain(key) {
		cand := int(o)
		if cand <= i {
			continue
		}
		dist := curAbs - cand
		if dist > maxDistance {
			continue
		}
		l := matchlen.MatchLen(e.win.buf[cand:], e.win.buf[curAbs:], maxMatch)
		if l >= best {
			best = l
			bestAbs = cand
		}
	}
	if bestAbs < 0 {
		return 0, 0, false
	}
	return best, curAbs - bestAbs, true
}
