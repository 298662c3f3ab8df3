// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deflate

import "math/bits"

// reverseBits reverses the low codeBits bits of code. Canonical Huffman
// codes are transmitted MSB-first; bitWriter.add consumes bits LSB-first, so
// every fixed-Huffman symbol and 5-bit distance code is reversed before
// being queued.
func reverseBits(code uint32, codeBits uint) uint32 {
	return uint32(bits.Reverse16(uint16(code) << ((16 - codeBits) & 15)))
}
