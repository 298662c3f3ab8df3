package deflate

// RFC 1951 length/distance base+extra-bit tables (§4.F). lengthBase[j] is
// the smallest match length encoded by symbol 257+j; lengthExtra[j] is how
// many extra bits follow. distBase/distExtra are the analogous tables for
// the 5-bit fixed distance codes.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var distBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// lengthCode returns the index j such that lengthBase[j] <= length and
// (j == len(lengthBase)-1 || length < lengthBase[j+1]).
func lengthCode(length int) int {
	j := 0
	for j+1 < len(lengthBase) && length >= int(lengthBase[j+1]) {
		j++
	}
	return j
}

// distCode is the analogous lookup for distances.
func distCode(dist int) int {
	j := 0
	for j+1 < len(distBase) && dist >= int(distBase[j+1]) {
		j++
	}
	return j
}

const endOfBlock = 256

// huffmanSymbol emits the fixed-Huffman code for literal/length symbol n
// (0..287) per RFC 1951 §3.2.6, bit-reversed for the LSB-first bit writer.
func (e *Encoder) huffmanSymbol(n int) {
	switch {
	case n <= 143:
		e.bw.add(reverseBits(uint32(0x30+n), 8), 8)
	case n <= 255:
		e.bw.add(reverseBits(uint32(0x190+n-144), 9), 9)
	case n <= 279:
		e.bw.add(reverseBits(uint32(n-256), 7), 7)
	default:
		e.bw.add(reverseBits(uint32(0xc0+n-280), 8), 8)
	}
}

// huffmanLiteral is huffmanSymbol restricted to 0..255, split out because
// the hot literal-emission path never needs the 256..287 branches.
func (e *Encoder) huffmanLiteral(b byte) {
	if b <= 143 {
		e.bw.add(reverseBits(uint32(0x30+int(b)), 8), 8)
	} else {
		e.bw.add(reverseBits(uint32(0x190+int(b)-144), 9), 9)
	}
}
