package zipwriter

import "encoding/binary"

// ZIP record signatures (APPNOTE.TXT §4.3).
const (
	sigLocalFileHeader   uint32 = 0x04034b50
	sigCentralFileHeader uint32 = 0x02014b50
	sigEOCD64            uint32 = 0x06064b50
	sigEOCD64Locator     uint32 = 0x07064b50
	sigEOCD              uint32 = 0x06054b50
	zip64ExtraID         uint16 = 0x0001
	methodDeflate        uint16 = 8
	versionNeeded        uint16 = 45
	flagDataDescriptor   uint16 = 0x0008
	sentinel32           uint32 = 0xFFFFFFFF
	sentinel16           uint16 = 0xFFFF
)

// encodeLocalFileHeader builds the 30-byte local file header plus the raw
// name bytes. Sizes and CRC are always zero here; the true values arrive
// later in the data descriptor and central directory, per spec §4.G (flag
// bit 3 is set to say so).
func encodeLocalFileHeader(name []byte, dosTime, dosDate uint16) []byte {
	buf := make([]byte, 30+len(name))
	binary.LittleEndian.PutUint32(buf[0:4], sigLocalFileHeader)
	binary.LittleEndian.PutUint16(buf[4:6], versionNeeded)
	binary.LittleEndian.PutUint16(buf[6:8], flagDataDescriptor)
	binary.LittleEndian.PutUint16(buf[8:10], methodDeflate)
	binary.LittleEndian.PutUint16(buf[10:12], dosTime)
	binary.LittleEndian.PutUint16(buf[12:14], dosDate)
	binary.LittleEndian.PutUint32(buf[14:18], 0) // crc, filled via data descriptor
	binary.LittleEndian.PutUint32(buf[18:22], 0) // comp size, filled via data descriptor
	binary.LittleEndian.PutUint32(buf[22:26], 0) // uncomp size, filled via data descriptor
	binary.LittleEndian.PutUint16(buf[26:28], uint16(len(name)))
	binary.LittleEndian.PutUint16(buf[28:30], 0)
	copy(buf[30:], name)
	return buf
}

// encodeDataDescriptor builds the 12-byte streamed data descriptor. Sizes
// are always the ZIP64 sentinel; the real 64-bit values live only in the
// central directory's ZIP64 extra field (spec §4.G).
func encodeDataDescriptor(crc uint32) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], crc)
	binary.LittleEndian.PutUint32(buf[4:8], sentinel32)
	binary.LittleEndian.PutUint32(buf[8:12], sentinel32)
	return buf
}

// encodeCentralFileHeader builds the 46-byte central directory file header,
// the name, and the always-present 28-byte ZIP64 extra field.
func encodeCentralFileHeader(name []byte, dosTime, dosDate uint16, crc uint32, compSize, uncompSize, localOffset uint64) []byte {
	buf := make([]byte, 46+len(name)+28)
	binary.LittleEndian.PutUint32(buf[0:4], sigCentralFileHeader)
	binary.LittleEndian.PutUint16(buf[4:6], versionNeeded) // version made by: FAT, 4.5
	binary.LittleEndian.PutUint16(buf[6:8], versionNeeded) // version needed
	binary.LittleEndian.PutUint16(buf[8:10], flagDataDescriptor)
	binary.LittleEndian.PutUint16(buf[10:12], methodDeflate)
	binary.LittleEndian.PutUint16(buf[12:14], dosTime)
	binary.LittleEndian.PutUint16(buf[14:16], dosDate)
	binary.LittleEndian.PutUint32(buf[16:20], crc)
	binary.LittleEndian.PutUint32(buf[20:24], sentinel32)
	binary.LittleEndian.PutUint32(buf[24:28], sentinel32)
	binary.LittleEndian.PutUint16(buf[28:30], uint16(len(name)))
	binary.LittleEndian.PutUint16(buf[30:32], 28) // extra field length: the zip64 extra below
	binary.LittleEndian.PutUint16(buf[32:34], 0)  // comment length
	binary.LittleEndian.PutUint16(buf[34:36], 0)  // disk number start
	binary.LittleEndian.PutUint16(buf[36:38], 0)  // internal attributes
	binary.LittleEndian.PutUint32(buf[38:42], 0)  // external attributes
	binary.LittleEndian.PutUint32(buf[42:46], sentinel32)

	n := copy(buf[46:], name)
	extra := buf[46+n:]
	binary.LittleEndian.PutUint16(extra[0:2], zip64ExtraID)
	binary.LittleEndian.PutUint16(extra[2:4], 24)
	binary.LittleEndian.PutUint64(extra[4:12], uncompSize)
	binary.LittleEndian.PutUint64(extra[12:20], compSize)
	binary.LittleEndian.PutUint64(extra[20:28], localOffset)
	return buf
}

// encodeEOCD64 builds the 56-byte ZIP64 end-of-central-directory record.
func encodeEOCD64(numEntries uint64, cdSize, cdOffset uint64) []byte {
	buf := make([]byte, 56)
	binary.LittleEndian.PutUint32(buf[0:4], sigEOCD64)
	binary.LittleEndian.PutUint64(buf[4:12], 44) // size of this record - 12
	binary.LittleEndian.PutUint16(buf[12:14], versionNeeded)
	binary.LittleEndian.PutUint16(buf[14:16], versionNeeded)
	binary.LittleEndian.PutUint32(buf[16:20], 0) // this disk
	binary.LittleEndian.PutUint32(buf[20:24], 0) // disk with start of central dir
	binary.LittleEndian.PutUint64(buf[24:32], numEntries)
	binary.LittleEndian.PutUint64(buf[32:40], numEntries)
	binary.LittleEndian.PutUint64(buf[40:48], cdSize)
	binary.LittleEndian.PutUint64(buf[48:56], cdOffset)
	return buf
}

// encodeEOCD64Locator builds the 20-byte ZIP64 EOCD locator.
func encodeEOCD64Locator(eocd64Offset uint64) []byte {
	buf := make([]byte, 20)
	binary.LittleEndian.PutUint32(buf[0:4], sigEOCD64Locator)
	binary.LittleEndian.PutUint32(buf[4:8], 0) // disk holding EOCD64
	binary.LittleEndian.PutUint64(buf[8:16], eocd64Offset)
	binary.LittleEndian.PutUint32(buf[16:20], 1) // total disks
	return buf
}

// encodeEOCD builds the 22-byte legacy end-of-central-directory record, all
// sentinel fields, so ZIP64-unaware readers know to look for the real one.
func encodeEOCD() []byte {
	buf := make([]byte, 22)
	binary.LittleEndian.PutUint32(buf[0:4], sigEOCD)
	binary.LittleEndian.PutUint16(buf[4:6], sentinel16)
	binary.LittleEndian.PutUint16(buf[6:8], sentinel16)
	binary.LittleEndian.PutUint16(buf[8:10], sentinel16)
	binary.LittleEndian.PutUint16(buf[10:12], sentinel16)
	binary.LittleEndian.PutUint32(buf[12:16], sentinel32)
	binary.LittleEndian.PutUint32(buf[16:20], sentinel32)
	binary.LittleEndian.PutUint16(buf[20:22], 0)
	return buf
}
