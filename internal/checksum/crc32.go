package checksum

import "hash"

// crcPoly is the reversed IEEE 802.3 polynomial used by PNG.
const crcPoly = 0xEDB88320

// crcSize is the size of a CRC-32 checksum in bytes.
const crcSize = 4

var crcTable = makeCRCTable()

func makeCRCTable() *[256]uint32 {
	var t [256]uint32
	for i := range t {
		v := uint32(i)
		for range 8 {
			if v&1 != 0 {
				v = crcPoly ^ (v >> 1)
			} else {
				v >>= 1
			}
		}
		t[i] = v
	}
	return &t
}

// UpdateCRC32 returns the result of adding the bytes in p to crc.
// crc is a finished checksum, so UpdateCRC32(0, p) == CRC32(p).
func UpdateCRC32(crc uint32, p []byte) uint32 {
	acc := ^crc
	for _, b := range p {
		acc = crcTable[byte(acc)^b] ^ (acc >> 8)
	}
	return ^acc
}

// CRC32 returns the PNG CRC-32 of p.
func CRC32(p []byte) uint32 {
	return UpdateCRC32(0, p)
}

type crcDigest struct {
	crc uint32
}

// NewCRC32 returns a streaming CRC-32 hash.
func NewCRC32() hash.Hash32 {
	return &crcDigest{}
}

func (d *crcDigest) Size() int      { return crcSize }
func (d *crcDigest) BlockSize() int { return 1 }
func (d *crcDigest) Reset()         { d.crc = 0 }
func (d *crcDigest) Sum32() uint32  { return d.crc }

func (d *crcDigest) Write(p []byte) (int, error) {
	d.crc = UpdateCRC32(d.crc, p)
	return len(p), nil
}

// Sum appends the big-endian checksum to b.
func (d *crcDigest) Sum(b []byte) []byte {
	return appendUint32(b, d.crc)
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
