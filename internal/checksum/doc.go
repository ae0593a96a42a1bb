// Package checksum implements the two checksums a PNG file carries:
// the CRC-32 protecting each chunk and the Adler-32 trailing the zlib
// stream inside IDAT.
//
// Both are computed in pure Go without hash/crc32 or hash/adler32 and
// must agree with them bit for bit. Both implement [hash.Hash32], so a
// caller can feed data incrementally.
package checksum
