package checksum

import "hash"

// adlerMod is the largest prime smaller than 65536.
const adlerMod = 65521

// adlerSize is the size of an Adler-32 checksum in bytes.
const adlerSize = 4

// adlerNMax is the largest n such that
// 255 * n * (n+1) / 2 + (n+1) * (adlerMod-1) <= 2^32-1.
// Reduction can be deferred for up to adlerNMax bytes.
const adlerNMax = 5552

type adlerDigest struct {
	a, b uint32
}

// NewAdler32 returns a streaming Adler-32 hash.
func NewAdler32() hash.Hash32 {
	d := &adlerDigest{}
	d.Reset()
	return d
}

// Adler32 returns the Adler-32 checksum of p.
func Adler32(p []byte) uint32 {
	var d adlerDigest
	d.Reset()
	d.update(p)
	return d.Sum32()
}

func (d *adlerDigest) Size() int      { return adlerSize }
func (d *adlerDigest) BlockSize() int { return 4 }
func (d *adlerDigest) Reset()         { d.a, d.b = 1, 0 }
func (d *adlerDigest) Sum32() uint32  { return d.b<<16 | d.a }

func (d *adlerDigest) Write(p []byte) (int, error) {
	d.update(p)
	return len(p), nil
}

// Sum appends the big-endian checksum to b.
func (d *adlerDigest) Sum(b []byte) []byte {
	return appendUint32(b, d.Sum32())
}

// update is equivalent to applying a = (a+c) % adlerMod, b = (b+a) % adlerMod
// for every byte c, with the modulo taken once per adlerNMax bytes.
func (d *adlerDigest) update(p []byte) {
	a, b := d.a, d.b
	for len(p) > 0 {
		var q []byte
		if len(p) > adlerNMax {
			p, q = p[:adlerNMax], p[adlerNMax:]
		}
		for _, c := range p {
			a += uint32(c)
			b += a
		}
		a %= adlerMod
		b %= adlerMod
		p = q
	}
	d.a, d.b = a, b
}
