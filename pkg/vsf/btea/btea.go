// Package btea implements the Corrected Block TEA (XXTEA) variant used by the
// VSF/2026 sheet format. It must stay bit-for-bit compatible with the
// browser-side JavaScript implementation that decrypts published sheets, so the
// word packing, round schedule and degenerate single-word behavior below follow
// that implementation exactly rather than the original Wheeler/Needham btea.
package btea

import "errors"

// delta is the golden-ratio constant shared by the whole TEA family.
const delta uint32 = 0x9E3779B9

// ErrIntegrity is returned when the trailing length word of a decrypted buffer
// is inconsistent with the buffer size. A wrong key, a corrupted ciphertext and
// deliberate tampering all surface as this error.
var ErrIntegrity = errors.New("❌ length tag integrity check failed")

// toWords packs bytes into uint32 words, 4 bytes per word, little-endian.
// With includeLength, one extra trailing word carries the exact byte length so
// the decode side can strip the 0-3 bytes of padding slack.
func toWords(b []byte, includeLength bool) []uint32 {
	n := (len(b) + 3) >> 2
	var v []uint32
	if includeLength {
		v = make([]uint32, n+1)
		v[n] = uint32(len(b))
	} else {
		v = make([]uint32, n)
	}
	for i, c := range b {
		v[i>>2] |= uint32(c) << uint((i&3)*8)
	}
	return v
}

// toBytes unpacks words back into bytes. With includeLength the final word is
// interpreted as the claimed byte length and validated against the padding
// slack: for a (w+1)-word buffer the claim m must satisfy 4w-3 <= m <= 4w.
func toBytes(v []uint32, includeLength bool) ([]byte, error) {
	n := len(v) * 4
	if includeLength {
		if len(v) == 0 {
			return nil, ErrIntegrity
		}
		m := int64(v[len(v)-1])
		n4 := int64(len(v)-1) * 4
		if m < n4-3 || m > n4 {
			return nil, ErrIntegrity
		}
		n = int(m)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(v[i>>2] >> uint((i&3)*8))
	}
	return b, nil
}

// fixKey packs a key of any length into the 4-word (128-bit) key schedule,
// zero-filling short keys. Longer keys are accepted: the transform indexes the
// key with `& 3`, so words past the fourth can never influence the output and
// are simply dead material. That permissiveness is part of the wire contract.
func fixKey(key []byte) *[4]uint32 {
	kw := toWords(key, false)
	var k [4]uint32
	copy(k[:], kw)
	return &k
}

// mix is the XXTEA round function. All arithmetic wraps at 32 bits, which Go's
// uint32 gives us for free; the JavaScript side has to mask explicitly.
func mix(sum, y, z uint32, p int, e uint32, k *[4]uint32) uint32 {
	return ((z>>5 ^ y<<2) + (y>>3 ^ z<<4)) ^ ((sum ^ y) + (k[uint32(p)&3^e] ^ z))
}

// encryptWords runs the forward transform in place over v.
//
// The n == 1 case (an empty plaintext reduced to its lone length word) gets no
// early return: the browser-side implementation runs the full round schedule
// with the wrap-around position feeding from itself, and that word-level
// behavior must be matched exactly.
func encryptWords(v []uint32, k *[4]uint32) {
	n := len(v)
	if n == 0 {
		return
	}
	z := v[n-1]
	var sum uint32
	for q := 6 + 52/n; q > 0; q-- {
		sum += delta
		e := sum >> 2 & 3
		var y uint32
		for p := 0; p < n-1; p++ {
			y = v[p+1]
			v[p] += mix(sum, y, z, p, e, k)
			z = v[p]
		}
		y = v[0]
		v[n-1] += mix(sum, y, z, n-1, e, k)
		z = v[n-1]
	}
}

// decryptWords runs the inverse transform in place over v, mirroring
// encryptWords with the round sums walked backwards and additions turned into
// subtractions.
func decryptWords(v []uint32, k *[4]uint32) {
	n := len(v)
	if n == 0 {
		return
	}
	q := 6 + 52/n
	y := v[0]
	for sum := uint32(q) * delta; sum != 0; sum -= delta {
		e := sum >> 2 & 3
		var z uint32
		for p := n - 1; p > 0; p-- {
			z = v[p-1]
			v[p] -= mix(sum, y, z, p, e, k)
			y = v[p]
		}
		z = v[n-1]
		v[0] -= mix(sum, y, z, 0, e, k)
		y = v[0]
	}
}

// EncryptBytes encrypts data under key and returns the raw ciphertext byte
// stream (length tag embedded at the word level, no Base64). Encryption is
// deterministic: no nonce, no randomness, same input means same output.
func EncryptBytes(data, key []byte) []byte {
	v := toWords(data, true)
	encryptWords(v, fixKey(key))
	out, _ := toBytes(v, false)
	return out
}

// DecryptBytes decrypts a raw ciphertext byte stream under key. It returns
// ErrIntegrity when the recovered length tag is implausible, which is the
// expected outcome for every wrong key; callers treat it as "not this key",
// never as a fatal condition.
func DecryptBytes(data, key []byte) ([]byte, error) {
	v := toWords(data, false)
	decryptWords(v, fixKey(key))
	return toBytes(v, true)
}
