package keccak

import "encoding/binary"

// leftEncode returns the NIST SP 800-185 left_encode of x: the byte count
// followed by the big-endian bytes, without leading zeros.
func leftEncode(x uint64) []byte {
	var buf [9]byte
	binary.BigEndian.PutUint64(buf[1:], x)
	i := 1
	for i < 8 && buf[i] == 0 {
		i++
	}
	buf[i-1] = byte(9 - i)
	return append([]byte(nil), buf[i-1:]...)
}

// rightEncode is leftEncode with the byte count at the end.
func rightEncode(x uint64) []byte {
	var buf [9]byte
	binary.BigEndian.PutUint64(buf[:8], x)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	buf[8] = byte(8 - i)
	return append([]byte(nil), buf[i:]...)
}

// encodeString prefixes s with its length in bits.
func encodeString(s []byte) []byte {
	return append(leftEncode(uint64(len(s))*8), s...)
}

// bytepad prefixes x with left_encode(w) and zero-pads the result to a
// multiple of w bytes.
func bytepad(x []byte, w int) []byte {
	out := append(leftEncode(uint64(w)), x...)
	if rem := len(out) % w; rem != 0 {
		out = append(out, make([]byte, w-rem)...)
	}
	return out
}

// bytepadKey returns bytepad(encodeString(key), w) built in a single
// allocation, so the result is the only copy of key it makes.
func bytepadKey(key []byte, w int) []byte {
	we, ke := leftEncode(uint64(w)), leftEncode(uint64(len(key))*8)
	n := len(we) + len(ke) + len(key)
	out := make([]byte, n+(w-n%w)%w)
	i := copy(out, we)
	i += copy(out[i:], ke)
	copy(out[i:], key)
	return out
}
