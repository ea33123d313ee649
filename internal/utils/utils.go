// Package utils holds the little-endian word codecs shared by the engines.
// Every function checks its bounds up front; none aliases memory.
package utils

import "encoding/binary"

// BytesToWords decodes 64 bytes into 16 little-endian 32-bit words.
func BytesToWords(bytes *[64]uint8, words *[16]uint32) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(bytes[4*i:])
	}
}

// WordsToBytes encodes 16 words into the first 64 bytes of out.
func WordsToBytes(words *[16]uint32, out []byte) {
	_ = out[63]
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
}

// BytesToWords64 decodes 128 bytes into 16 little-endian 64-bit words.
func BytesToWords64(bytes *[128]uint8, words *[16]uint64) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(bytes[8*i:])
	}
}

// AppendWords32 appends the little-endian encoding of words to dst.
func AppendWords32(dst []byte, words ...uint32) []byte {
	for _, w := range words {
		dst = binary.LittleEndian.AppendUint32(dst, w)
	}
	return dst
}

// AppendWords64 appends the little-endian encoding of words to dst.
func AppendWords64(dst []byte, words ...uint64) []byte {
	for _, w := range words {
		dst = binary.LittleEndian.AppendUint64(dst, w)
	}
	return dst
}

// PadBlock copies in into a zeroed block of len(block) bytes.
func PadBlock(block, in []byte) {
	n := copy(block, in)
	clear(block[n:])
}
