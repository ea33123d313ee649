package consts

// IV is shared by BLAKE2s and BLAKE3.
var IV = [...]uint32{IV0, IV1, IV2, IV3, IV4, IV5, IV6, IV7}

const (
	IV0 = 0x6A09E667
	IV1 = 0xBB67AE85
	IV2 = 0x3C6EF372
	IV3 = 0xA54FF53A
	IV4 = 0x510E527F
	IV5 = 0x9B05688C
	IV6 = 0x1F83D9AB
	IV7 = 0x5BE0CD19
)

// IV64 is the BLAKE2b initialization vector.
var IV64 = [...]uint64{
	0x6A09E667F3BCC908, 0xBB67AE8584CAA73B, 0x3C6EF372FE94F82B, 0xA54FF53A5F1D36F1,
	0x510E527FADE682D1, 0x9B05688C2B3E6C1F, 0x1F83D9ABFB41BD6B, 0x5BE0CD19137E2179,
}

// Sigma is the BLAKE2 message word schedule. BLAKE2b runs 12 rounds and
// wraps around to rows 0 and 1; BLAKE2s runs 10.
var Sigma = [10][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

const (
	Flag_ChunkStart        uint32 = 1 << 0
	Flag_ChunkEnd          uint32 = 1 << 1
	Flag_Parent            uint32 = 1 << 2
	Flag_Root              uint32 = 1 << 3
	Flag_Keyed             uint32 = 1 << 4
	Flag_DeriveKeyContext  uint32 = 1 << 5
	Flag_DeriveKeyMaterial uint32 = 1 << 6
)

const (
	BlockLen = 64
	ChunkLen = 1024

	// MaxDepth bounds the BLAKE3 chaining value stack. 2^54 chunks of
	// ChunkLen bytes is 2^64 bytes, more than a uint64 length can count.
	MaxDepth = 54
)
