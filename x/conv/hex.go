package conv

const hexd = "0123456789abcdef"

// AppendHex8 appends b as two lowercase hex digits.
func AppendHex8(dst []byte, b byte) []byte {
	return append(dst, hexd[b>>4], hexd[b&0xF])
}

// AppendHex16 appends n as four lowercase hex digits.
func AppendHex16(dst []byte, n uint16) []byte {
	return AppendHex8(AppendHex8(dst, byte(n>>8)), byte(n))
}
