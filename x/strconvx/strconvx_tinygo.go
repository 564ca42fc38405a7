//go:build tinygo

package strconvx

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// AppendUint appends u in base (2..36, otherwise 10) without a scratch
// allocation.
func AppendUint(dst []byte, u uint64, base int) []byte {
	if base < 2 || base > len(digits) {
		base = 10
	}
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for {
		i--
		buf[i] = digits[u%b]
		u /= b
		if u == 0 {
			break
		}
	}
	return append(dst, buf[i:]...)
}

func AppendInt(dst []byte, n int64, base int) []byte {
	if n < 0 {
		// -n overflows for MinInt64; the unsigned negation does not.
		return AppendUint(append(dst, '-'), uint64(-(n+1))+1, base)
	}
	return AppendUint(dst, uint64(n), base)
}

func FormatUint(u uint64, base int) string { return string(AppendUint(nil, u, base)) }
func FormatInt(n int64, base int) string   { return string(AppendInt(nil, n, base)) }
func Itoa(n int) string                    { return FormatInt(int64(n), 10) }
