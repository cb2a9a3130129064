// Package conv formats integers without fmt or strconv, for the console
// output of MCU builds.
package conv

// Itoa writes the base-10 form of n into the end of buf and returns the
// used tail. buf should hold at least 20 bytes.
func Itoa(buf []byte, n int64) []byte {
	i := len(buf)
	u := uint64(n)
	if n < 0 {
		u = -u
	}
	for {
		if i == 0 {
			return buf[:0]
		}
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	if n < 0 && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// Fixed formats n scaled by 10^-decimals, e.g. Fixed(buf, -214, 1) is
// "-21.4".
func Fixed(buf []byte, n int64, decimals int) []byte {
	u := uint64(n)
	if n < 0 {
		u = -u
	}
	i := len(buf)
	for d := 0; ; d++ {
		if d == decimals && decimals > 0 {
			if i == 0 {
				return buf[:0]
			}
			i--
			buf[i] = '.'
		}
		if i == 0 {
			return buf[:0]
		}
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
		if d >= decimals && u == 0 {
			break
		}
	}
	if n < 0 && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}
