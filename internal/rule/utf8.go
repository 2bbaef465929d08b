package rule

import "math"

// isLeadByte reports whether b starts a codepoint, i.e. it is not a UTF-8
// continuation byte (10xxxxxx).
func isLeadByte(b byte) bool {
	return b&0xc0 != 0x80
}

// IndexOfUTF8 returns the byte index reached by moving offset codepoints from
// the byte position base in s. Positive offsets walk forward, negative ones
// walk backward.
//
// Positions outside s count as one codepoint each without reading memory, so
// the result may be negative or greater than len(s). Callers clamp or pad as
// their rule requires. Results that would overflow saturate at math.MaxInt or
// math.MinInt.
func IndexOfUTF8(s []byte, base, offset int) int {
	inside := func(i int) bool { return i >= 0 && i < len(s) }

	switch {
	case offset > 0:
		// a continuation byte at base is not a boundary of its own
		for inside(base) && !isLeadByte(s[base]) {
			base++
		}
		for offset > 0 {
			switch {
			case base < -1:
				step := min(offset, -1-base)
				base += step
				offset -= step
			case base >= len(s):
				if offset > math.MaxInt-base {
					return math.MaxInt
				}
				return base + offset
			default:
				base++
				for inside(base) && !isLeadByte(s[base]) {
					base++
				}
				offset--
			}
		}
	case offset < 0:
		for offset < 0 {
			switch {
			case base <= 0:
				if offset < math.MinInt-base {
					return math.MinInt
				}
				return base + offset
			case base > len(s):
				step := base - len(s)
				if offset > -step {
					step = -offset
				}
				base -= step
				offset += step
			default:
				base--
				if isLeadByte(s[base]) {
					offset++
				}
			}
		}
	}
	return base
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
