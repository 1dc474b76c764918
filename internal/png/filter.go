package png

import "fmt"

const (
	filterNone = iota
	filterSub
	filterUp
	filterAverage
	filterPaeth
)

// adam7 pass geometry: x offset, y offset, x step, y step
var adam7 = [7][4]int{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

func passSize(width, height uint32, pass int) (int, int) {
	p := adam7[pass]
	w := (int(width) - p[0] + p[2] - 1) / p[2]
	h := (int(height) - p[1] + p[3] - 1) / p[3]
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// maxImageBytes bounds the filtered scanline data a header may claim. Adam7
// adds at most a few filter bytes per row on top, so filteredSize stays well
// inside an int.
const maxImageBytes = 1 << 28

// filteredSize is the number of inflated IDAT bytes the header implies.
func filteredSize(h ihdr) int {
	ct := ColorType(h.ColorType)
	if h.Interlace == 0 {
		return int(h.Height) * (1 + rowStride(h.Width, ct, h.BitDepth))
	}

	total := 0
	for pass := range adam7 {
		w, ht := passSize(h.Width, h.Height, pass)
		if w == 0 || ht == 0 {
			continue
		}
		total += ht * (1 + rowStride(uint32(w), ct, h.BitDepth))
	}
	return total
}

// unfilter reverses the per-scanline filters in place and returns the raw rows
// packed together without their filter bytes.
func unfilter(data []byte, rows, stride, unit int) ([]byte, error) {
	out := make([]byte, rows*stride)
	prev := make([]byte, stride)

	for y := 0; y < rows; y++ {
		line := data[y*(stride+1) : (y+1)*(stride+1)]
		ft, cur := line[0], line[1:]

		switch ft {
		case filterNone:
		case filterSub:
			for i := unit; i < stride; i++ {
				cur[i] += cur[i-unit]
			}
		case filterUp:
			for i := range cur {
				cur[i] += prev[i]
			}
		case filterAverage:
			for i := range cur {
				var left int
				if i >= unit {
					left = int(cur[i-unit])
				}
				cur[i] += uint8((left + int(prev[i])) / 2)
			}
		case filterPaeth:
			for i := range cur {
				var a, c uint8
				if i >= unit {
					a, c = cur[i-unit], prev[i-unit]
				}
				cur[i] += paeth(a, prev[i], c)
			}
		default:
			return nil, FormatError(fmt.Sprintf("bad filter type %d on row %d", ft, y))
		}

		copy(out[y*stride:], cur)
		prev = cur
	}
	return out, nil
}

func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// deinterlace unfilters each Adam7 pass and scatters its pixels into a single
// non-interlaced raw buffer.
func deinterlace(data []byte, h ihdr) ([]byte, error) {
	ct := ColorType(h.ColorType)
	bpp := bitsPerPixel(ct, h.BitDepth)
	unit := filterUnit(ct, h.BitDepth)
	stride := rowStride(h.Width, ct, h.BitDepth)
	out := make([]byte, int(h.Height)*stride)

	offset := 0
	for pass, p := range adam7 {
		pw, ph := passSize(h.Width, h.Height, pass)
		if pw == 0 || ph == 0 {
			continue
		}

		pstride := rowStride(uint32(pw), ct, h.BitDepth)
		size := ph * (1 + pstride)
		rows, err := unfilter(data[offset:offset+size], ph, pstride, unit)
		if err != nil {
			return nil, fmt.Errorf("adam7 pass %d: %w", pass+1, err)
		}
		offset += size

		for py := 0; py < ph; py++ {
			src := rows[py*pstride : (py+1)*pstride]
			y := p[1] + py*p[3]
			dst := out[y*stride : (y+1)*stride]
			for px := 0; px < pw; px++ {
				copyPixel(dst, p[0]+px*p[2], src, px, bpp)
			}
		}
	}
	return out, nil
}

// copyPixel moves pixel sx of src to position dx of dst. Pixels narrower than a
// byte never straddle a byte boundary.
func copyPixel(dst []byte, dx int, src []byte, sx int, bits int) {
	if bits >= 8 {
		n := bits / 8
		copy(dst[dx*n:dx*n+n], src[sx*n:sx*n+n])
		return
	}

	perByte := 8 / bits
	mask := byte(1<<bits - 1)
	sShift := uint(8 - bits - (sx%perByte)*bits)
	dShift := uint(8 - bits - (dx%perByte)*bits)
	v := (src[sx/perByte] >> sShift) & mask
	dst[dx/perByte] = dst[dx/perByte]&^(mask<<dShift) | v<<dShift
}
