// Package histogram builds the 256-entry byte frequency table that the
// tree builder and the container format both consume.
package histogram

// Table is a frequency count per byte value, indexed by the byte itself.
type Table [256]uint32

// Scan walks src once and tallies occurrences of every byte value.
func Scan(src []byte) Table {
	var t Table
	for _, b := range src {
		t[b]++
	}
	return t
}

// Distinct returns the number of byte values with a nonzero count.
func (t Table) Distinct() int {
	n := 0
	for _, c := range t {
		if c > 0 {
			n++
		}
	}
	return n
}

// TotalBits returns the sum of count[b] * lens[b] over all byte values,
// the raw (unpadded) bit length of the encoded stream.
func (t Table) TotalBits(lens *[256]uint8) uint64 {
	var total uint64
	for b, c := range t {
		if c == 0 {
			continue
		}
		total += uint64(c) * uint64(lens[b])
	}
	return total
}
