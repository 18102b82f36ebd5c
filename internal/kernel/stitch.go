package kernel

// Stitch concatenates segment results into the final packed payload. A
// segment whose start boundary was mid-byte shares its first output byte
// with the previous segment's last output byte; the two are OR-merged
// rather than simply concatenated, reconstructing a single bit-exact
// stream across the boundary (see carryIn, which is what makes the two
// bytes agree on their shared bits).
func Stitch(results []Result) []byte {
	var out []byte
	for _, r := range results {
		if len(out) > 0 && r.Pad && len(r.Bytes) > 0 {
			out[len(out)-1] |= r.Bytes[0]
			out = append(out, r.Bytes[1:]...)
			continue
		}
		out = append(out, r.Bytes...)
	}
	return out
}
