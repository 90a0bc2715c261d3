package chrom

import "strconv"

// Ordinal returns n with its English ordinal suffix: 1st, 2nd, 3rd, 4th, 11th, 21st.
// n must be positive.
func Ordinal(n int) string {
	if n <= 0 {
		panic("chrom: Ordinal of non-positive number " + strconv.Itoa(n))
	}
	suffix := "th"
	if tens := n % 100; tens < 11 || tens > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
