package problemgen

// Divisors returns the positive divisors of n in ascending order, or nil
// when n <= 0.
func Divisors(n int) []int {
	if n <= 0 {
		return nil
	}
	var small, large []int
	for d := 1; d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		small = append(small, d)
		if q := n / d; q != d {
			large = append(large, q)
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}

// MultiplesBetween returns the multiples of k in [a, b] in ascending order.
// It returns nil when k <= 0 or a > b.
func MultiplesBetween(k, a, b int) []int {
	if k <= 0 || a > b {
		return nil
	}
	first := a
	if r := mod(a, k); r != 0 {
		first = a + k - r
	}
	var out []int
	for m := first; m <= b; m += k {
		out = append(out, m)
	}
	return out
}

// IsMultiple reports whether x is a multiple of k. It is false for k <= 0.
func IsMultiple(x, k int) bool {
	return k > 0 && mod(x, k) == 0
}

func mod(a, k int) int {
	r := a % k
	if r < 0 {
		r += k
	}
	return r
}
