// Package entropy implements the Shannon entropy gate (§4.5): a per-secret
// randomness floor that separates structured-but-fake fixture strings from
// real, high-randomness credentials.
package entropy

import "math"

// Shannon computes H = -Σ p(c)·log2(p(c)) over the byte distribution of
// secret, in bits per symbol. An empty secret has zero entropy.
func Shannon(secret []byte) float64 {
	if len(secret) == 0 {
		return 0
	}

	var freq [256]int
	for _, b := range secret {
		freq[b]++
	}

	length := float64(len(secret))
	var h float64
	for _, count := range freq {
		if count == 0 {
			continue
		}
		p := float64(count) / length
		h -= p * math.Log2(p)
	}
	return h
}

// Accept reports whether secret clears pattern's entropy floor. A nil
// minEntropy means the pattern declares no floor, so every candidate passes.
func Accept(secret []byte, minEntropy *float64) bool {
	if minEntropy == nil {
		return true
	}
	return Shannon(secret) >= *minEntropy
}
