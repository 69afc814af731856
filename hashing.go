// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import "math/big"

// Hash functions

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer, then reduces it modulo len.
func _PAIR(a, b uint64, len int) int {
	return int((((a + b) * (a + b + 1) / 2) + a) % uint64(len))
}

// _TRIPLE extends _PAIR to three values. It is used by the operation cache.
func _TRIPLE(a, b, c uint64, len int) int {
	return _PAIR(c, uint64(_PAIR(a, b, len)), len)
}

// bucket returns the position of the chain holding nodes with children
// (then, els) in a subtable with size buckets.
func bucket(then, els Edge, size int) int {
	return _PAIR(uint64(then), uint64(els), size)
}

// ************************************************************

// functions for prime number calculations, used to size subtables and caches

func hasEasyFactors(src int) bool {
	for _, n := range [...]int{3, 5, 7, 11, 13} {
		if src != n && src%n == 0 {
			return true
		}
	}
	return false
}

// primeGte returns the smallest prime greater or equal to src.
func primeGte(src int) int {
	if src <= 2 {
		return 2
	}
	if src%2 == 0 {
		src++
	}
	for {
		// ProbablyPrime is 100% accurate for inputs less than 2⁶⁴.
		if !hasEasyFactors(src) && big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src += 2
	}
}
