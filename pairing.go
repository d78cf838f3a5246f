package hemesh

// EdgeKey folds the ordered pair (a, b) of original vertex indices into one
// integer with the Cantor pairing function:
//
//	key(a, b) = (a+b)(a+b+1)/2 + b
//
// The key is asymmetric, key(a, b) != key(b, a) whenever a != b, so the same
// function finds both an exact duplicate of a directed edge and, with the
// arguments swapped, its twin. The key is exact while a+b stays below 2^32,
// which holds for any two indices up to math.MaxInt32.
func EdgeKey(a, b uint64) uint64 {
	s := a + b
	return s*(s+1)/2 + b
}

func edgeKey(origin, dest int) uint64 {
	return EdgeKey(uint64(origin), uint64(dest))
}
