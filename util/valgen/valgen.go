// Some helpers using closures to generate input values
package valgen

import "math/rand"

func MakeConstGen(constant uint64) func() uint64 {
	return func() uint64 {
		return constant
	}
}

func MakeIncreasingGen(start uint64) func() uint64 {
	current := start
	return func() uint64 {
		current++
		return current
	}
}

// MakeCyclicGen repeats values in order.
func MakeCyclicGen(values ...uint64) func() uint64 {
	if len(values) == 0 {
		panic("cyclic generator needs at least one value")
	}

	i := -1
	return func() uint64 {
		i = (i + 1) % len(values)
		return values[i]
	}
}

// MakeRandomGen draws values in [0, limit) from a seeded source so that
// failures can be replayed.
func MakeRandomGen(seed int64, limit uint64) func() uint64 {
	r := rand.New(rand.NewSource(seed))
	return func() uint64 {
		return uint64(r.Int63n(int64(limit)))
	}
}

// Take collects n values from gen.
func Take(gen func() uint64, n int) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		values[i] = gen()
	}
	return values
}
