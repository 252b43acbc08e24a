package colortree

// Rand is the random source capability. It draws uniformly distributed
// values in [0,1). *math/rand.Rand satisfies it.
//
// A position search consumes exactly one draw.
type Rand interface {
	Float64() float64
}

// FixedDraws replays a fixed sequence of draws, cycling when exhausted.
// It is meant for reproducible arrangements and tests.
type FixedDraws struct {
	Draws []float64
	next  int
}

// Float64 returns the next draw of the sequence, or 0 for an empty sequence.
func (fd *FixedDraws) Float64() float64 {
	if len(fd.Draws) == 0 {
		return 0
	}
	v := fd.Draws[fd.next%len(fd.Draws)]
	fd.next++
	return v
}

// pick maps a draw onto an index in [0…n).
func pick(draw float64, n int) int {
	assert(n > 0, "pick from empty candidate set")
	i := int(draw * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
