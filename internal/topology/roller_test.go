package topology_test

// scriptedRoller replays a fixed cycle of results, clamped to the die size.
type scriptedRoller struct {
	script []int
	next   int
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	v := r.script[r.next%len(r.script)]
	r.next++
	if v > size {
		v = size
	}
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

// maxRoller always rolls the highest face, which makes rng.Shuffle a no-op.
type maxRoller struct{ draws int }

func (r *maxRoller) Roll(size int) (int, error) {
	r.draws++
	return size, nil
}

func (r *maxRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}
