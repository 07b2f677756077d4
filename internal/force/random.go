package force

// lcg is the linear congruential generator used for jiggle, seeded so that a
// layout is reproducible for the same input
type lcg struct {
	state uint32
}

func newLCG() *lcg {
	return &lcg{state: 1}
}

func (r *lcg) next() float64 {
	r.state = 1664525*r.state + 1013904223
	return float64(r.state) / 4294967296
}

// jiggle returns a tiny random offset used to separate coincident elements
func jiggle(random func() float64) float64 {
	return (random() - 0.5) * 1e-6
}
