package domain

// Identity is the transform of an unzoomed, unpanned view
var Identity = ViewTransform{K: 1}

// Apply maps a graph point to screen coordinates
func (t ViewTransform) Apply(p Point) Point {
	return Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a screen point back to graph coordinates
func (t ViewTransform) Invert(p Point) Point {
	return Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

// ScaleAbout multiplies the scale by k while keeping the screen point anchor fixed
func (t ViewTransform) ScaleAbout(k float64, anchor Point) ViewTransform {
	g := t.Invert(anchor)
	scaled := ViewTransform{K: t.K * k}
	scaled.X = anchor.X - g.X*scaled.K
	scaled.Y = anchor.Y - g.Y*scaled.K
	return scaled
}

// Valid reports whether the transform can be inverted
func (t ViewTransform) Valid() bool {
	return t.K > 0
}
