package engine

// WedgeAt returns the index of the wedge covering a chart angle.
// Zero-span wedges never match.
func (c *Chart) WedgeAt(angle float64) (int, bool) {
	angle = normalizeAngle(angle)
	for i, w := range c.Wedges {
		if w.Span() <= 0 {
			continue
		}
		if angle >= w.StartAngle && angle < w.EndAngle {
			return i, true
		}
	}
	return -1, false
}

// HitTest returns the wedge drawn under p, taking the hole into account
func (c *Chart) HitTest(p Point) (int, bool) {
	if c.Empty() {
		return -1, false
	}
	d := Distance(c.Center, p)
	if d > c.OuterRadius || (c.InnerRadius > 0 && d < c.InnerRadius) {
		return -1, false
	}
	return c.WedgeAt(Angle(c.Center, p))
}
