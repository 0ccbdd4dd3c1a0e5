package geometry

// Centroid sensitivities of a planar Voronoi tessellation.
//
// When site z_i moves, the only parts of its cell that move are the bisector
// edges it shares with its neighbors. The centroid Jacobian is therefore a
// sum of line integrals over those shared edges: for an edge shared with
// site z_j, a boundary point q slides with normal densities (q - z_i)/d with
// respect to z_i and (z_j - q)/d with respect to z_j, d = |z_i - z_j|. The
// resulting integrands are quadratic in the edge parameter, so a three-point
// Simpson rule evaluates them exactly (no quadrature loop needed).

// simpson integrates f over [0, 1]. Exact for polynomials up to degree 3.
func simpson(f func(t float64) float64) float64 {
	return (f(0) + 4*f(0.5) + f(1)) / 6
}

// CentroidJacobians computes, for one cell edge shared between sites z_i and
// z_j, the contribution to dC_i/dz_i and the full dC_i/dz_j for that edge.
//
//   - zi, zj: the two site positions (must be distinct)
//   - ci:     cell i's centroid
//   - mass:   cell i's area (must be positive)
//   - v1, v2: the shared edge endpoints
//
// Matrix layout: A11 = dCx/dzx, A12 = dCx/dzy, A21 = dCy/dzx, A22 = dCy/dzy.
// A cell i adjacent to several sites accumulates dC_i/dz_i by summing the
// first result over all of its shared edges. Degenerate input (coincident
// sites, zero mass) yields non-finite matrices; callers must check IsFinite.
func CentroidJacobians(zi, zj, ci Vector2D, mass float64, v1, v2 Vector2D) (dCidzi, dCidzj Mat2) {
	d := zi.DistanceTo(zj)
	length := v1.DistanceTo(v2)

	qx := func(t float64) float64 { return v1.X + (v2.X-v1.X)*t }
	qy := func(t float64) float64 { return v1.Y + (v2.Y-v1.Y)*t }

	// Normal-velocity densities of the bisector point q per unit site motion.
	wix := func(t float64) float64 { return (qx(t) - zi.X) / d }
	wiy := func(t float64) float64 { return (qy(t) - zi.Y) / d }
	wjx := func(t float64) float64 { return (zj.X - qx(t)) / d }
	wjy := func(t float64) float64 { return (zj.Y - qy(t)) / d }

	// column evaluates one Jacobian column: the centroid velocity when the
	// boundary moves with density w along this edge.
	column := func(w func(t float64) float64) (dCx, dCy float64) {
		i0 := simpson(func(t float64) float64 { return w(t) * length })
		ix := simpson(func(t float64) float64 { return qx(t) * w(t) * length })
		iy := simpson(func(t float64) float64 { return qy(t) * w(t) * length })
		return (ix - ci.X*i0) / mass, (iy - ci.Y*i0) / mass
	}

	dCidzi.A11, dCidzi.A21 = column(wix)
	dCidzi.A12, dCidzi.A22 = column(wiy)
	dCidzj.A11, dCidzj.A21 = column(wjx)
	dCidzj.A12, dCidzj.A22 = column(wjy)
	return dCidzi, dCidzj
}
