package lander

// resolveCollisions applies an equal-mass elastic exchange to every pair of
// players closer than radius. Distances are taken on the plane without wrap,
// so pairs straddling the seam are not detected. Pairs are handled in one
// pass; a player touching two others sees the first exchange before the
// second.
func resolveCollisions(players []*Player, radius float64) []Event {
	n := len(players)
	if n < 2 {
		return nil
	}

	// Distances come from positions before any exchange.
	dist := make([][]float64, n)
	for i := range players {
		dist[i] = make([]float64, i)
		for j := 0; j < i; j++ {
			dist[i][j] = players[i].Position.Dist(players[j].Position)
		}
	}

	var events []Event
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			d := dist[i][j]
			if d <= 0 || d >= radius {
				continue
			}
			exchange(players[i], players[j])
			events = append(events, PlayerCollision{A: players[i].Team, B: players[j].Team})
		}
	}
	return events
}

// exchange reflects both velocities along the line between the two centres.
func exchange(p1, p2 *Player) {
	x1, x2 := p1.Position, p2.Position
	v1, v2 := p1.Velocity, p2.Velocity

	sep := x1.Sub(x2)
	d2 := sep.Len2()
	if d2 == 0 {
		return
	}
	k := v1.Sub(v2).Dot(sep) / d2
	p1.Velocity = v1.Sub(sep.Scale(k))
	p2.Velocity = v2.Add(sep.Scale(k))
}
