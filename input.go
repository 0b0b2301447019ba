package ballpit

import "log"

type MouseButton int

const (
	MouseButtonPrimary MouseButton = iota
	MouseButtonSecondary
)

// PointerDown handles a button press at canvas point p. The secondary button
// always spawns a ball. The primary button spawns when ball dropping is on and
// otherwise starts a drawn outline on Draw boundaries.
func (space *Space) PointerDown(button MouseButton, p Vector) {
	switch button {
	case MouseButtonSecondary:
		space.spawnAt(p)
	case MouseButtonPrimary:
		if space.options.DropBalls {
			if space.extent.ContainsVect(p) {
				space.spawnAt(p)
			}
			return
		}
		if space.boundary.Kind() == Draw {
			space.BeginDrag(p)
		}
	}
}

func (space *Space) PointerMove(p Vector) {
	if space.dragging {
		space.ExtendDrag(p)
	}
}

func (space *Space) PointerUp(button MouseButton, p Vector) {
	if button == MouseButtonPrimary && space.dragging {
		space.ExtendDrag(p)
		space.EndDrag()
	}
}

// spawnAt spawns a configured ball at p, pulled back onto the canvas.
func (space *Space) spawnAt(p Vector) {
	p = space.extent.ClampVect(p)
	if _, err := space.Spawn(space.options.BallShape, space.options.BallRadius, p); err != nil {
		log.Println("spawn:", err)
	}
}

// BeginDrag clears the drawn outline and starts it at p. It reports false when
// the boundary is not drawn.
func (space *Space) BeginDrag(p Vector) bool {
	if !space.boundary.BeginDraw() {
		return false
	}
	space.dragging = true
	space.boundary.AppendDrawPoint(p)
	return true
}

// ExtendDrag appends p to the outline being drawn. Repeats of the last point
// are dropped so the loop has no zero length edges.
func (space *Space) ExtendDrag(p Vector) bool {
	if !space.dragging {
		return false
	}
	drawn := space.boundary.Outline().(*DrawnOutline)
	if last, ok := drawn.points.Last(); ok && last.Equal(p) {
		return false
	}
	return space.boundary.AppendDrawPoint(p)
}

func (space *Space) EndDrag() {
	space.boundary.EndDraw()
	space.dragging = false
}

func (space *Space) Dragging() bool {
	return space.dragging
}
