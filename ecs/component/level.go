package component

import "github.com/milk9111/shadowmaze/nav"

// Level holds the grid every pursuer navigates. One per world.
type Level struct {
	Grid *nav.Grid
}

var LevelComponent = NewComponent[Level]()
