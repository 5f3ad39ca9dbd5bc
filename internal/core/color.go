package core

// Color is a semantic foreground hint attached to a screen cell.
// Games pick the role, the platform decides what it looks like.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorPickup
	ColorPower
	ColorPowerAlt
	ColorPlayer
	ColorAdversary
	ColorVulnerable
	ColorVulnerableAlt
	ColorHUD
	ColorDim
	ColorAlert
	ColorSuccess
)

var colorNames = [...]string{
	ColorDefault:       "default",
	ColorWall:          "wall",
	ColorPickup:        "pickup",
	ColorPower:         "power",
	ColorPowerAlt:      "power-alt",
	ColorPlayer:        "player",
	ColorAdversary:     "adversary",
	ColorVulnerable:    "vulnerable",
	ColorVulnerableAlt: "vulnerable-alt",
	ColorHUD:           "hud",
	ColorDim:           "dim",
	ColorAlert:         "alert",
	ColorSuccess:       "success",
}

// String returns the role name of the color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
