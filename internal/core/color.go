package core

// Color names the role of a screen cell. The platform decides how each
// role looks.
type Color uint8

// Cell roles used by the playfield and HUD.
const (
	ColorDefault Color = iota
	ColorPipe
	ColorPipeCap
	ColorAvatar
	ColorAvatarDead
	ColorGround
	ColorScore
	ColorText
	ColorFrame

	numColors
)

// NumColors is the number of defined roles.
const NumColors = int(numColors)
