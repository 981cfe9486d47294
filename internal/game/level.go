package game

// Spawn and layout constants for the stock test level. Positions are object
// centers; the ground plane sits at Params.GroundY.
var (
	playerSpawn = Vec2{X: 2, Y: 0}
	spikePos    = Vec2{X: 12, Y: 0}
	portalPos   = Vec2{X: 20, Y: 0}
)

// BuildLevel assembles the stock test level: a player on the ground, one
// spike hazard, and one exit portal. The level is started, so the manager
// reports running until the player reaches the portal.
func BuildLevel(params Params) *World {
	w := NewWorld(params)

	w.Add(&Object{
		Tag:    TagPlayer,
		Body:   NewBody(DynamicBody, playerSpawn),
		Size:   Vec2{X: 0.8, Y: 1.8},
		Health: NewHealth(params.PlayerHealth),
	})

	w.Add(&Object{
		Tag:     TagSpike,
		Body:    NewBody(StaticBody, spikePos),
		Size:    Vec2{X: 1, Y: 1},
		Trigger: NewSpike(params),
	})

	w.Add(&Object{
		Tag:     TagPortal,
		Body:    NewBody(StaticBody, portalPos),
		Size:    Vec2{X: 1, Y: 2},
		Trigger: NewPortal(w.Manager()),
	})

	w.Manager().StartLevel()
	return w
}
