package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Level is a freshly built world with its actors.
type Level struct {
	World     *physics.World
	Ground    physics.ColliderHandle
	Player    Player
	Platforms []MovingPlatform
	Carry     CarryDetector
}

// BuildLevel creates the ground, the player, and one kinematic body per
// platform in the layout. Platforms start moving right.
func BuildLevel(cfg config.PlatformerConfig, dt float64) *Level {
	w := physics.NewWorld(physics.Params{
		Gravity:  core.V(cfg.Physics.GravityX, cfg.Physics.GravityY),
		DT:       dt,
		Width:    cfg.World.Width,
		Height:   cfg.World.Height,
		CellSize: 16,
	})

	ground := w.InsertStatic(physics.ColliderDesc{
		HalfExtents: core.V(cfg.World.Width/2, cfg.World.GroundHeight/2),
	}, core.V(cfg.World.Width/2, cfg.World.Height-cfg.World.GroundHeight/2))

	playerHalf := core.V(cfg.Player.Size/2, cfg.Player.Size/2)
	pb := w.InsertBody(physics.Dynamic, core.V(cfg.Player.SpawnX, cfg.Player.SpawnY))
	pc := w.InsertCollider(physics.ColliderDesc{
		HalfExtents: playerHalf,
		Density:     cfg.Player.Density,
		Restitution: cfg.Player.Restitution,
	}, pb)

	platformHalf := core.V(cfg.Platforms.Width/2, cfg.Platforms.Height/2)
	platforms := make([]MovingPlatform, 0, len(cfg.Platforms.Layout))
	for _, spawn := range cfg.Platforms.Layout {
		b := w.InsertBody(physics.Kinematic, core.V(spawn.X, spawn.Y))
		c := w.InsertCollider(physics.ColliderDesc{HalfExtents: platformHalf, Density: 1}, b)
		platforms = append(platforms, MovingPlatform{
			Body:      b,
			Collider:  c,
			TravelMin: spawn.TravelMin,
			TravelMax: spawn.TravelMax,
			Direction: 1,
		})
	}

	return &Level{
		World:     w,
		Ground:    ground,
		Player:    Player{Body: pb, Collider: pc},
		Platforms: platforms,
		Carry:     CarryDetector{PlayerHalf: playerHalf, PlatformHalf: platformHalf},
	}
}
