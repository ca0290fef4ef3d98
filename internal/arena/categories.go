package arena

import "github.com/san-kum/fieldpong/internal/physics"

// Collision categories. Actors sit in 1 and 10-14; region walls in 20-23.
var (
	CatPlayer      = physics.Cat(1)
	CatBall        = physics.Cat(10)
	CatGravityBall = physics.Cat(11)
	CatObstacle    = physics.Cat(12)
	CatComputer    = physics.Cat(13)
	CatBullet      = physics.Cat(14)

	CatScreen      = physics.Cat(20)
	CatPlayerBox   = physics.Cat(21)
	CatField       = physics.Cat(22)
	CatComputerBox = physics.Cat(23)
)

// Collides-with masks before confinement adds the region bit.
var (
	maskPlayer      = CatPlayer | CatBall | CatGravityBall
	maskComputer    = CatComputer | CatBall | CatGravityBall
	maskObstacle    = CatPlayer | CatBall | CatGravityBall | CatObstacle
	maskBall        = CatPlayer | CatBall | CatComputer
	maskGravityBall = CatGravityBall | CatBall | CatPlayer | CatComputer
	maskBullet      = CatPlayer | CatBall | CatGravityBall | CatObstacle | CatComputer
)
