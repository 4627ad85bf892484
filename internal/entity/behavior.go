package entity

var behaviors = map[Kind]Behavior{
	KindPlayer:      playerBehavior{},
	KindPatrolEnemy: patrolBehavior{idle: "enemy-idle"},
	KindBirdman:     patrolBehavior{idle: "birdman-idle"},
}

type playerBehavior struct{}

func (playerBehavior) Steer(e *Entity, in Controls) {
	switch {
	case in.Left && !in.Right:
		e.Body.SetVelocityX(-e.Tuning.Speed)
	case in.Right && !in.Left:
		e.Body.SetVelocityX(e.Tuning.Speed)
	default:
		e.Body.SetVelocityX(0)
	}

	if in.Jump && e.Body.OnFloor() {
		e.Body.SetVelocityY(-e.Tuning.JumpVelocity)
	}
}

func (playerBehavior) Animation(e *Entity) string {
	if !e.Body.OnFloor() {
		return "jump"
	}
	if e.Body.VX != 0 {
		return "run"
	}
	return "idle"
}

// patrolBehavior walks forward at the patrol velocity. The sensor result is
// exposed on the entity but does not turn or stop it.
type patrolBehavior struct {
	idle string
}

func (patrolBehavior) Steer(e *Entity, _ Controls) {
	e.Body.SetVelocityX(e.Tuning.PatrolVelocity)
}

func (b patrolBehavior) Animation(_ *Entity) string {
	return b.idle
}
