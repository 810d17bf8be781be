package scene

import (
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

// EnemyState is a step of the enemy behavior state machine.
type EnemyState uint8

const (
	EnemyIdle EnemyState = iota
	EnemyPatrolling
	EnemyChasing
	EnemyAttacking
	EnemyReturning
)

func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyPatrolling:
		return "patrolling"
	case EnemyChasing:
		return "chasing"
	case EnemyAttacking:
		return "attacking"
	case EnemyReturning:
		return "returning"
	default:
		return "unknown"
	}
}

var EnemyHalfSize = physics.Vec3(0.5, 0.75, 0.5)

const (
	defaultEnemySpeed     = 3.0
	defaultEnemyHealth    = 50
	defaultEnemyDamage    = 10
	defaultDetectionRange = 8.0
	defaultAttackRange    = 2.0
	defaultAttackCooldown = 1.0
	waypointReachedRadius = 1.0
	loseTargetRangeFactor = 1.5
)

// Enemy patrols between waypoints and chases a player that comes close.
type Enemy struct {
	BaseObject
	speed          float64
	health         int
	damage         int
	state          EnemyState
	patrol         []physics.Vector3
	patrolIndex    int
	target         physics.Vector3
	hasTarget      bool
	detectionRange float64
	attackRange    float64
	attackCooldown float64
	lastAttack     float64
}

func NewEnemy(name string, position physics.Vector3) *Enemy {
	return &Enemy{
		BaseObject:     NewBaseObject(name, position, EnemyHalfSize),
		speed:          defaultEnemySpeed,
		health:         defaultEnemyHealth,
		damage:         defaultEnemyDamage,
		detectionRange: defaultDetectionRange,
		attackRange:    defaultAttackRange,
		attackCooldown: defaultAttackCooldown,
		lastAttack:     -defaultAttackCooldown,
	}
}

func (e *Enemy) State() EnemyState { return e.state }
func (e *Enemy) Health() int       { return e.health }

func (e *Enemy) AddPatrolPoint(p physics.Vector3) {
	e.patrol = append(e.patrol, p)
}

func (e *Enemy) SetTarget(target physics.Vector3) {
	e.target = target
	e.hasTarget = true
	e.state = EnemyChasing
}

func (e *Enemy) ClearTarget() {
	e.hasTarget = false
	e.state = EnemyReturning
}

func (e *Enemy) CanAttack(now float64) bool {
	return now-e.lastAttack >= e.attackCooldown
}

// Attack returns the damage dealt, or 0 while the attack is cooling down.
func (e *Enemy) Attack(now float64) int {
	if !e.CanAttack(now) {
		return 0
	}
	e.lastAttack = now
	return e.damage
}

// TakeDamage reports whether the enemy died.
func (e *Enemy) TakeDamage(damage int) bool {
	e.health = max(e.health-damage, 0)
	return e.health == 0
}

func (e *Enemy) Active() bool {
	return e.active && e.health > 0
}

// Think advances the state machine against the player's position and returns
// the horizontal velocity the enemy wants. The vertical component of the
// current velocity is kept so gravity stays in charge of it.
func (e *Enemy) Think(player physics.Vector3) physics.Vector3 {
	distance := e.position.Distance(player)
	desired := physics.Zero()

	switch e.state {
	case EnemyIdle:
		if len(e.patrol) > 0 {
			e.state = EnemyPatrolling
		} else if distance <= e.detectionRange {
			e.SetTarget(player)
		}
	case EnemyPatrolling:
		if distance <= e.detectionRange {
			e.SetTarget(player)
		} else if len(e.patrol) > 0 {
			waypoint := e.patrol[e.patrolIndex]
			if e.position.Horizontal().Distance(waypoint.Horizontal()) < waypointReachedRadius {
				e.patrolIndex = (e.patrolIndex + 1) % len(e.patrol)
			} else {
				desired = e.towards(waypoint)
			}
		}
	case EnemyChasing:
		switch {
		case distance > e.detectionRange*loseTargetRangeFactor:
			e.ClearTarget()
		case distance <= e.attackRange:
			e.state = EnemyAttacking
		default:
			e.SetTarget(player)
			desired = e.towards(e.target)
		}
	case EnemyAttacking:
		if distance > e.attackRange {
			e.state = EnemyChasing
		}
	case EnemyReturning:
		if len(e.patrol) == 0 {
			e.state = EnemyIdle
			break
		}
		waypoint := e.patrol[e.patrolIndex]
		if e.position.Horizontal().Distance(waypoint.Horizontal()) < waypointReachedRadius {
			e.state = EnemyPatrolling
		} else {
			desired = e.towards(waypoint)
		}
	}

	return physics.Vec3(desired.X(), e.velocity.Y(), desired.Z())
}

func (e *Enemy) towards(p physics.Vector3) physics.Vector3 {
	return p.Sub(e.position).Horizontal().Normalize().Mul(e.speed)
}
