// Package ballistics simulates projectile flight on top of the tuple algebra.
// Positions are points, velocities and forces are vectors; every tick is pure
// tuple arithmetic, so the point/vector bookkeeping in W never drifts.
package ballistics

import "github.com/eatspaint/raybase/pkg/tuple"

// Projectile is a body in flight: where it is and where it is headed.
type Projectile struct {
	Position tuple.Tuple // point
	Velocity tuple.Tuple // vector
}

// Environment holds the per-tick forces acting on every projectile.
type Environment struct {
	Gravity tuple.Tuple // vector, usually pointing down
	Wind    tuple.Tuple // vector
}

// Tick advances a projectile by one time step: position moves by velocity,
// velocity picks up gravity and wind. Position stays a point and velocity
// stays a vector, by the W arithmetic of Add.
func Tick(env Environment, p Projectile) Projectile {
	return Projectile{
		Position: p.Position.Add(p.Velocity),
		Velocity: p.Velocity.Add(env.Gravity).Add(env.Wind),
	}
}

// Flight runs Tick from launch until the projectile comes back down to
// Y <= 0 or maxTicks elapse, and returns every state including the launch
// state. At least one tick runs, so launching from ground level works.
func Flight(env Environment, p Projectile, maxTicks int) []Projectile {
	states := []Projectile{p}
	for i := 0; i < maxTicks; i++ {
		p = Tick(env, p)
		states = append(states, p)
		if p.Position.Y <= 0 {
			break
		}
	}
	return states
}
