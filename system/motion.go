package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/oncoarena/component"
	"github.com/lixenwraith/oncoarena/core"
	"github.com/lixenwraith/oncoarena/engine"
	"github.com/lixenwraith/oncoarena/event"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/vmath"
)

// integrate advances body by its velocity over dt seconds
// A non-finite result is rejected and the body keeps its previous position
func integrate(body *component.BodyComponent, dt float64, rejected *atomic.Int64) bool {
	next := body.Pos.Add(body.Vel.Scale(dt))
	if !next.Finite() || !body.Vel.Finite() {
		body.Vel = vmath.Vec2{}
		if rejected != nil {
			rejected.Add(1)
		}
		return false
	}
	body.Pos = next
	return true
}

// playerBody returns the player's body when the player exists
func playerBody(w *engine.World) (*component.BodyComponent, bool) {
	return w.Components.Body.Get(w.Resources.Player.Entity)
}

// ownerAlive is the validity predicate for callbacks scheduled on behalf of an enemy
func ownerAlive(w *engine.World, e core.Entity) bool {
	if w.Resources.Game.Over() {
		return false
	}
	enemy, ok := w.Components.Enemy.Get(e)
	return ok && !enemy.Dead
}

// enemyShot describes one hostile projectile
type enemyShot struct {
	owner    core.Entity
	from     vmath.Vec2
	angle    float64
	speed    float64
	damage   float64
	lifetime time.Duration
	tracking bool
}

// fireEnemyShot creates a hostile projectile entity
func fireEnemyShot(w *engine.World, shot enemyShot) core.Entity {
	e := w.CreateEntity()
	w.Components.Body.Set(e, &component.BodyComponent{
		Pos:    shot.from,
		Vel:    vmath.FromAngle(shot.angle, shot.speed),
		Radius: parameter.EnemyProjectileRadius,
	})
	w.Components.Projectile.Set(e, &component.ProjectileComponent{
		Owner:          shot.owner,
		Hostile:        true,
		Damage:         shot.damage,
		OriginalDamage: shot.damage,
		Lifetime:       shot.lifetime,
		Tracking:       shot.tracking,
		Speed:          shot.speed,
		Visible:        true,
		Origin:         shot.from,
		MaxHits:        1,
	})
	return e
}

// announceShots tells presentation that an enemy fired
func announceShots(w *engine.World, owner core.Entity, count int) {
	if count <= 0 {
		return
	}
	w.PushEvent(event.EventProjectileFired, &event.ProjectileFiredPayload{
		Owner: owner,
		Count: count,
		Enemy: true,
	})
}
