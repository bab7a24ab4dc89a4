package particle

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	"golang.org/x/exp/rand"
)

// Box2D solver iterations per step
const (
	VelocityIterations int = 8
	PositionIterations int = 3
)

// Box2D is a Physics which simulates a World with the Box2D rigid body
// engine.
//
// Every entity is mirrored by a circular body with the entity's size as
// its radius and the entity's mass. Movable entities are dynamic bodies,
// all others are static. Entities which do not collide are given sensor
// fixtures so that they overlap freely. The World remains the source of
// truth: on each step the position and velocity of every entity are
// copied into Box2D, the action forces are applied, the Box2D world is
// stepped, and the new state of every movable entity is copied back.
//
// Damping is converted into Box2D linear damping so that a body with no
// force applied loses the same fraction of its speed per step as under
// Euler integration. Box2D applies damping after forces and limits the
// distance travelled per step, so trajectories approximate, but do not
// exactly match, those produced by Euler.
//
// Box2D only simulates two dimensional worlds.
type Box2D struct {
	world  box2d.B2World
	bodies map[*Entity]*box2d.B2Body
}

// NewBox2D returns a new Box2D Physics with an empty, gravity-free
// Box2D world
func NewBox2D() *Box2D {
	return &Box2D{
		world:  box2d.MakeB2World(box2d.MakeB2Vec2(0.0, 0.0)),
		bodies: make(map[*Entity]*box2d.B2Body),
	}
}

// Step advances w by a single step
func (b *Box2D) Step(w *World, src rand.Source) {
	if w.DimP != 2 {
		panic(fmt.Sprintf("step: Box2D can only simulate 2D worlds "+
			"\n\twant(2) \n\thave(%v)", w.DimP))
	}

	bodies := w.Entities()
	forces := actionForces(w, bodies, src)

	for i, entity := range bodies {
		e, s := entity.body()
		body := b.sync(w, e, s)

		if e.Movable && forces[i] != nil {
			force := box2d.MakeB2Vec2(forces[i].AtVec(0), forces[i].AtVec(1))
			body.ApplyForceToCenter(force, true)
		}
	}

	b.world.Step(w.Dt, VelocityIterations, PositionIterations)

	for _, entity := range bodies {
		e, s := entity.body()
		if !e.Movable {
			continue
		}
		body := b.bodies[e]

		vel := body.GetLinearVelocity()
		s.PVel.SetVec(0, vel.X)
		s.PVel.SetVec(1, vel.Y)
		clipSpeed(e, s)

		pos := body.GetPosition()
		s.PPos.SetVec(0, pos.X)
		s.PPos.SetVec(1, pos.Y)
	}

	updateCommunication(w, src)
}

// sync copies the state of an entity into its Box2D body, creating the
// body if it does not yet exist
func (b *Box2D) sync(w *World, e *Entity, s *EntityState) *box2d.B2Body {
	body, ok := b.bodies[e]
	if !ok {
		body = b.createBody(w, e, s)
		b.bodies[e] = body
	}

	var bodyType uint8 = box2d.B2BodyType.B2_staticBody
	if e.Movable {
		bodyType = box2d.B2BodyType.B2_dynamicBody
	}
	if body.GetType() != bodyType {
		body.SetType(bodyType)
	}

	body.SetTransform(box2d.MakeB2Vec2(s.PPos.AtVec(0), s.PPos.AtVec(1)), 0.0)
	if e.Movable {
		body.SetLinearVelocity(box2d.MakeB2Vec2(s.PVel.AtVec(0),
			s.PVel.AtVec(1)))
	}
	return body
}

// createBody adds a new circular body for e to the Box2D world
func (b *Box2D) createBody(w *World, e *Entity, s *EntityState) *box2d.B2Body {
	bodyDef := box2d.MakeB2BodyDef()
	bodyDef.Type = box2d.B2BodyType.B2_staticBody
	bodyDef.Position = box2d.MakeB2Vec2(s.PPos.AtVec(0), s.PPos.AtVec(1))
	bodyDef.AllowSleep = false
	bodyDef.FixedRotation = true
	bodyDef.LinearDamping = linearDamping(w.Damping, w.Dt)

	body := b.world.CreateBody(&bodyDef)

	shape := box2d.MakeB2CircleShape()
	shape.SetRadius(e.Size)

	fixtureDef := box2d.MakeB2FixtureDef()
	fixtureDef.Shape = &shape
	fixtureDef.Density = density(e)
	fixtureDef.IsSensor = !e.Collide
	body.CreateFixtureFromDef(&fixtureDef)

	return body
}

// Close removes all bodies from the Box2D world
func (b *Box2D) Close() error {
	for e, body := range b.bodies {
		b.world.DestroyBody(body)
		delete(b.bodies, e)
	}
	return nil
}

// density returns the fixture density which gives a circle of the
// entity's size the entity's mass
func density(e *Entity) float64 {
	if e.Size <= 0 {
		return e.Density
	}
	return e.mass() / (math.Pi * e.Size * e.Size)
}

// linearDamping converts a per-step velocity damping fraction into the
// damping coefficient c used by Box2D, which scales velocities by
// 1 / (1 + dt*c) each step
func linearDamping(damping, dt float64) float64 {
	if damping <= 0 {
		return 0
	}
	if damping >= 1 {
		damping = 1 - 1e-6
	}
	return damping / ((1 - damping) * dt)
}
