package agent

import (
	"github.com/sirupsen/logrus"

	"runefall-server/internal/domain"
	"runefall-server/internal/engine"
	"runefall-server/internal/systems"
	"runefall-server/pkg/logger"
)

// Autopilot - "игрок-компьютер" (Headless Agent).
// Демо-хост запускает мир без живых клиентов, и кто-то должен играть за
// игрока: автопилот каждый тик осматривается, прокладывает путь к ближайшей
// враждебной сущности и бьет ее, когда она в радиусе атаки.
//
// Жизненный цикл:
//  1. NewAutopilot -> привязка к симуляции и ее игроку.
//  2. Step вызывается хостом после каждого Update симуляции, в той же
//     горутине: автопилот - не клиент по сети, а встроенный водитель.
type Autopilot struct {
	sim *engine.Simulation

	// SearchRadius - дальность осмотра в тайлах
	SearchRadius float64

	// Кешированный сглаженный путь к текущей цели.
	// Перепланируется, когда цель меняет тайл или путь уперся в тупик.
	path     []systems.TilePoint
	pathGoal systems.TilePoint

	log *logrus.Entry
}

// NewAutopilot создает автопилот для игрока симуляции
func NewAutopilot(sim *engine.Simulation) *Autopilot {
	return &Autopilot{
		sim:          sim,
		SearchRadius: 30,
		log:          logger.Log.WithField("component", "autopilot"),
	}
}

// Step принимает одно решение за игрока на тик длиной dtMs
func (a *Autopilot) Step(dtMs float64) {
	p := a.sim.Player
	if p == nil || !p.Alive {
		return
	}

	target := a.sim.NearestLiveHostile(p.Pos, a.SearchRadius)
	if target == nil {
		// Некого бить - стоим на месте
		a.path = nil
		return
	}

	if p.Pos.DistanceTo(target.Pos) <= p.AttackRange {
		a.path = nil
		a.attack(target)
		return
	}

	a.follow(target, dtMs)
}

func (a *Autopilot) attack(target *domain.Hostile) {
	p := a.sim.Player
	if p.CooldownMs > 0 {
		return
	}

	res, err := a.sim.PlayerAttack(target.ID)
	if err != nil {
		a.log.WithError(err).Debug("Attack attempt rejected.")
		return
	}
	a.log.WithFields(logrus.Fields{
		"target_id": target.ID,
		"hit":       res.Hit,
		"damage":    res.Damage,
	}).Debug("Autopilot attacked.")
}

// follow идет к цели по сглаженному пути планировщика
func (a *Autopilot) follow(target *domain.Hostile, dtMs float64) {
	p := a.sim.Player
	goal := systems.TilePoint{X: target.Pos.TileX(), Y: target.Pos.TileY()}

	if len(a.path) == 0 || a.pathGoal != goal {
		start := systems.TilePoint{X: p.Pos.TileX(), Y: p.Pos.TileY()}
		raw := a.sim.Paths.FindPath(start, goal, true)
		if raw == nil {
			// Цель недостижима по тайлам - пробуем прямое сближение
			a.sim.MovePlayerToward(target.Pos, dtMs)
			return
		}
		a.path = a.sim.Paths.SmoothPath(raw)
		a.pathGoal = goal
	}

	next := domain.Vec2{
		X: float64(a.path[0].X) + 0.5,
		Y: float64(a.path[0].Y) + 0.5,
	}
	res := a.sim.MovePlayerToward(next, dtMs)
	if res.Arrived {
		a.path = a.path[1:]
		return
	}
	if !res.Moved {
		// Уперлись - путь устарел, перепланируем на следующем тике
		a.path = nil
	}
}
