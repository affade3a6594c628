package systems

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"runefall-server/internal/domain"
	"runefall-server/pkg/logger"
)

// AIController - машина состояний враждебных сущностей.
// Каждый тик решает: стоять, блуждать, преследовать, атаковать или бежать.
// Цели ищутся через пространственный индекс; сближение - прямое
// преследование (планировщик пути остается доступным для явных запросов).
type AIController struct {
	index    *SpatialIndex
	resolver *CombatResolver
	world    domain.WalkableMap
	bus      *domain.Bus
	rng      *rand.Rand
	log      *logrus.Entry
}

// NewAIController собирает контроллер из явных зависимостей
func NewAIController(index *SpatialIndex, resolver *CombatResolver, world domain.WalkableMap, bus *domain.Bus, rng *rand.Rand) *AIController {
	return &AIController{
		index:    index,
		resolver: resolver,
		world:    world,
		bus:      bus,
		rng:      rng,
		log:      logger.Log.WithField("component", "ai_controller"),
	}
}

// Update продвигает одну враждебную сущность на dtMs миллисекунд
// симуляционного времени. Никаких обращений к настенным часам.
func (c *AIController) Update(h *domain.Hostile, dtMs float64) {
	if h == nil || dtMs <= 0 {
		return
	}

	// Мертвая сущность: параллельный таймер респавна, независимый от State
	if !h.Alive {
		c.tickRespawn(h, dtMs)
		return
	}

	// Перезарядка атаки тикает всегда
	if h.AI.CooldownMs > 0 {
		h.AI.CooldownMs -= dtMs
	}

	// Пассивный реген вне боя: 1% от максимума в секунду, в любом состоянии
	if !h.AI.InCombat && h.HP < h.MaxHP {
		h.RegenCarry += float64(h.MaxHP) * domain.RegenPerSecondFraction * dtMs / 1000
		if h.RegenCarry >= 1 {
			whole := int(h.RegenCarry)
			h.RegenCarry -= float64(whole)
			h.Heal(whole)
		}
	}

	// Отступление: из любого боевого состояния, когда здоровье ниже порога
	if h.AI.InCombat && h.RetreatThreshold > 0 && h.HPFraction() < h.RetreatThreshold {
		if h.AI.State == domain.AIStateChasing || h.AI.State == domain.AIStateAttacking {
			c.log.WithFields(logrus.Fields{
				"entity_id":   h.ID,
				"hp_fraction": h.HPFraction(),
			}).Debug("Retreat threshold crossed, fleeing.")
			h.AI.State = domain.AIStateFleeing
		}
	}

	switch h.AI.State {
	case domain.AIStateIdle:
		c.updateIdle(h, dtMs)
	case domain.AIStateWandering:
		c.updateWandering(h, dtMs)
	case domain.AIStateChasing:
		c.updateChasing(h, dtMs)
	case domain.AIStateAttacking:
		c.updateAttacking(h)
	case domain.AIStateFleeing:
		c.updateFleeing(h, dtMs)
	}
}

// tickRespawn ведет обратный отсчет возрождения и возвращает сущность
// на точку спавна с полным здоровьем и сброшенной машиной состояний.
func (c *AIController) tickRespawn(h *domain.Hostile, dtMs float64) {
	if h.AI.RespawnTimerMs <= 0 {
		// Смерть только что случилась - взводим таймер
		h.AI.RespawnTimerMs = h.RespawnMs
		if h.AI.RespawnTimerMs > 0 {
			return
		}
	}

	h.AI.RespawnTimerMs -= dtMs
	if h.AI.RespawnTimerMs > 0 {
		return
	}

	oldPos := h.Pos
	h.Pos = h.SpawnPos
	h.HP = h.MaxHP
	h.Alive = true
	h.RegenCarry = 0
	h.AI.Reset()
	if c.index != nil {
		c.index.Update(h, oldPos.X, oldPos.Y)
	}

	c.log.WithField("entity_id", h.ID).Debug("Hostile respawned.")
}

func (c *AIController) updateIdle(h *domain.Hostile, dtMs float64) {
	// Вовлечение от полученного урона: сразу в погоню
	if h.AI.InCombat && h.AI.Target != nil && h.AI.Target.IsAlive() {
		c.bus.Publish(domain.AIEngagedEvent{EntityID: h.ID, TargetID: h.AI.Target.EntityID()})
		h.AI.State = domain.AIStateChasing
		return
	}

	// Агрессивные сущности сканируют окрестность
	if h.Aggressive && !h.AI.InCombat {
		if target := c.nearestTarget(h); target != nil {
			h.AI.Engage(target)
			c.bus.Publish(domain.AIEngagedEvent{EntityID: h.ID, TargetID: target.EntityID()})
			h.AI.State = domain.AIStateChasing
			return
		}
	}

	// Блуждание по случайному таймеру 3-6 секунд
	if h.AI.WanderDelayMs <= 0 {
		h.AI.WanderDelayMs = domain.WanderDelayMinMs +
			c.rng.Float64()*(domain.WanderDelayMaxMs-domain.WanderDelayMinMs)
		return
	}

	h.AI.WanderDelayMs -= dtMs
	if h.AI.WanderDelayMs > 0 {
		return
	}
	h.AI.WanderDelayMs = 0

	if dest, ok := c.pickWanderPoint(h); ok {
		h.AI.WanderTarget = dest
		h.AI.HasWanderTarget = true
		h.AI.State = domain.AIStateWandering
	}
}

// pickWanderPoint выбирает случайную проходимую точку в радиусе блуждания
// от спавна. Несколько неудачных попыток - остаемся на месте до
// следующего таймера.
func (c *AIController) pickWanderPoint(h *domain.Hostile) (domain.Vec2, bool) {
	for attempt := 0; attempt < 5; attempt++ {
		dest := domain.Vec2{
			X: h.SpawnPos.X + (c.rng.Float64()*2-1)*h.WanderRadius,
			Y: h.SpawnPos.Y + (c.rng.Float64()*2-1)*h.WanderRadius,
		}
		if c.world == nil || c.world.IsWalkable(dest.TileX(), dest.TileY()) {
			return dest, true
		}
	}
	return domain.Vec2{}, false
}

func (c *AIController) updateWandering(h *domain.Hostile, dtMs float64) {
	// Вовлечение прерывает блуждание
	if h.AI.InCombat && h.AI.Target != nil && h.AI.Target.IsAlive() {
		h.AI.HasWanderTarget = false
		c.bus.Publish(domain.AIEngagedEvent{EntityID: h.ID, TargetID: h.AI.Target.EntityID()})
		h.AI.State = domain.AIStateChasing
		return
	}

	if !h.AI.HasWanderTarget {
		h.AI.State = domain.AIStateIdle
		return
	}

	res := SeekToward(&h.Entity, h, h.AI.WanderTarget, h.MoveSpeed, dtMs, c.world, c.index)
	if res.Arrived || !res.Moved {
		// Пришли (или уперлись в тупик) - назад в ожидание
		h.AI.HasWanderTarget = false
		h.AI.State = domain.AIStateIdle
	}
}

func (c *AIController) updateChasing(h *domain.Hostile, dtMs float64) {
	target := h.AI.Target
	if target == nil || !target.IsAlive() {
		c.disengage(h)
		return
	}

	dist := h.Pos.DistanceTo(target.Position())

	// Цель ушла за поводок - бросаем погоню
	if dist > h.AggroRange*domain.ChaseLeashFactor {
		c.disengage(h)
		return
	}

	if dist <= h.AttackRange {
		// В радиусе атаки: останавливаемся и бьем
		h.AI.State = domain.AIStateAttacking
		return
	}

	// Каждый тик преследуем текущую позицию цели (без кеширования пути)
	SeekToward(&h.Entity, h, target.Position(), h.MoveSpeed, dtMs, c.world, c.index)
}

func (c *AIController) updateAttacking(h *domain.Hostile) {
	target := h.AI.Target
	if target == nil || !target.IsAlive() {
		c.disengage(h)
		return
	}

	if h.Pos.DistanceTo(target.Position()) > h.AttackRange {
		// Цель вышла из радиуса - снова в погоню
		h.AI.State = domain.AIStateChasing
		return
	}

	if h.AI.CooldownMs > 0 {
		return
	}

	c.resolver.ResolveAttack(h, target)
	h.AI.CooldownMs = h.AttackIntervalMs()
}

func (c *AIController) updateFleeing(h *domain.Hostile, dtMs float64) {
	res := SeekToward(&h.Entity, h, h.SpawnPos, h.MoveSpeed, dtMs, c.world, c.index)
	if !res.Arrived {
		return
	}

	// Дома: полное восстановление и чистый лист
	h.HP = h.MaxHP
	h.RegenCarry = 0
	h.AI.Disengage()
	h.AI.State = domain.AIStateIdle
	c.bus.Publish(domain.AIDisengagedEvent{EntityID: h.ID})
}

// disengage выходит из боя. Если сущность далеко от спавна,
// она возвращается домой блужданием до точки спавна.
func (c *AIController) disengage(h *domain.Hostile) {
	h.AI.Disengage()
	c.bus.Publish(domain.AIDisengagedEvent{EntityID: h.ID})

	if h.Pos.DistanceTo(h.SpawnPos) > h.WanderRadius {
		h.AI.WanderTarget = h.SpawnPos
		h.AI.HasWanderTarget = true
		h.AI.State = domain.AIStateWandering
		return
	}
	h.AI.State = domain.AIStateIdle
}

// nearestTarget ищет ближайшего живого игрока в радиусе агрессии
func (c *AIController) nearestTarget(h *domain.Hostile) domain.Combatant {
	if c.index == nil {
		return nil
	}

	var best domain.Combatant
	bestDistSq := h.AggroRange * h.AggroRange

	for _, e := range c.index.EntitiesInRadius(h.Pos.X, h.Pos.Y, h.AggroRange) {
		if _, isPlayer := e.(*domain.Player); !isPlayer {
			continue
		}
		if !e.IsAlive() {
			continue
		}
		distSq := e.Position().DistanceSquaredTo(h.Pos)
		if distSq <= bestDistSq {
			bestDistSq = distSq
			best = e
		}
	}
	return best
}
