package engine

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"runefall-server/internal/domain"
	"runefall-server/internal/systems"
	"runefall-server/pkg/api"
	"runefall-server/pkg/gamedata"
	"runefall-server/pkg/logger"
	"runefall-server/pkg/utils"
)

// Simulation - ядро мира: собирает все системы через явные зависимости
// и продвигает их единым тиком. Ядро однопоточное: все мутации состояния
// происходят внутри Update, вызываемого из одной горутины.
type Simulation struct {
	Config Config
	World  *domain.TileMap
	Data   *gamedata.Registry

	Bus      *domain.Bus
	Index    *systems.SpatialIndex
	Paths    *systems.PathPlanner
	Progress *systems.ProgressionEngine
	Combat   *systems.CombatResolver
	AI       *systems.AIController

	Player   *domain.Player
	Hostiles []*domain.Hostile

	Tick    uint64
	ClockMs float64

	rng *rand.Rand
	log *logrus.Entry
}

// NewSimulation собирает симуляцию поверх готовой карты и реестра данных
func NewSimulation(cfg Config, world *domain.TileMap, data *gamedata.Registry) *Simulation {
	cellSize := cfg.CellSize
	if cellSize <= 0 {
		cellSize = systems.DefaultCellSize
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	bus := domain.NewBus()
	index := systems.NewSpatialIndex(cellSize)
	progress := systems.NewProgressionEngine(bus)
	combat := systems.NewCombatResolver(rng, data, progress, bus)

	sim := &Simulation{
		Config:   cfg,
		World:    world,
		Data:     data,
		Bus:      bus,
		Index:    index,
		Paths:    systems.NewPathPlanner(world),
		Progress: progress,
		Combat:   combat,
		AI:       systems.NewAIController(index, combat, world, bus, rng),
		rng:      rng,
		log:      logger.Log.WithField("component", "simulation"),
	}

	sim.log.WithField("seed", cfg.Seed).Info("Simulation initialized.")
	return sim
}

// CreatePlayer создает игрока с каноничным стартом (Hitpoints 10)
// и регистрирует его в мире.
func (s *Simulation) CreatePlayer(name string, pos domain.Vec2, gear domain.EquipmentSource, bag domain.Inventory) *domain.Player {
	id := utils.GenerateDeterministicID(s.rng, "player_")
	p := domain.NewPlayer(id, name, pos, gear, bag)
	s.Progress.InitSkill(p, domain.SkillHitpoints, 10)
	p.HP = p.MaxHP
	s.AttachPlayer(p)
	return p
}

// AttachPlayer регистрирует внешнего игрока в симуляции
func (s *Simulation) AttachPlayer(p *domain.Player) {
	s.Player = p
	s.Index.Insert(p)
	s.log.WithFields(logrus.Fields{
		"entity_id":    p.ID,
		"combat_level": p.CombatLevel,
	}).Info("Player joined the world.")
}

// SpawnHostile создает враждебную сущность из реестра данных
func (s *Simulation) SpawnHostile(typeID string, pos domain.Vec2) (*domain.Hostile, error) {
	def, ok := s.Data.Hostile(typeID)
	if !ok {
		return nil, fmt.Errorf("unknown hostile type %q", typeID)
	}

	h := &domain.Hostile{
		Entity: domain.Entity{
			ID:       utils.GenerateDeterministicID(s.rng, typeID+"_"),
			Name:     def.Name,
			Pos:      pos,
			SpawnPos: pos,
			Alive:    true,
		},
		TypeID:           typeID,
		HP:               def.Hitpoints,
		MaxHP:            def.Hitpoints,
		AttackLevel:      def.Attack,
		StrengthLevel:    def.Strength,
		DefenceLevel:     def.Defence,
		BaseMaxHit:       def.MaxHit,
		AttackRange:      def.AttackRange,
		AttackSpeed:      def.AttackSpeed,
		MoveSpeed:        def.MoveSpeed,
		Aggressive:       def.Aggressive,
		AggroRange:       def.AggroRange,
		WanderRadius:     def.WanderRadius,
		RetreatThreshold: def.RetreatThreshold,
		RespawnMs:        def.RespawnMs,
		LootTableID:      def.LootTable,
	}

	s.Hostiles = append(s.Hostiles, h)
	s.Index.Insert(h)

	s.log.WithFields(logrus.Fields{
		"entity_id": h.ID,
		"type":      typeID,
	}).Debug("Hostile spawned.")
	return h, nil
}

// HostileByID находит враждебную сущность по идентификатору
func (s *Simulation) HostileByID(id string) *domain.Hostile {
	for _, h := range s.Hostiles {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// Update продвигает мир на dtMs миллисекунд симуляционного времени.
// Порядок обхода сущностей - порядок спавна; он стабилен между тиками.
func (s *Simulation) Update(dtMs float64) {
	if dtMs <= 0 {
		return
	}
	s.Tick++
	s.ClockMs += dtMs

	if s.Player != nil {
		if s.Player.CooldownMs > 0 {
			s.Player.CooldownMs -= dtMs
		}
		s.Progress.Tick(s.Player, dtMs)
	}

	for _, h := range s.Hostiles {
		s.AI.Update(h, dtMs)
	}
}

// PlayerAttack выполняет атаку игрока по цели. Дистанция и перезарядка
// проверяются здесь: резолвер по контракту считает только исход.
func (s *Simulation) PlayerAttack(targetID string) (systems.AttackResult, error) {
	p := s.Player
	if p == nil || !p.Alive {
		return systems.AttackResult{}, fmt.Errorf("no live player in the world")
	}

	target := s.HostileByID(targetID)
	if target == nil || !target.Alive {
		return systems.AttackResult{}, fmt.Errorf("target %q not found or dead", targetID)
	}

	if p.CooldownMs > 0 {
		return systems.AttackResult{}, fmt.Errorf("attack on cooldown: %.0fms left", p.CooldownMs)
	}
	if p.Pos.DistanceTo(target.Pos) > p.AttackRange {
		return systems.AttackResult{}, fmt.Errorf("target %q out of range", targetID)
	}

	p.Face(target.Pos.X-p.Pos.X, target.Pos.Y-p.Pos.Y)
	res := s.Combat.ResolveAttack(p, target)
	p.CooldownMs = p.AttackIntervalMs()
	p.InCombat = true
	return res, nil
}

// MovePlayerToward двигает игрока к точке на один тик
func (s *Simulation) MovePlayerToward(dest domain.Vec2, dtMs float64) systems.SeekResult {
	p := s.Player
	if p == nil || !p.Alive {
		return systems.SeekResult{}
	}
	return systems.SeekToward(&p.Entity, p, dest, p.MoveSpeed, dtMs, s.World, s.Index)
}

// NearestLiveHostile ищет ближайшую живую враждебную сущность в радиусе
func (s *Simulation) NearestLiveHostile(pos domain.Vec2, radius float64) *domain.Hostile {
	var best *domain.Hostile
	bestDistSq := radius * radius

	for _, e := range s.Index.EntitiesInRadius(pos.X, pos.Y, radius) {
		h, ok := e.(*domain.Hostile)
		if !ok || !h.Alive {
			continue
		}
		distSq := h.Pos.DistanceSquaredTo(pos)
		if distSq <= bestDistSq {
			bestDistSq = distSq
			best = h
		}
	}
	return best
}

// Snapshot собирает проекцию мира для наблюдателей
func (s *Simulation) Snapshot() api.Snapshot {
	snap := api.Snapshot{
		Type:    api.TypeSnapshot,
		Tick:    s.Tick,
		ClockMs: s.ClockMs,
	}

	if p := s.Player; p != nil {
		hp, maxHP := p.Hitpoints()
		snap.Entities = append(snap.Entities, api.EntityView{
			ID:     p.ID,
			Name:   p.Name,
			Kind:   "player",
			X:      p.Pos.X,
			Y:      p.Pos.Y,
			HP:     hp,
			MaxHP:  maxHP,
			Level:  p.CombatLevel,
			Facing: p.Facing.String(),
			Alive:  p.Alive,
		})
	}

	for _, h := range s.Hostiles {
		snap.Entities = append(snap.Entities, api.EntityView{
			ID:     h.ID,
			Name:   h.Name,
			Kind:   "hostile",
			X:      h.Pos.X,
			Y:      h.Pos.Y,
			HP:     h.HP,
			MaxHP:  h.MaxHP,
			State:  h.AI.State.String(),
			Facing: h.Facing.String(),
			Alive:  h.Alive,
		})
	}

	return snap
}
