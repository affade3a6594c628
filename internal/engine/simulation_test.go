package engine_test

import (
	"os"
	"reflect"
	"testing"

	"runefall-server/internal/agent"
	"runefall-server/internal/domain"
	"runefall-server/internal/engine"
	"runefall-server/pkg/gamedata"
	"runefall-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newArena() *domain.TileMap {
	world := domain.NewTileMap(30, 30)
	for i := 0; i < 30; i++ {
		world.SetWall(i, 0)
		world.SetWall(i, 29)
		world.SetWall(0, i)
		world.SetWall(29, i)
	}
	return world
}

func newSim(seed int64) *engine.Simulation {
	return engine.NewSimulation(engine.Config{Seed: seed}, newArena(), gamedata.Default())
}

// Сильный ветеран для сценарных тестов: бой заканчивается быстро
// и предсказуемо в его пользу.
func createVeteran(sim *engine.Simulation) *domain.Player {
	p := sim.CreatePlayer("Vet", domain.Vec2{X: 10.5, Y: 10.5}, nil, engine.NewBagInventory(28))
	sim.Progress.InitSkill(p, domain.SkillAttack, 70)
	sim.Progress.InitSkill(p, domain.SkillStrength, 60)
	sim.Progress.InitSkill(p, domain.SkillDefence, 60)
	sim.Progress.InitSkill(p, domain.SkillHitpoints, 50)
	p.HP = p.MaxHP
	return p
}

// Полный цикл: автопилот убивает скелета, получает лут и опыт,
// скелет возрождается по таймеру.
func TestSimulation_KillLootRespawn(t *testing.T) {
	sim := newSim(42)
	player := createVeteran(sim)
	pilot := agent.NewAutopilot(sim)

	skeleton, err := sim.SpawnHostile("skeleton_warrior", domain.Vec2{X: 12.5, Y: 10.5})
	if err != nil {
		t.Fatal(err)
	}

	deaths := 0
	sim.Bus.Subscribe(domain.EventEntityDeath, func(e domain.Event) {
		if e.(domain.EntityDeathEvent).EntityID == skeleton.ID {
			deaths++
		}
	})

	combatSkills := []domain.Skill{
		domain.SkillAttack, domain.SkillStrength,
		domain.SkillDefence, domain.SkillHitpoints,
	}
	baseline := make(map[domain.Skill]float64)
	for _, sk := range combatSkills {
		baseline[sk] = player.Skills.Get(sk).XP
	}

	died, respawned := false, false
	for i := 0; i < 10000; i++ {
		sim.Update(100)
		pilot.Step(100)

		if deaths > 0 && !died {
			died = true
		}
		if died && skeleton.Alive {
			respawned = true
			break
		}
	}

	if !died {
		t.Fatal("skeleton never died")
	}
	if !respawned {
		t.Fatal("skeleton never respawned")
	}
	if !player.Alive {
		t.Fatal("veteran died to a skeleton")
	}

	bag := player.Bag.(*engine.BagInventory)
	if bag.Count("bones") < 1 {
		t.Error("guaranteed bones drop missing from the bag")
	}

	// Стиль Controlled: опыт течет в атаку, силу, защиту и здоровье
	for _, sk := range combatSkills {
		if xp := player.Skills.Get(sk).XP; xp <= baseline[sk] {
			t.Errorf("no %v XP gained: %v", sk, xp)
		}
	}
}

// Один и тот же сид дает побитово одинаковую симуляцию
func TestSimulation_Determinism(t *testing.T) {
	run := func() interface{} {
		sim := newSim(7)
		createVeteran(sim)
		if _, err := sim.SpawnHostile("goblin", domain.Vec2{X: 14.5, Y: 10.5}); err != nil {
			t.Fatal(err)
		}
		if _, err := sim.SpawnHostile("giant_rat", domain.Vec2{X: 20.5, Y: 20.5}); err != nil {
			t.Fatal(err)
		}
		pilot := agent.NewAutopilot(sim)

		for i := 0; i < 500; i++ {
			sim.Update(100)
			pilot.Step(100)
		}
		return sim.Snapshot()
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed diverged:\n%+v\n%+v", first, second)
	}
}

func TestSimulation_PlayerAttackValidation(t *testing.T) {
	sim := newSim(3)
	player := createVeteran(sim)

	farGoblin, err := sim.SpawnHostile("goblin", domain.Vec2{X: 25.5, Y: 25.5})
	if err != nil {
		t.Fatal(err)
	}
	nearGoblin, err := sim.SpawnHostile("goblin", domain.Vec2{X: 11.5, Y: 10.5})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := sim.PlayerAttack("no_such_id"); err == nil {
		t.Error("expected error for unknown target")
	}
	if _, err := sim.PlayerAttack(farGoblin.ID); err == nil {
		t.Error("expected out-of-range error")
	}

	if _, err := sim.PlayerAttack(nearGoblin.ID); err != nil {
		t.Fatalf("attack in range failed: %v", err)
	}
	if player.CooldownMs <= 0 {
		t.Error("cooldown not armed after attack")
	}
	if _, err := sim.PlayerAttack(nearGoblin.ID); err == nil {
		t.Error("expected cooldown error")
	}

	// Перезарядка истекает с симуляционным временем
	sim.Update(player.AttackIntervalMs() + 100)
	if _, err := sim.PlayerAttack(nearGoblin.ID); err != nil {
		t.Errorf("attack after cooldown failed: %v", err)
	}
}

func TestSimulation_SpawnUnknownType(t *testing.T) {
	sim := newSim(4)
	if _, err := sim.SpawnHostile("dragon", domain.Vec2{X: 5.5, Y: 5.5}); err == nil {
		t.Error("expected error for unknown hostile type")
	}
}

func TestSimulation_UpdateIgnoresNonPositiveDelta(t *testing.T) {
	sim := newSim(5)
	sim.Update(0)
	sim.Update(-100)
	if sim.Tick != 0 || sim.ClockMs != 0 {
		t.Errorf("non-positive delta advanced the clock: tick %d, clock %v", sim.Tick, sim.ClockMs)
	}
}

func TestSimulation_SnapshotShape(t *testing.T) {
	sim := newSim(6)
	createVeteran(sim)
	if _, err := sim.SpawnHostile("goblin", domain.Vec2{X: 14.5, Y: 14.5}); err != nil {
		t.Fatal(err)
	}

	sim.Update(100)
	snap := sim.Snapshot()

	if snap.Tick != 1 {
		t.Errorf("snapshot tick = %d, want 1", snap.Tick)
	}
	if len(snap.Entities) != 2 {
		t.Fatalf("snapshot entities = %d, want 2", len(snap.Entities))
	}
	if snap.Entities[0].Kind != "player" {
		t.Errorf("first entity kind = %q, want player", snap.Entities[0].Kind)
	}
	if snap.Entities[1].Kind != "hostile" || snap.Entities[1].State == "" {
		t.Errorf("hostile view incomplete: %+v", snap.Entities[1])
	}
	if snap.Entities[0].MaxHP != 50 {
		t.Errorf("player MaxHP in view = %d, want 50", snap.Entities[0].MaxHP)
	}
}
