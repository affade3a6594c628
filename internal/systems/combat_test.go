package systems

import (
	"math"
	"math/rand"
	"testing"

	"runefall-server/internal/domain"
	"runefall-server/pkg/gamedata"
)

type fakeBag struct {
	items map[string]int
	full  bool
}

func newFakeBag() *fakeBag {
	return &fakeBag{items: make(map[string]int)}
}

func (b *fakeBag) AddItem(itemID string, quantity int) (bool, int) {
	if b.full {
		return false, quantity
	}
	b.items[itemID] += quantity
	return true, 0
}

func newResolver(seed int64) (*CombatResolver, *domain.Bus) {
	bus := domain.NewBus()
	rng := rand.New(rand.NewSource(seed))
	progress := NewProgressionEngine(bus)
	return NewCombatResolver(rng, gamedata.Default(), progress, bus), bus
}

func newDummyTarget(id string, hp int) *domain.Hostile {
	return &domain.Hostile{
		Entity: domain.Entity{ID: id, Alive: true},
		HP:     hp,
		MaxHP:  hp,

		AttackLevel:   10,
		StrengthLevel: 10,
		DefenceLevel:  10,
		BaseMaxHit:    3,
	}
}

// При равных потолках бросков вероятность попадания чуть ниже половины:
// p = (n - 1) / 2n. Проверяем статистически на фиксированном зерне.
func TestResolveAttack_HitProbability(t *testing.T) {
	resolver, _ := newResolver(1)
	attacker := newDummyTarget("att", 1 << 30)
	target := newDummyTarget("def", 1 << 30)

	const attempts = 5000
	hits := 0
	for i := 0; i < attempts; i++ {
		res := resolver.ResolveAttack(attacker, target)
		if res.Hit {
			hits++
		}
	}

	got := float64(hits) / attempts
	want := 0.4992 // 639/1280 при потолках 640
	if math.Abs(got-want) > 0.03 {
		t.Errorf("hit rate = %.4f, want ~%.4f", got, want)
	}
}

func TestResolveAttack_DamageWithinBounds(t *testing.T) {
	resolver, _ := newResolver(2)
	attacker := newDummyTarget("att", 1 << 30)
	target := newDummyTarget("def", 1 << 30)

	for i := 0; i < 2000; i++ {
		res := resolver.ResolveAttack(attacker, target)
		if !res.Hit && res.Damage != 0 {
			t.Fatalf("miss dealt damage: %+v", res)
		}
		if res.Damage < 0 || res.Damage > attacker.MaxHit() {
			t.Fatalf("damage %d outside [0, %d]", res.Damage, attacker.MaxHit())
		}
	}
}

func TestResolveAttack_InvalidInputIsNoop(t *testing.T) {
	resolver, bus := newResolver(3)

	published := 0
	bus.Subscribe(domain.EventAttackResolved, func(domain.Event) { published++ })

	if res := resolver.ResolveAttack(nil, newDummyTarget("def", 10)); res.Hit || res.Damage != 0 {
		t.Errorf("nil attacker produced result %+v", res)
	}

	dead := newDummyTarget("dead", 10)
	dead.Alive = false
	if res := resolver.ResolveAttack(dead, newDummyTarget("def", 10)); res.Hit {
		t.Errorf("dead attacker landed a hit")
	}
	if res := resolver.ResolveAttack(newDummyTarget("att", 10), dead); res.Hit {
		t.Errorf("hit on a dead target")
	}

	if published != 0 {
		t.Errorf("no-op attacks published %d events", published)
	}
}

// Стиль Aggressive: весь опыт в силу, Hitpoints всегда получает базу/3
func TestResolveAttack_AggressiveStyleXP(t *testing.T) {
	resolver, _ := newResolver(4)

	player := domain.NewPlayer("p1", "Tester", domain.Vec2{}, nil, nil)
	player.Style = domain.StyleAggressive
	player.HP, player.MaxHP = 10, 10

	target := newDummyTarget("def", 1 << 30)
	target.DefenceLevel = 1

	totalDamage := 0
	for i := 0; i < 200; i++ {
		res := resolver.ResolveAttack(player, target)
		totalDamage += res.Damage
		if totalDamage > 0 {
			break
		}
	}
	if totalDamage == 0 {
		t.Fatal("no damage landed in 200 attacks")
	}

	wantStr := float64(totalDamage * domain.BaseXPPerDamage)
	if got := player.Skills.Get(domain.SkillStrength).XP; got != wantStr {
		t.Errorf("strength XP = %v, want %v", got, wantStr)
	}
	if got := player.Skills.Get(domain.SkillAttack).XP; got != 0 {
		t.Errorf("attack XP = %v, want 0", got)
	}
	wantHP := wantStr / domain.HitpointsXPDivisor
	if got := player.Skills.Get(domain.SkillHitpoints).XP; got != wantHP {
		t.Errorf("hitpoints XP = %v, want %v", got, wantHP)
	}
}

// Стиль Controlled: база делится поровну между тремя навыками
func TestResolveAttack_ControlledStyleXP(t *testing.T) {
	resolver, _ := newResolver(5)

	player := domain.NewPlayer("p1", "Tester", domain.Vec2{}, nil, nil)
	player.Style = domain.StyleControlled
	player.HP, player.MaxHP = 10, 10

	target := newDummyTarget("def", 1 << 30)
	target.DefenceLevel = 1

	totalDamage := 0
	for i := 0; i < 200; i++ {
		res := resolver.ResolveAttack(player, target)
		totalDamage += res.Damage
	}
	if totalDamage == 0 {
		t.Fatal("no damage landed in 200 attacks")
	}

	share := float64(totalDamage*domain.BaseXPPerDamage) / 3
	for _, sk := range []domain.Skill{domain.SkillAttack, domain.SkillStrength, domain.SkillDefence} {
		if got := player.Skills.Get(sk).XP; math.Abs(got-share) > 1e-6 {
			t.Errorf("%v XP = %v, want %v", sk, got, share)
		}
	}
}

// Враждебный атакующий опыта не получает
func TestResolveAttack_HostileGainsNoXP(t *testing.T) {
	resolver, bus := newResolver(6)

	xpEvents := 0
	bus.Subscribe(domain.EventSkillXPGained, func(domain.Event) { xpEvents++ })

	attacker := newDummyTarget("att", 1 << 30)
	target := newDummyTarget("def", 1 << 30)
	for i := 0; i < 100; i++ {
		resolver.ResolveAttack(attacker, target)
	}

	if xpEvents != 0 {
		t.Errorf("hostile attacker produced %d XP events", xpEvents)
	}
}

func TestResolveAttack_DeathAndLoot(t *testing.T) {
	resolver, bus := newResolver(7)

	var deaths []domain.EntityDeathEvent
	var drops []domain.LootDroppedEvent
	bus.Subscribe(domain.EventEntityDeath, func(e domain.Event) {
		deaths = append(deaths, e.(domain.EntityDeathEvent))
	})
	bus.Subscribe(domain.EventLootDropped, func(e domain.Event) {
		drops = append(drops, e.(domain.LootDroppedEvent))
	})

	bag := newFakeBag()
	player := domain.NewPlayer("p1", "Tester", domain.Vec2{}, nil, bag)
	player.HP, player.MaxHP = 10, 10

	goblin := newDummyTarget("gob1", 2)
	goblin.DefenceLevel = 1
	goblin.LootTableID = "goblin_drops"

	killed := false
	for i := 0; i < 10000 && !killed; i++ {
		resolver.ResolveAttack(player, goblin)
		killed = !goblin.Alive
	}
	if !killed {
		t.Fatal("goblin survived 10000 attacks")
	}

	if len(deaths) != 1 {
		t.Fatalf("expected 1 death event, got %d", len(deaths))
	}
	if deaths[0].EntityID != "gob1" || deaths[0].KillerID != "p1" {
		t.Errorf("unexpected death payload: %+v", deaths[0])
	}

	// Кости гарантированы
	if bag.items["bones"] != 1 {
		t.Errorf("bones = %d, want 1", bag.items["bones"])
	}
	foundBones := false
	for _, d := range drops {
		if d.ItemID == "bones" {
			foundBones = true
			if !d.Placed {
				t.Error("guaranteed drop not placed into an empty bag")
			}
		}
	}
	if !foundBones {
		t.Error("no bones drop event")
	}

	// Мертвую цель бить нельзя
	if res := resolver.ResolveAttack(player, goblin); res.Hit {
		t.Error("hit landed on a corpse")
	}
	if len(deaths) != 1 {
		t.Errorf("death fired twice: %d events", len(deaths))
	}
}

func TestResolveAttack_MissingLootTableIsSkipped(t *testing.T) {
	resolver, bus := newResolver(8)

	drops := 0
	bus.Subscribe(domain.EventLootDropped, func(domain.Event) { drops++ })

	player := domain.NewPlayer("p1", "Tester", domain.Vec2{}, nil, newFakeBag())
	player.HP, player.MaxHP = 10, 10

	target := newDummyTarget("mystery", 1)
	target.DefenceLevel = 1
	target.LootTableID = "no_such_table"

	for i := 0; i < 10000 && target.Alive; i++ {
		resolver.ResolveAttack(player, target)
	}

	if target.Alive {
		t.Fatal("target survived")
	}
	if drops != 0 {
		t.Errorf("expected no drops for missing table, got %d", drops)
	}
}

func TestResolveAttack_FullInventoryLosesLoot(t *testing.T) {
	resolver, bus := newResolver(9)

	var drops []domain.LootDroppedEvent
	bus.Subscribe(domain.EventLootDropped, func(e domain.Event) {
		drops = append(drops, e.(domain.LootDroppedEvent))
	})

	bag := newFakeBag()
	bag.full = true
	player := domain.NewPlayer("p1", "Tester", domain.Vec2{}, nil, bag)
	player.HP, player.MaxHP = 10, 10

	goblin := newDummyTarget("gob1", 1)
	goblin.DefenceLevel = 1
	goblin.LootTableID = "goblin_drops"

	for i := 0; i < 10000 && goblin.Alive; i++ {
		resolver.ResolveAttack(player, goblin)
	}

	if goblin.Alive {
		t.Fatal("goblin survived")
	}
	if len(drops) == 0 {
		t.Fatal("expected drop events even with a full bag")
	}
	for _, d := range drops {
		if d.Placed {
			t.Errorf("drop %s placed into a full bag", d.ItemID)
		}
	}
	if len(bag.items) != 0 {
		t.Errorf("full bag accepted items: %v", bag.items)
	}
}

// Получив урон в мирном состоянии, агрессивная цель вступает в бой
func TestResolveAttack_DamageEngagesAggressiveTarget(t *testing.T) {
	resolver, _ := newResolver(10)

	player := domain.NewPlayer("p1", "Tester", domain.Vec2{}, nil, nil)
	player.HP, player.MaxHP = 10, 10
	player.Skills.Get(domain.SkillAttack).BoostedLevel = 50

	target := newDummyTarget("gob1", 1 << 30)
	target.DefenceLevel = 1
	target.Aggressive = true

	for i := 0; i < 200 && !target.AI.InCombat; i++ {
		resolver.ResolveAttack(player, target)
	}

	if !target.AI.InCombat {
		t.Fatal("aggressive target never engaged after taking damage")
	}
	if target.AI.Target != player {
		t.Error("target engaged someone else")
	}
}
