package domain

import "math"

// Player - сущность, управляемая игроком. Уровни берутся из навыков,
// бонусы - из коллаборатора экипировки.
type Player struct {
	Entity

	Skills *SkillSet

	HP          int `json:"hp"`
	MaxHP       int `json:"maxHp"`
	CombatLevel int `json:"combatLevel"`

	// Style определяет, в какие навыки идет боевой опыт
	Style AttackStyle `json:"style"`

	AttackRange float64 `json:"attackRange"`
	AttackSpeed float64 `json:"attackSpeed"`

	// CooldownMs - остаток до следующей атаки (симуляционное время)
	CooldownMs float64 `json:"-"`

	InCombat bool `json:"inCombat"`

	// MoveSpeed - скорость передвижения, тайлов в секунду
	MoveSpeed float64 `json:"-"`

	// Коллабораторы. Могут быть nil - тогда бонусы нулевые, лут пропадает.
	Gear EquipmentSource `json:"-"`
	Bag  Inventory       `json:"-"`
}

// NewPlayer создает игрока с навыками 1 уровня.
// Hitpoints и производные характеристики настраивает движок через прокачку.
func NewPlayer(id, name string, pos Vec2, gear EquipmentSource, bag Inventory) *Player {
	p := &Player{
		Entity: Entity{
			ID:       id,
			Name:     name,
			Pos:      pos,
			SpawnPos: pos,
			Alive:    true,
		},
		Skills:      NewSkillSet(),
		Style:       StyleControlled,
		AttackRange: 1.5,
		AttackSpeed: 1.0,
		MoveSpeed:   4.0,
		Gear:        gear,
		Bag:         bag,
	}
	p.HP = 1
	p.MaxHP = 1
	return p
}

// SkillSet отдает навыки (контракт SkillOwner движка прокачки)
func (p *Player) SkillSet() *SkillSet { return p.Skills }

func (p *Player) EffectiveAttackLevel() int   { return p.Skills.Level(SkillAttack) }
func (p *Player) EffectiveDefenceLevel() int  { return p.Skills.Level(SkillDefence) }
func (p *Player) EffectiveStrengthLevel() int { return p.Skills.Level(SkillStrength) }

func (p *Player) AttackBonus() int {
	if p.Gear == nil {
		return 0
	}
	return p.Gear.AttackBonus(DefaultDamageStyle)
}

func (p *Player) DefenceBonus() int {
	if p.Gear == nil {
		return 0
	}
	return p.Gear.DefenceBonus(DefaultDamageStyle)
}

func (p *Player) StrengthBonus() int {
	if p.Gear == nil {
		return 0
	}
	return p.Gear.StrengthBonus()
}

// MaxHit считается по классической формуле силы:
// floor(0.5 + strength * (strengthBonus + 64) / 640), минимум 1
func (p *Player) MaxHit() int {
	str := float64(p.EffectiveStrengthLevel())
	bonus := float64(p.StrengthBonus())
	hit := int(math.Floor(0.5 + str*(bonus+64)/640))
	if hit < 1 {
		hit = 1
	}
	return hit
}

func (p *Player) Hitpoints() (int, int) { return p.HP, p.MaxHP }

// ApplyDamage наносит урон. Возвращает true, если игрок погиб.
func (p *Player) ApplyDamage(amount int) bool {
	if !p.Alive {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	p.HP -= amount
	if p.HP <= 0 {
		p.HP = 0
		p.Alive = false
		return true
	}
	return false
}

// Heal лечит игрока, не превышая максимум
func (p *Player) Heal(amount int) {
	if !p.Alive || amount <= 0 {
		return
	}
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// AttackIntervalMs возвращает перезарядку атаки в миллисекундах
func (p *Player) AttackIntervalMs() float64 {
	speed := p.AttackSpeed
	if speed <= 0 {
		speed = 1.0
	}
	return BaseAttackIntervalSec / speed * 1000
}

// RecomputeCombatStats пересчитывает производные боевые характеристики
// после повышения боевого навыка:
//   - максимум здоровья равен уровню Hitpoints;
//   - боевой уровень - взвешенная формула по навыкам, берется максимум
//     из трех стилевых вкладов (ближний бой / стрельба / магия).
func (p *Player) RecomputeCombatStats() {
	hpLevel := p.Skills.BaseLevel(SkillHitpoints)
	p.MaxHP = hpLevel
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}

	base := 0.25 * float64(p.Skills.BaseLevel(SkillDefence)+hpLevel+p.Skills.BaseLevel(SkillPrayer)/2)
	melee := 0.325 * float64(p.Skills.BaseLevel(SkillAttack)+p.Skills.BaseLevel(SkillStrength))
	ranged := 0.325 * float64(3*p.Skills.BaseLevel(SkillRanged)/2)
	magic := 0.325 * float64(3*p.Skills.BaseLevel(SkillMagic)/2)

	best := melee
	if ranged > best {
		best = ranged
	}
	if magic > best {
		best = magic
	}
	p.CombatLevel = int(base + best)
}
