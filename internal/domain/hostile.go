package domain

// Hostile - враждебная сущность. Уровни и максимальный удар берутся из
// статической конфигурации типа, бонусов экипировки нет.
type Hostile struct {
	Entity

	// TypeID - идентификатор типа в статической конфигурации
	TypeID string `json:"typeId"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`

	AttackLevel   int `json:"-"`
	StrengthLevel int `json:"-"`
	DefenceLevel  int `json:"-"`

	// BaseMaxHit - сконфигурированный максимальный удар (минимум 1)
	BaseMaxHit int `json:"-"`

	AttackRange float64 `json:"-"`
	AttackSpeed float64 `json:"-"`
	MoveSpeed   float64 `json:"-"` // тайлов в секунду

	Aggressive       bool    `json:"-"`
	AggroRange       float64 `json:"-"`
	WanderRadius     float64 `json:"-"`
	RetreatThreshold float64 `json:"-"` // доля HP, ниже которой сущность бежит

	RespawnMs   float64 `json:"-"`
	LootTableID string  `json:"-"`

	AI AIComponent `json:"ai"`

	// RegenCarry копит дробные единицы пассивного регена между тиками
	RegenCarry float64 `json:"-"`
}

func (h *Hostile) EffectiveAttackLevel() int   { return h.AttackLevel }
func (h *Hostile) EffectiveDefenceLevel() int  { return h.DefenceLevel }
func (h *Hostile) EffectiveStrengthLevel() int { return h.StrengthLevel }

// У враждебных сущностей нет экипировки
func (h *Hostile) AttackBonus() int   { return 0 }
func (h *Hostile) DefenceBonus() int  { return 0 }
func (h *Hostile) StrengthBonus() int { return 0 }

// MaxHit возвращает сконфигурированный максимальный удар, минимум 1
func (h *Hostile) MaxHit() int {
	if h.BaseMaxHit < 1 {
		return 1
	}
	return h.BaseMaxHit
}

func (h *Hostile) Hitpoints() (int, int) { return h.HP, h.MaxHP }

// ApplyDamage наносит урон. Возвращает true, если сущность погибла.
func (h *Hostile) ApplyDamage(amount int) bool {
	if !h.Alive {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	h.HP -= amount
	if h.HP <= 0 {
		h.HP = 0
		h.Alive = false
		return true
	}
	return false
}

// Heal лечит сущность, не превышая максимум
func (h *Hostile) Heal(amount int) {
	if !h.Alive || amount <= 0 {
		return
	}
	h.HP += amount
	if h.HP > h.MaxHP {
		h.HP = h.MaxHP
	}
}

// OnDamaged - хук вовлечения: получив урон в мирном состоянии,
// агрессивная сущность немедленно вступает в бой с обидчиком.
func (h *Hostile) OnDamaged(attacker Combatant) {
	if !h.Alive || attacker == nil {
		return
	}
	if h.AI.InCombat {
		return
	}
	if h.Aggressive {
		h.AI.Engage(attacker)
	}
}

// AttackIntervalMs возвращает перезарядку атаки в миллисекундах
func (h *Hostile) AttackIntervalMs() float64 {
	speed := h.AttackSpeed
	if speed <= 0 {
		speed = 1.0
	}
	return BaseAttackIntervalSec / speed * 1000
}

// HPFraction возвращает текущую долю здоровья [0..1]
func (h *Hostile) HPFraction() float64 {
	if h.MaxHP <= 0 {
		return 0
	}
	return float64(h.HP) / float64(h.MaxHP)
}
