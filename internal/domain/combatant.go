package domain

import "strings"

// AttackStyle - Внутренний числовой идентификатор стиля атаки.
// Определяет, в какие навыки уходит боевой опыт.
type AttackStyle uint8

const (
	StyleUnknown AttackStyle = iota
	StyleAccurate
	StyleAggressive
	StyleDefensive
	StyleControlled
)

var styleStringToID = map[string]AttackStyle{
	"ACCURATE":   StyleAccurate,
	"AGGRESSIVE": StyleAggressive,
	"DEFENSIVE":  StyleDefensive,
	"CONTROLLED": StyleControlled,
}

var styleIDToString = map[AttackStyle]string{
	StyleAccurate:   "ACCURATE",
	StyleAggressive: "AGGRESSIVE",
	StyleDefensive:  "DEFENSIVE",
	StyleControlled: "CONTROLLED",
}

// ParseAttackStyle конвертирует строку в AttackStyle
func ParseAttackStyle(s string) AttackStyle {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := styleStringToID[upper]; ok {
		return val
	}
	return StyleUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a AttackStyle) String() string {
	if val, ok := styleIDToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Combatant - общий боевой интерфейс для вариантов Player и Hostile.
// Заменяет ветвление по строке типа: каждая сторона сама знает свои
// эффективные уровни и бонусы, резолвер работает только с контрактом.
type Combatant interface {
	EntityID() string
	Position() Vec2
	IsAlive() bool

	// Эффективные уровни (с учетом бустов), которые читают формулы боя
	EffectiveAttackLevel() int
	EffectiveDefenceLevel() int
	EffectiveStrengthLevel() int

	// Бонусы экипировки. У враждебных сущностей всегда 0.
	AttackBonus() int
	DefenceBonus() int
	StrengthBonus() int

	// MaxHit - верхняя граница урона одним ударом, минимум 1
	MaxHit() int

	Hitpoints() (hp, max int)

	// ApplyDamage наносит урон. Возвращает true, если цель погибла.
	ApplyDamage(amount int) bool

	Heal(amount int)
}

// DamageReactor - опциональная способность цели реагировать на полученный
// урон (вовлечение в бой). Резолвер вызывает хук после применения урона.
type DamageReactor interface {
	OnDamaged(attacker Combatant)
}
