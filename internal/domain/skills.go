package domain

import "strings"

// Skill - Внутренний числовой идентификатор навыка
type Skill uint8

const (
	SkillUnknown Skill = iota
	SkillAttack
	SkillStrength
	SkillDefence
	SkillHitpoints
	SkillRanged
	SkillMagic
	SkillPrayer
)

// Маппинг для конвертации JSON/конфигов -> Domain
var skillStringToID = map[string]Skill{
	"ATTACK":    SkillAttack,
	"STRENGTH":  SkillStrength,
	"DEFENCE":   SkillDefence,
	"HITPOINTS": SkillHitpoints,
	"RANGED":    SkillRanged,
	"MAGIC":     SkillMagic,
	"PRAYER":    SkillPrayer,
}

// Маппинг для логов Domain -> String
var skillIDToString = map[Skill]string{
	SkillAttack:    "ATTACK",
	SkillStrength:  "STRENGTH",
	SkillDefence:   "DEFENCE",
	SkillHitpoints: "HITPOINTS",
	SkillRanged:    "RANGED",
	SkillMagic:     "MAGIC",
	SkillPrayer:    "PRAYER",
}

// ParseSkill конвертирует строку в Skill
func ParseSkill(s string) Skill {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := skillStringToID[upper]; ok {
		return val
	}
	return SkillUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (s Skill) String() string {
	if val, ok := skillIDToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsCombat возвращает true для навыков, влияющих на боевые характеристики
func (s Skill) IsCombat() bool {
	switch s {
	case SkillAttack, SkillStrength, SkillDefence, SkillHitpoints,
		SkillRanged, SkillMagic, SkillPrayer:
		return true
	}
	return false
}

// CombatSkills перечисляет все боевые навыки в фиксированном порядке
var CombatSkills = []Skill{
	SkillAttack, SkillStrength, SkillDefence, SkillHitpoints,
	SkillRanged, SkillMagic, SkillPrayer,
}

// SkillState - Состояние одного навыка.
// Инвариант: Level == уровень, выводимый из XP. BoostedLevel может временно
// расходиться (зелья/проклятия), но всегда в пределах [1, MaxSkillLevel].
// Боевые формулы читают BoostedLevel; Level - это база, к которой бусты затухают.
type SkillState struct {
	Level        int     `json:"level"`
	XP           float64 `json:"xp"`
	BoostedLevel int     `json:"boostedLevel"`
}

// SkillBoost - активный временный буст, принадлежит сущности (не глобален)
type SkillBoost struct {
	Skill       Skill
	RemainingMs float64
}

// SkillSet хранит состояние всех навыков одной сущности
type SkillSet struct {
	states map[Skill]*SkillState

	// Boosts - активные таймеры восстановления бустов
	Boosts []SkillBoost
}

// NewSkillSet создает набор навыков с уровнем 1 во всех навыках
func NewSkillSet() *SkillSet {
	ss := &SkillSet{states: make(map[Skill]*SkillState, len(CombatSkills))}
	for _, sk := range CombatSkills {
		ss.states[sk] = &SkillState{Level: 1, XP: 0, BoostedLevel: 1}
	}
	return ss
}

// Get возвращает состояние навыка или nil для неизвестного навыка
func (ss *SkillSet) Get(skill Skill) *SkillState {
	return ss.states[skill]
}

// Level возвращает эффективный (бустованный) уровень - его читает бой
func (ss *SkillSet) Level(skill Skill) int {
	if st := ss.states[skill]; st != nil {
		return st.BoostedLevel
	}
	return 1
}

// BaseLevel возвращает базовый уровень, подкрепленный XP
func (ss *SkillSet) BaseLevel(skill Skill) int {
	if st := ss.states[skill]; st != nil {
		return st.Level
	}
	return 1
}
