package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"runefall-server/internal/domain"
	"runefall-server/pkg/logger"
)

// Каноническая кривая уровней:
//
//	cumulative(L) = sum_{i=1}^{L-1} floor(i + 300 * 2^(i/7))
//	порог уровня L = floor(cumulative(L) / 4)
//
// Таблица порогов считается один раз при старте: кривая зашита в баланс
// всей игры, пересчитывать сумму на каждый кадр незачем.
var xpThresholds [domain.MaxSkillLevel + 1]float64

func init() {
	cumulative := 0
	xpThresholds[1] = 0
	for level := 2; level <= domain.MaxSkillLevel; level++ {
		i := level - 1
		cumulative += int(float64(i) + 300*math.Pow(2, float64(i)/7.0))
		xpThresholds[level] = float64(cumulative / 4)
	}
}

// XPForLevel возвращает минимальный опыт для уровня (1..99).
// Уровни за пределами диапазона прижимаются к границам.
func XPForLevel(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > domain.MaxSkillLevel {
		level = domain.MaxSkillLevel
	}
	return xpThresholds[level]
}

// LevelFromXP возвращает наибольший уровень, чей порог не превышает xp
func LevelFromXP(xp float64) int {
	level := 1
	for level < domain.MaxSkillLevel && xp >= xpThresholds[level+1] {
		level++
	}
	return level
}

// SkillOwner - сущность, имеющая прокачиваемые навыки
type SkillOwner interface {
	EntityID() string
	SkillSet() *domain.SkillSet
}

// CombatStatsOwner - опциональная способность пересчитывать производные
// боевые характеристики после повышения боевого навыка
type CombatStatsOwner interface {
	RecomputeCombatStats()
}

// XPResult - итог начисления опыта
type XPResult struct {
	OK       bool
	LevelUp  bool
	OldLevel int
	NewLevel int
	TotalXP  float64
}

// ProgressionEngine начисляет опыт, выводит уровни и управляет бустами.
// Множитель опыта глобальный (ивенты), бусты принадлежат сущностям.
type ProgressionEngine struct {
	bus        *domain.Bus
	multiplier float64
	log        *logrus.Entry
}

// NewProgressionEngine создает движок прокачки с множителем 1.0
func NewProgressionEngine(bus *domain.Bus) *ProgressionEngine {
	return &ProgressionEngine{
		bus:        bus,
		multiplier: 1.0,
		log:        logger.Log.WithField("component", "progression_engine"),
	}
}

// SetXPMultiplier меняет глобальный множитель опыта (минимум 0.1)
func (p *ProgressionEngine) SetXPMultiplier(m float64) {
	if m < domain.MinXPMultiplier {
		m = domain.MinXPMultiplier
	}
	p.multiplier = m
}

// XPMultiplier возвращает текущий множитель
func (p *ProgressionEngine) XPMultiplier() float64 { return p.multiplier }

// AddXP начисляет опыт и при необходимости повышает уровень.
// Неизвестный навык - no-op с неуспешным результатом, тик не падает.
func (p *ProgressionEngine) AddXP(owner SkillOwner, skill domain.Skill, amount float64) XPResult {
	if owner == nil {
		p.log.Warn("AddXP called with nil owner.")
		return XPResult{}
	}

	st := owner.SkillSet().Get(skill)
	if st == nil {
		p.log.WithFields(logrus.Fields{
			"entity_id": owner.EntityID(),
			"skill":     skill.String(),
		}).Warn("AddXP failed: unknown skill.")
		return XPResult{}
	}

	if amount < 0 {
		amount = 0
	}
	amount *= p.multiplier
	st.XP += amount

	res := XPResult{
		OK:       true,
		OldLevel: st.Level,
		NewLevel: st.Level,
		TotalXP:  st.XP,
	}

	p.bus.Publish(domain.SkillXPGainedEvent{
		EntityID: owner.EntityID(),
		Skill:    skill,
		Amount:   amount,
		TotalXP:  st.XP,
	})

	newLevel := LevelFromXP(st.XP)
	if newLevel <= st.Level {
		return res
	}

	st.Level = newLevel
	st.BoostedLevel = newLevel
	res.LevelUp = true
	res.NewLevel = newLevel

	if skill.IsCombat() {
		if cso, ok := owner.(CombatStatsOwner); ok {
			cso.RecomputeCombatStats()
		}
	}

	p.log.WithFields(logrus.Fields{
		"entity_id": owner.EntityID(),
		"skill":     skill.String(),
		"old_level": res.OldLevel,
		"new_level": newLevel,
		"total_xp":  st.XP,
	}).Info("Level up.")

	p.bus.Publish(domain.SkillLevelUpEvent{
		EntityID: owner.EntityID(),
		Skill:    skill,
		OldLevel: res.OldLevel,
		NewLevel: newLevel,
	})

	return res
}

// InitSkill выставляет стартовый уровень навыка вместе с подкрепляющим XP,
// сохраняя инвариант level == LevelFromXP(xp). Используется при создании
// сущности (например, Hitpoints начинается с 10 уровня).
func (p *ProgressionEngine) InitSkill(owner SkillOwner, skill domain.Skill, level int) bool {
	if owner == nil {
		return false
	}
	st := owner.SkillSet().Get(skill)
	if st == nil {
		return false
	}
	if level < 1 {
		level = 1
	}
	if level > domain.MaxSkillLevel {
		level = domain.MaxSkillLevel
	}
	st.Level = level
	st.BoostedLevel = level
	st.XP = XPForLevel(level)
	if cso, ok := owner.(CombatStatsOwner); ok && skill.IsCombat() {
		cso.RecomputeCombatStats()
	}
	return true
}

// BoostSkill временно сдвигает эффективный уровень навыка на amount
// (может быть отрицательным - дрейн), с прижатием к [1, 99].
// При durationMs > 0 планируется восстановление к min(level, boosted).
func (p *ProgressionEngine) BoostSkill(owner SkillOwner, skill domain.Skill, amount int, durationMs float64) bool {
	if owner == nil {
		return false
	}
	ss := owner.SkillSet()
	st := ss.Get(skill)
	if st == nil {
		p.log.WithFields(logrus.Fields{
			"entity_id": owner.EntityID(),
			"skill":     skill.String(),
		}).Warn("BoostSkill failed: unknown skill.")
		return false
	}

	boosted := st.BoostedLevel + amount
	if boosted < 1 {
		boosted = 1
	}
	if boosted > domain.MaxSkillLevel {
		boosted = domain.MaxSkillLevel
	}
	st.BoostedLevel = boosted

	if durationMs > 0 {
		ss.Boosts = append(ss.Boosts, domain.SkillBoost{
			Skill:       skill,
			RemainingMs: durationMs,
		})
	}
	return true
}

// Tick продвигает таймеры бустов сущности. Истекший буст возвращает
// эффективный уровень к min(базовый, бустованный).
func (p *ProgressionEngine) Tick(owner SkillOwner, dtMs float64) {
	if owner == nil || dtMs <= 0 {
		return
	}
	ss := owner.SkillSet()
	if len(ss.Boosts) == 0 {
		return
	}

	remaining := ss.Boosts[:0]
	for _, boost := range ss.Boosts {
		boost.RemainingMs -= dtMs
		if boost.RemainingMs > 0 {
			remaining = append(remaining, boost)
			continue
		}
		if st := ss.Get(boost.Skill); st != nil {
			if st.Level < st.BoostedLevel {
				st.BoostedLevel = st.Level
			}
		}
	}
	ss.Boosts = remaining
}
