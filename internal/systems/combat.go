package systems

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"runefall-server/internal/domain"
	"runefall-server/pkg/gamedata"
	"runefall-server/pkg/logger"
)

// AttackResult - итог одной атаки. Транзитное значение, не хранится.
type AttackResult struct {
	Hit    bool
	Damage int
}

// CombatResolver решает исход атаки: попадание, урон, смерть, лут, опыт.
//
// Проверка дистанции и перезарядки - ответственность вызывающего
// (AI-контроллер или движок); резолвер только вычисляет исход.
type CombatResolver struct {
	rng      *rand.Rand
	data     *gamedata.Registry
	progress *ProgressionEngine
	bus      *domain.Bus
	log      *logrus.Entry
}

// NewCombatResolver собирает резолвер из явных зависимостей
func NewCombatResolver(rng *rand.Rand, data *gamedata.Registry, progress *ProgressionEngine, bus *domain.Bus) *CombatResolver {
	return &CombatResolver{
		rng:      rng,
		data:     data,
		progress: progress,
		bus:      bus,
		log:      logger.Log.WithField("component", "combat_resolver"),
	}
}

// ResolveAttack разыгрывает атаку attacker -> target.
//
// Попадание - классическая схема двух состязательных бросков: каждая
// сторона бросает равномерное число до своего потолка (уровень + бонус) * 64,
// атака попадает, только если бросок атаки строго больше броска защиты.
// Урон при попадании равномерен в [0, maxHit].
//
// Невалидный вход (nil, мертвая сторона) - восстановимый no-op.
func (c *CombatResolver) ResolveAttack(attacker, target domain.Combatant) AttackResult {
	if attacker == nil || target == nil {
		c.log.Warn("ResolveAttack called with nil participant.")
		return AttackResult{}
	}
	if !attacker.IsAlive() || !target.IsAlive() {
		return AttackResult{}
	}

	combatLog := c.log.WithFields(logrus.Fields{
		"attacker_id": attacker.EntityID(),
		"target_id":   target.EntityID(),
	})

	// --- Состязательный бросок ---

	attackCeiling := (attacker.EffectiveAttackLevel() + attacker.AttackBonus()) * domain.RollScale
	defenceCeiling := (target.EffectiveDefenceLevel() + target.DefenceBonus()) * domain.RollScale
	if attackCeiling < 1 {
		attackCeiling = 1
	}
	if defenceCeiling < 1 {
		defenceCeiling = 1
	}

	attackRoll := c.rng.Intn(attackCeiling)
	defenceRoll := c.rng.Intn(defenceCeiling)
	hit := attackRoll > defenceRoll

	// --- Урон ---

	damage := 0
	died := false
	if hit {
		damage = c.rng.Intn(attacker.MaxHit() + 1)
		// Делегируем применение урона самой цели, чтобы сработали
		// ее собственные хуки смерти
		died = target.ApplyDamage(damage)

		// Реакция цели на урон (вовлечение в бой)
		if reactor, ok := target.(domain.DamageReactor); ok {
			reactor.OnDamaged(attacker)
		}
	}

	combatLog.WithFields(logrus.Fields{
		"attack_roll":     attackRoll,
		"attack_ceiling":  attackCeiling,
		"defence_roll":    defenceRoll,
		"defence_ceiling": defenceCeiling,
		"hit":             hit,
		"damage":          damage,
		"target_died":     died,
	}).Debug("Attack resolved.")

	// --- Опыт (только игроку и только за попадание) ---

	if player, ok := attacker.(*domain.Player); ok && hit {
		c.grantCombatXP(player, damage)
	}

	c.bus.Publish(domain.AttackResolvedEvent{
		AttackerID: attacker.EntityID(),
		TargetID:   target.EntityID(),
		Hit:        hit,
		Damage:     damage,
	})

	if died {
		c.handleDeath(attacker, target)
	}

	return AttackResult{Hit: hit, Damage: damage}
}

// grantCombatXP распределяет боевой опыт по стилю атаки.
// База = урон * 4; Hitpoints всегда получает базу/3 независимо от стиля.
func (c *CombatResolver) grantCombatXP(player *domain.Player, damage int) {
	base := float64(damage * domain.BaseXPPerDamage)

	switch player.Style {
	case domain.StyleAccurate:
		c.progress.AddXP(player, domain.SkillAttack, base)
	case domain.StyleAggressive:
		c.progress.AddXP(player, domain.SkillStrength, base)
	case domain.StyleDefensive:
		c.progress.AddXP(player, domain.SkillDefence, base)
	case domain.StyleControlled:
		// Поровну в атаку, силу и защиту
		share := base / 3
		c.progress.AddXP(player, domain.SkillAttack, share)
		c.progress.AddXP(player, domain.SkillStrength, share)
		c.progress.AddXP(player, domain.SkillDefence, share)
	}

	c.progress.AddXP(player, domain.SkillHitpoints, base/domain.HitpointsXPDivisor)
}

// handleDeath отмечает смерть и разыгрывает лут враждебной цели.
// Таймер респавна - забота AI-контроллера, не резолвера.
func (c *CombatResolver) handleDeath(killer, target domain.Combatant) {
	c.log.WithFields(logrus.Fields{
		"entity_id": target.EntityID(),
		"killer_id": killer.EntityID(),
	}).Info("Entity died.")

	c.bus.Publish(domain.EntityDeathEvent{
		EntityID: target.EntityID(),
		KillerID: killer.EntityID(),
	})

	if hostile, ok := target.(*domain.Hostile); ok {
		c.rollLoot(killer, hostile)
	}
}

// rollLoot разыгрывает таблицу лута убитой сущности. Каждая позиция
// проверяется независимо; гарантированные выпадают всегда. Лут кладется
// в инвентарь убийцы-игрока; не поместившееся молча пропадает.
func (c *CombatResolver) rollLoot(killer domain.Combatant, hostile *domain.Hostile) {
	if hostile.LootTableID == "" {
		return
	}

	table, ok := c.data.Loot(hostile.LootTableID)
	if !ok {
		// Деградация: нет таблицы - нет лута, бой не ломаем
		c.log.WithFields(logrus.Fields{
			"entity_id":  hostile.ID,
			"loot_table": hostile.LootTableID,
		}).Warn("Loot table missing from config, skipping drops.")
		return
	}

	player, killerIsPlayer := killer.(*domain.Player)

	for _, entry := range table.Entries {
		if !entry.Guaranteed && c.rng.Float64() >= entry.Chance {
			continue
		}

		if _, known := c.data.Item(entry.ItemID); !known {
			c.log.WithFields(logrus.Fields{
				"loot_table": hostile.LootTableID,
				"item":       entry.ItemID,
			}).Warn("Loot entry references unknown item, skipping.")
			continue
		}

		quantity := entry.MinQuantity
		if entry.MaxQuantity > entry.MinQuantity {
			quantity += c.rng.Intn(entry.MaxQuantity - entry.MinQuantity + 1)
		}
		if quantity < 1 {
			quantity = 1
		}

		placed := false
		if killerIsPlayer && player.Bag != nil {
			ok, remaining := player.Bag.AddItem(entry.ItemID, quantity)
			placed = ok && remaining == 0
			if !placed {
				// Переполненный инвентарь - не ошибка боя
				c.log.WithFields(logrus.Fields{
					"item":      entry.ItemID,
					"remaining": remaining,
				}).Info("Inventory full, loot lost.")
			}
		}

		c.bus.Publish(domain.LootDroppedEvent{
			SourceID: hostile.ID,
			ItemID:   entry.ItemID,
			Quantity: quantity,
			Placed:   placed,
		})
	}
}
