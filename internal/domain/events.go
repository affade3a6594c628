package domain

// EventType - Внутренний числовой идентификатор события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventAttackResolved
	EventEntityDeath
	EventLootDropped
	EventSkillXPGained
	EventSkillLevelUp
	EventAIEngaged
	EventAIDisengaged
)

// Маппинг для логов Domain -> String
var eventIDToString = map[EventType]string{
	EventAttackResolved: "ATTACK_RESOLVED",
	EventEntityDeath:    "ENTITY_DEATH",
	EventLootDropped:    "LOOT_DROPPED",
	EventSkillXPGained:  "SKILL_XP_GAINED",
	EventSkillLevelUp:   "SKILL_LEVEL_UP",
	EventAIEngaged:      "AI_ENGAGED",
	EventAIDisengaged:   "AI_DISENGAGED",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventIDToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - общий интерфейс типизированных событий.
// Вместо строковых broadcast-событий каждая категория имеет свою структуру:
// производитель и потребитель сходятся по форме на уровне компилятора.
type Event interface {
	Type() EventType
}

// AttackResolvedEvent - итог одной атаки (и попадание, и промах)
type AttackResolvedEvent struct {
	AttackerID string
	TargetID   string
	Hit        bool
	Damage     int
}

func (AttackResolvedEvent) Type() EventType { return EventAttackResolved }

// EntityDeathEvent - смерть сущности
type EntityDeathEvent struct {
	EntityID string
	KillerID string
}

func (EntityDeathEvent) Type() EventType { return EventEntityDeath }

// LootDroppedEvent - выпадение одной позиции лута
type LootDroppedEvent struct {
	SourceID string
	ItemID   string
	Quantity int
	// Placed - удалось ли положить в инвентарь убийцы
	Placed bool
}

func (LootDroppedEvent) Type() EventType { return EventLootDropped }

// SkillXPGainedEvent - рутинное начисление опыта
type SkillXPGainedEvent struct {
	EntityID string
	Skill    Skill
	Amount   float64
	TotalXP  float64
}

func (SkillXPGainedEvent) Type() EventType { return EventSkillXPGained }

// SkillLevelUpEvent - повышение уровня (отдельно от рутинного начисления)
type SkillLevelUpEvent struct {
	EntityID string
	Skill    Skill
	OldLevel int
	NewLevel int
}

func (SkillLevelUpEvent) Type() EventType { return EventSkillLevelUp }

// AIEngagedEvent - враждебная сущность вступила в бой
type AIEngagedEvent struct {
	EntityID string
	TargetID string
}

func (AIEngagedEvent) Type() EventType { return EventAIEngaged }

// AIDisengagedEvent - враждебная сущность вышла из боя
type AIDisengagedEvent struct {
	EntityID string
}

func (AIDisengagedEvent) Type() EventType { return EventAIDisengaged }

// Handler - подписчик одной категории событий
type Handler func(Event)

// Bus - синхронная шина событий ядра. Доставка происходит в порядке
// эмиссии внутри тика; подтверждений и повторов нет (fire-and-forget).
//
// Ядро однопоточное: подписки регистрируются при сборке симуляции,
// публикация идет только из тика, поэтому блокировки не нужны.
type Bus struct {
	handlers map[EventType][]Handler
}

// NewBus создает пустую шину
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

// Subscribe регистрирует обработчик категории событий
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish синхронно доставляет событие всем подписчикам категории
func (b *Bus) Publish(ev Event) {
	if ev == nil {
		return
	}
	for _, h := range b.handlers[ev.Type()] {
		h(ev)
	}
}
