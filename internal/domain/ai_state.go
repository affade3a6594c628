package domain

// AIState - состояние машины поведения враждебной сущности.
// Состоянием владеет ровно одна сущность; мутирует его только AI-контроллер.
type AIState uint8

const (
	AIStateIdle AIState = iota
	AIStateWandering
	AIStateChasing
	AIStateAttacking
	AIStateFleeing
)

var aiStateNames = map[AIState]string{
	AIStateIdle:      "IDLE",
	AIStateWandering: "WANDERING",
	AIStateChasing:   "CHASING",
	AIStateAttacking: "ATTACKING",
	AIStateFleeing:   "FLEEING",
}

// String реализует интерфейс Stringer (для fmt.Printf и логов)
func (s AIState) String() string {
	if name, ok := aiStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// AIComponent - Мозги и боевая бухгалтерия враждебной сущности
type AIComponent struct {
	State AIState `json:"state"`

	// Target и InCombat - учет вовлеченности в бой.
	// Вовлечение всегда выставляет InCombat и назначает цель.
	Target   Combatant `json:"-"`
	InCombat bool      `json:"inCombat"`

	// Блуждание
	WanderDelayMs   float64 `json:"-"` // обратный отсчет до выбора новой точки
	WanderTarget    Vec2    `json:"-"`
	HasWanderTarget bool    `json:"-"`

	// CooldownMs - перезарядка атаки (симуляционное время)
	CooldownMs float64 `json:"-"`

	// RespawnTimerMs - параллельный таймер возрождения, идет независимо
	// от State, пока сущность мертва
	RespawnTimerMs float64 `json:"-"`
}

// Engage вовлекает сущность в бой с целью
func (a *AIComponent) Engage(target Combatant) {
	a.InCombat = true
	a.Target = target
}

// Disengage очищает боевой учет
func (a *AIComponent) Disengage() {
	a.InCombat = false
	a.Target = nil
}

// Reset возвращает машину в исходное состояние (спавн/респавн)
func (a *AIComponent) Reset() {
	a.State = AIStateIdle
	a.Disengage()
	a.HasWanderTarget = false
	a.WanderDelayMs = 0
	a.CooldownMs = 0
	a.RespawnTimerMs = 0
}
