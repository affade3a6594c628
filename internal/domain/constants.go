package domain

// Боевые формулы
const (
	// RollScale - множитель потолка состязательного броска: (уровень + бонус) * 64
	RollScale = 64

	// BaseXPPerDamage - базовый опыт за единицу нанесенного урона
	BaseXPPerDamage = 4

	// HitpointsXPDivisor - доля базового опыта, идущая в Hitpoints (base/3)
	HitpointsXPDivisor = 3

	// BaseAttackIntervalSec - интервал атаки в секундах при скорости 1.0.
	// cooldownMs = (BaseAttackIntervalSec / attackSpeed) * 1000
	BaseAttackIntervalSec = 2.4
)

// Прокачка
const (
	MaxSkillLevel = 99

	// MinXPMultiplier - нижняя граница глобального множителя опыта
	MinXPMultiplier = 0.1
)

// Поведение враждебных сущностей
const (
	// RegenPerSecondFraction - пассивный реген вне боя: 1% от MaxHP в секунду
	RegenPerSecondFraction = 0.01

	// WanderDelayMinMs / WanderDelayMaxMs - случайная пауза между блужданиями
	WanderDelayMinMs = 3000
	WanderDelayMaxMs = 6000

	// SpawnArriveRadius - дистанция (в тайлах), на которой точка назначения
	// считается достигнутой (возврат на спавн, блуждание)
	SpawnArriveRadius = 0.5

	// ChaseLeashFactor - преследование обрывается за пределами aggroRange * 2
	ChaseLeashFactor = 2.0
)

// DefaultDamageStyle - стиль урона по умолчанию для поиска бонусов экипировки
const DefaultDamageStyle = "slash"
