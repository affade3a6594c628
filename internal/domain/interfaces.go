package domain

// Коллабораторы, которыми ядро симуляции пользуется, но не владеет.
// Все зависимости передаются явно (DI), никакого глобального состояния.

// EquipmentSource - справка по бонусам экипировки, ключ - стиль урона
// ("slash" по умолчанию). Управление слотами остается снаружи.
type EquipmentSource interface {
	AttackBonus(style string) int
	DefenceBonus(style string) int
	StrengthBonus() int
}

// Inventory - приемник лута. Возвращает успех и количество,
// которое не поместилось.
type Inventory interface {
	AddItem(itemID string, quantity int) (ok bool, remaining int)
}
