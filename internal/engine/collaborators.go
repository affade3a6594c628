package engine

// Встроенные реализации коллабораторов ядра. Настоящие системы экипировки
// и инвентаря живут снаружи; эти версии обслуживают демо-хост и тесты.

// GearSet - источник бонусов экипировки с плоскими таблицами по стилям
type GearSet struct {
	AttackBonuses  map[string]int
	DefenceBonuses map[string]int
	Strength       int
}

// AttackBonus возвращает бонус атаки для стиля урона
func (g *GearSet) AttackBonus(style string) int {
	if g == nil || g.AttackBonuses == nil {
		return 0
	}
	return g.AttackBonuses[style]
}

// DefenceBonus возвращает бонус защиты для стиля урона
func (g *GearSet) DefenceBonus(style string) int {
	if g == nil || g.DefenceBonuses == nil {
		return 0
	}
	return g.DefenceBonuses[style]
}

// StrengthBonus возвращает бонус силы
func (g *GearSet) StrengthBonus() int {
	if g == nil {
		return 0
	}
	return g.Strength
}

// BagInventory - слотовый инвентарь: одинаковые предметы складываются
// в один слот, новый предмет требует свободного слота.
type BagInventory struct {
	Capacity int
	slots    map[string]int
}

// NewBagInventory создает инвентарь на capacity слотов
func NewBagInventory(capacity int) *BagInventory {
	return &BagInventory{
		Capacity: capacity,
		slots:    make(map[string]int),
	}
}

// AddItem кладет предмет. Возвращает успех и не поместившееся количество.
func (b *BagInventory) AddItem(itemID string, quantity int) (bool, int) {
	if itemID == "" || quantity <= 0 {
		return false, quantity
	}

	if _, exists := b.slots[itemID]; !exists && len(b.slots) >= b.Capacity {
		// Нет свободного слота
		return false, quantity
	}

	b.slots[itemID] += quantity
	return true, 0
}

// Count возвращает количество предмета в инвентаре
func (b *BagInventory) Count(itemID string) int {
	return b.slots[itemID]
}

// SlotsUsed возвращает число занятых слотов
func (b *BagInventory) SlotsUsed() int {
	return len(b.slots)
}
