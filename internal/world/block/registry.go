package block

import (
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[ID]Behavior)
)

// Register добавляет поведение блока в регистр
func Register(id ID, behavior Behavior) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id ID) (Behavior, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValid проверяет, является ли ID зарегистрированным типом блока
func IsValid(id ID) bool {
	_, exists := Get(id)
	return exists
}

// ID: тег типа блока. Блоки являются неизменяемыми значениями без идентичности.
type ID uint16

// Константы ID блоков
const (
	Air     ID = iota // 0: пустота, в сетке не хранится
	Grass             // 1
	Dirt              // 2
	Stone             // 3
	Wood              // 4
	Leaf              // 5
	Sand              // 6
	Planks            // 7
	Glass             // 8
	Bedrock           // 9, не разрушается
)

// ByName ищет тип блока по имени поведения без учёта регистра
func ByName(name string) (ID, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for id, behavior := range registry {
		if strings.EqualFold(behavior.Name(), name) {
			return id, true
		}
	}
	return Air, false
}
