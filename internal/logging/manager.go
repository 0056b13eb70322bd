package logging

import (
	"sort"
	"sync"
)

// LoggerManager хранит по одному логгеру на компонент
type LoggerManager struct {
	loggers sync.Map // component -> *Logger
}

var globalManager = &LoggerManager{}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его при первом обращении
func (lm *LoggerManager) GetLogger(component string) *Logger {
	if l, ok := lm.loggers.Load(component); ok {
		return l.(*Logger)
	}
	l, _ := lm.loggers.LoadOrStore(component, NewLogger(component))
	return l.(*Logger)
}

// ListComponents возвращает отсортированные имена компонентов, уже получивших логгер
func (lm *LoggerManager) ListComponents() []string {
	var components []string
	lm.loggers.Range(func(key, _ any) bool {
		components = append(components, key.(string))
		return true
	})
	sort.Strings(components)
	return components
}

// GetComponentLogger возвращает логгер компонента
func GetComponentLogger(component string) *Logger {
	return globalManager.GetLogger(component)
}

func GetPhysicsLogger() *Logger { return GetComponentLogger("physics") }

func GetWorldLogger() *Logger { return GetComponentLogger("world") }

func GetSimLogger() *Logger { return GetComponentLogger("sim") }
