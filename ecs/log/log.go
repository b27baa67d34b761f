// Package log renders registry state as structured zerolog events.
package log

import (
	"sort"

	"github.com/rs/zerolog"
)

// Component describes a registered component type.
type Component struct {
	ID   int
	Name string
}

// Loggable is implemented by ecs.Registry.
type Loggable interface {
	GetRegisteredComponents() []Component
	GetRegisteredSystems() []string
}

func loadComponentIntoArrayLogger(component Component, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", component.ID)
	dictLogger = dictLogger.Str("component_name", component.Name)
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	components := target.GetRegisteredComponents()
	sort.Slice(components, func(i, j int) bool {
		return components[i].ID < components[j].ID
	})
	zeroLoggerEvent.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadSystemIntoEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	systems := target.GetRegisteredSystems()
	zeroLoggerEvent.Int("total_systems", len(systems))
	arrayLogger := zerolog.Arr()
	for _, sysName := range systems {
		arrayLogger = arrayLogger.Str(sysName)
	}
	return zeroLoggerEvent.Array("systems", arrayLogger)
}

// Components logs every registered component.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	loadComponentsToEvent(logger.WithLevel(level), target).Send()
}

// Systems logs every registered system.
func Systems(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	loadSystemIntoEvent(logger.WithLevel(level), target).Send()
}

// Entity logs one entity: its id, lifecycle state, signature and components.
func Entity(
	logger *zerolog.Logger, level zerolog.Level,
	entityID uint32, state string, signature string, components []Component,
) {
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	logger.WithLevel(level).
		Uint32("entity_id", entityID).
		Str("state", state).
		Str("signature", signature).
		Array("components", arrayLogger).
		Send()
}

// Registry logs components and systems in a single event.
func Registry(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent = loadSystemIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// CreateSystemLogger creates a sub logger with the entry {"system": systemName}.
func CreateSystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	newLogger := logger.With().Str("system", systemName).Logger()
	return &newLogger
}

// CreateTraceLogger creates a logger tagged with traceID, for following one
// data path through several systems.
func CreateTraceLogger(logger *zerolog.Logger, traceID string) *zerolog.Logger {
	newLogger := logger.With().Str("trace_id", traceID).Logger()
	return &newLogger
}
