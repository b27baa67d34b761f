package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	// Editable fields have a widget in the inspector; the rest are shown read-only.
	Editable bool
}

// ReflectionCache memoizes struct field layouts so the inspector does not
// walk reflect.Type every frame.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	fields := structFields(t)

	rc.mu.Lock()
	rc.fieldCache[t] = fields
	rc.mu.Unlock()
	return fields
}

func structFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]FieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Ptr
		if isPointer {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     i,
			IsPointer: isPointer,
			Editable:  isEditableKind(fieldType.Kind()),
		})
	}
	return fields
}

func isEditableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return true
	}
	return false
}

var globalReflectionCache = NewReflectionCache()
