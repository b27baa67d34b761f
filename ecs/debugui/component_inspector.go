package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsreg/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(registry *ecs.Registry, selected ecs.Entity, hasSelection bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !hasSelection {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	ci.selected = selected

	state := registry.EntityState(ci.selected)
	sig := registry.Signature(ci.selected)
	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selected.Id()))
	imgui.Text(fmt.Sprintf("State: %s", state))
	imgui.Text(fmt.Sprintf("Signature: %s", sig))
	imgui.Separator()

	if sig.IsEmpty() {
		imgui.Text("No components")
	}

	for _, id := range sig.Ids() {
		compType := registry.Components().Type(id)
		component := registry.GetComponentAny(ci.selected, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderComponent(component)
			imgui.TreePop()
		}
	}

	if state == ecs.EntityLive || state == ecs.EntityPendingAdd {
		imgui.Separator()
		if imgui.Button("Kill Entity") {
			_ = registry.KillEntity(ci.selected)
		}
	}

	imgui.End()
}

// renderComponent draws an editor for the value behind component, which is
// a pointer into a pool, so edits land in place.
func (ci *ComponentInspectorComponent) renderComponent(component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		ci.renderField("Value", val, FieldInfo{Type: val.Type()})
		return
	}

	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, field)
	}
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setFieldValue(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setFieldValue(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setFieldValue(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setFieldValue(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			setFieldValue(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				nestedVal := val.Field(nf.Index)
				if nf.IsPointer && !nestedVal.IsNil() {
					nestedVal = nestedVal.Elem()
				}
				ci.renderField(nf.Name, nestedVal, nf)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))
		}
	}
}

// setFieldValue writes value into field, converting between the widget's
// type and the field's kind. It reports whether the field was written.
func setFieldValue(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}

	switch v := value.(type) {
	case int64:
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if field.OverflowInt(v) {
				return false
			}
			field.SetInt(v)
			return true
		}
	case uint64:
		switch field.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if field.OverflowUint(v) {
				return false
			}
			field.SetUint(v)
			return true
		}
	case float64:
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			field.SetFloat(v)
			return true
		}
	case bool:
		if field.Kind() == reflect.Bool {
			field.SetBool(v)
			return true
		}
	case string:
		if field.Kind() == reflect.String {
			field.SetString(v)
			return true
		}
	}
	return false
}
