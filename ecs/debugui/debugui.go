// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Windows are ordinary entities: each carries an ImguiItem whose render function
// ImguiSystem calls once per tick.
package debugui

import (
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsreg/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input this frame.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem renders every entity carrying an ImguiItem and records the
// current input capture state.
type ImguiSystem struct {
	ecs.System
	InputState ImguiInputState
}

// NewImguiSystem creates the system. Register it with a Scheduler.
func NewImguiSystem() *ImguiSystem {
	s := &ImguiSystem{}
	ecs.RequireComponent[ImguiItem](&s.System)
	return s
}

// Execute updates input state and calls each item's render function in the
// order the items joined the system.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	i.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	// Render functions may add or remove components, so walk a snapshot.
	for _, e := range slices.Clone(i.GetSystemEntities()) {
		item, err := ecs.GetComponent[ImguiItem](frame.Registry, e)
		if err != nil || item.Render == nil {
			continue
		}
		item.Render()
	}
}
