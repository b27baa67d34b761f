package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsreg/ecs"
)

func NewSignatureDebuggerComponent() SignatureDebuggerComponent {
	return SignatureDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
	}
}

// Render lets the user tick component types and shows which live entities
// and systems a system requiring exactly those types would match.
func (sd *SignatureDebuggerComponent) Render(registry *ecs.Registry) {
	if !imgui.BeginV("Signature Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(sd.selectedComponentTypes)
	}

	for _, info := range registry.Components().Components() {
		name := info.Name()
		selected := sd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				sd.selectedComponentTypes[name] = true
			} else {
				delete(sd.selectedComponentTypes, name)
			}
		}
	}

	imgui.Separator()

	required := sd.signature(registry)
	imgui.Text(fmt.Sprintf("Signature: %s", required))

	matching := matchingEntities(registry, required)
	imgui.Text(fmt.Sprintf("Matching Entities: %d / %d", len(matching), registry.NumLiveEntities()))

	if imgui.TreeNodeStr("Systems Satisfied") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SignatureSystemTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Requires")
			imgui.TableHeadersRow()

			for _, sys := range collectSystems(registry) {
				if !required.Contains(sys.Signature) {
					continue
				}
				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(sys.Name)
				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(sys.ComponentTypes, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// signature builds the signature of the ticked component types.
func (sd *SignatureDebuggerComponent) signature(registry *ecs.Registry) ecs.Signature {
	var sig ecs.Signature
	for _, info := range registry.Components().Components() {
		if sd.selectedComponentTypes[info.Name()] {
			sig.Set(info.Id)
		}
	}
	return sig
}

// matchingEntities applies the system membership rule to every live entity.
func matchingEntities(registry *ecs.Registry, required ecs.Signature) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range registry.LiveEntities() {
		if registry.Signature(e).Contains(required) {
			out = append(out, e)
		}
	}
	return out
}
