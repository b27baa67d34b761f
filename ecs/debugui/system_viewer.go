package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsreg/ecs"
)

type SystemInfo struct {
	Name           string
	Signature      ecs.Signature
	ComponentTypes []string
	EntityCount    int
}

type SystemViewerCache struct {
	systems       []SystemInfo
	sortColumn    int
	sortAscending bool
}

func NewSystemViewerComponent() SystemViewerComponent {
	return SystemViewerComponent{
		cache: &SystemViewerCache{
			sortColumn:    2,
			sortAscending: false,
		},
	}
}

// Render draws one row per registered system and returns the name of the
// system clicked this frame, if any.
func (sv *SystemViewerComponent) Render(registry *ecs.Registry) string {
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	sv.rebuildCache(registry)

	maxEntityCount := 0
	for _, sys := range sv.cache.systems {
		maxEntityCount = max(maxEntityCount, sys.EntityCount)
	}

	var clicked string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SystemTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Requires")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.cache.sortColumn = int(spec.ColumnIndex())
			sv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortSystems()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, sys := range sv.cache.systems {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedSystem == sys.Name
			if imgui.SelectableBoolV(sys.Name, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sv.selectedSystem = sys.Name
				clicked = sys.Name
			}

			imgui.TableNextColumn()
			if len(sys.ComponentTypes) == 0 {
				imgui.Text("(any)")
			} else {
				imgui.Text(strings.Join(sys.ComponentTypes, ", "))
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(sys.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	if sv.selectedSystem != "" {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Selected: %s", sv.selectedSystem))
		for _, sys := range sv.cache.systems {
			if sys.Name == sv.selectedSystem {
				imgui.Text(fmt.Sprintf("Signature: %s", sys.Signature))
			}
		}
	}

	imgui.End()
	return clicked
}

// rebuildCache runs every frame: member counts change with every sync point
// and the system list is short.
func (sv *SystemViewerComponent) rebuildCache(registry *ecs.Registry) {
	sv.cache.systems = collectSystems(registry)
	sv.sortSystems()
}

func collectSystems(registry *ecs.Registry) []SystemInfo {
	handles := registry.Systems()
	systems := make([]SystemInfo, 0, len(handles))
	for _, handle := range handles {
		sys := ecs.SystemOf(handle)
		systems = append(systems, SystemInfo{
			Name:           sys.Name(),
			Signature:      sys.GetComponentSignature(),
			ComponentTypes: registry.Components().Names(sys.GetComponentSignature()),
			EntityCount:    sys.Len(),
		})
	}
	return systems
}

func (sv *SystemViewerComponent) sortSystems() {
	sort.SliceStable(sv.cache.systems, func(i, j int) bool {
		a, b := sv.cache.systems[i], sv.cache.systems[j]
		var less bool

		switch sv.cache.sortColumn {
		case 0:
			less = a.Name < b.Name
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !sv.cache.sortAscending {
			return !less
		}
		return less
	})
}
