package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsreg/ecs"
)

type EntityInfo struct {
	Entity         ecs.Entity
	State          ecs.EntityState
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastTotal     int
	lastLive      int
	lastPending   int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
			lastTotal:     -1,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(registry *ecs.Registry) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(registry)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}
	imgui.SameLine()
	if imgui.Checkbox("Pending", &eb.showPending) {
		eb.cache.lastTotal = -1
		eb.rebuildCacheIfNeeded(registry)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.filteredEntities()
		startIdx, endIdx := eb.pageBounds(len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			info := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selected == info.Entity
			if imgui.SelectableBoolV(fmt.Sprintf("%d", info.Entity.Id()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = info.Entity
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(info.State.String())

			imgui.TableNextColumn()
			imgui.Text(strings.Join(info.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.ComponentCount))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.filteredEntities()

	if eb.maxEntitiesPerPage > 0 && len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// rebuildCacheIfNeeded refreshes the entity list when entity counts change.
// Component changes on an unchanged population show up after the next
// creation or removal.
func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(registry *ecs.Registry) {
	total := registry.NumEntities()
	live := registry.NumLiveEntities()
	pending := registry.NumPendingAdd() + registry.NumPendingKill()
	if eb.cache.lastTotal != total || eb.cache.lastLive != live || eb.cache.lastPending != pending {
		eb.cache.entities = nil
		eb.cache.lastTotal = total
		eb.cache.lastLive = live
		eb.cache.lastPending = pending
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(registry)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(registry *ecs.Registry) {
	eb.cache.entities = collectEntities(registry, eb.showPending)
	eb.sortEntities()
}

// collectEntities lists live entities, plus entities awaiting promotion when
// includePending is set.
func collectEntities(registry *ecs.Registry, includePending bool) []EntityInfo {
	entities := registry.LiveEntities()
	if includePending {
		entities = append(entities, registry.PendingAdd()...)
	}

	infos := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		componentTypes := registry.Components().Names(registry.Signature(e))
		infos = append(infos, EntityInfo{
			Entity:         e,
			State:          registry.EntityState(e),
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		})
	}
	return infos
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.Slice(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 0:
			less = a.Entity.Less(b.Entity)
		case 1:
			less = a.State < b.State
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.Entity.Less(b.Entity)
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) filteredEntities() []EntityInfo {
	return filterEntities(eb.cache.entities, eb.filterText)
}

// filterEntities keeps entities whose id, state or component names contain
// text, ignoring case.
func filterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, info := range entities {
		idStr := fmt.Sprintf("%d", info.Entity.Id())
		componentsStr := strings.ToLower(strings.Join(info.ComponentTypes, " "))

		if !strings.Contains(idStr, filterLower) &&
			!strings.Contains(info.State.String(), filterLower) &&
			!strings.Contains(componentsStr, filterLower) {
			continue
		}

		filtered = append(filtered, info)
	}

	return filtered
}

func (eb *EntityBrowserComponent) pageBounds(n int) (int, int) {
	if eb.maxEntitiesPerPage <= 0 {
		return 0, n
	}
	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	if startIdx >= n {
		eb.currentPage = 0
		startIdx = 0
	}
	return startIdx, min(startIdx+eb.maxEntitiesPerPage, n)
}

// GetSelectedEntity returns the entity picked in the table, if any.
func (eb *EntityBrowserComponent) GetSelectedEntity() (ecs.Entity, bool) {
	return eb.selected, eb.hasSelection
}
