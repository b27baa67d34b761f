package debugui

import "github.com/plus3/ecsreg/ecs"

// SpawnDebugUI creates one entity per inspector window. Each entity carries
// its window state as a component and an ImguiItem that renders it, so the
// windows appear once an ImguiSystem is registered and the next tick runs.
// scheduler may be nil.
func SpawnDebugUI(registry *ecs.Registry, scheduler *ecs.Scheduler) ([]ecs.Entity, error) {
	browser := registry.CreateEntity()
	inspector := registry.CreateEntity()
	systems := registry.CreateEntity()
	perf := registry.CreateEntity()
	signatures := registry.CreateEntity()

	steps := []func() error{
		func() error { return ecs.AddComponent(registry, browser, NewEntityBrowserComponent(100)) },
		func() error {
			return ecs.AddComponent(registry, browser, ImguiItem{Render: func() {
				ecs.MustGetComponent[EntityBrowserComponent](registry, browser).Render(registry)
			}})
		},
		func() error { return ecs.AddComponent(registry, inspector, NewComponentInspectorComponent()) },
		func() error {
			return ecs.AddComponent(registry, inspector, ImguiItem{Render: func() {
				selected, ok := ecs.MustGetComponent[EntityBrowserComponent](registry, browser).GetSelectedEntity()
				ecs.MustGetComponent[ComponentInspectorComponent](registry, inspector).Render(registry, selected, ok)
			}})
		},
		func() error { return ecs.AddComponent(registry, systems, NewSystemViewerComponent()) },
		func() error {
			return ecs.AddComponent(registry, systems, ImguiItem{Render: func() {
				ecs.MustGetComponent[SystemViewerComponent](registry, systems).Render(registry)
			}})
		},
		func() error { return ecs.AddComponent(registry, perf, NewPerformanceStatsComponent(120)) },
		func() error {
			return ecs.AddComponent(registry, perf, ImguiItem{Render: func() {
				ecs.MustGetComponent[PerformanceStatsComponent](registry, perf).Render(registry, scheduler)
			}})
		},
		func() error { return ecs.AddComponent(registry, signatures, NewSignatureDebuggerComponent()) },
		func() error {
			return ecs.AddComponent(registry, signatures, ImguiItem{Render: func() {
				ecs.MustGetComponent[SignatureDebuggerComponent](registry, signatures).Render(registry)
			}})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return []ecs.Entity{browser, inspector, systems, perf, signatures}, nil
}
