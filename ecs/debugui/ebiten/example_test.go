package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/ecsreg/ecs"
	"github.com/plus3/ecsreg/ecs/debugui"
	debugui_ebiten "github.com/plus3/ecsreg/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	registry     *ecs.Registry
	scheduler    *ecs.Scheduler
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems, including ImguiSystem, run inside the ImGui frame
	g.imguiBackend.Tick(g.scheduler, 1.0/60.0)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	imguiBackend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	registry := ecs.NewRegistry()
	scheduler := ecs.NewScheduler(registry)
	if err := scheduler.Register(debugui.NewImguiSystem()); err != nil {
		panic(err)
	}

	// Inspector windows for the registry itself
	if _, err := debugui.SpawnDebugUI(registry, scheduler); err != nil {
		panic(err)
	}

	// Entities with custom ImGui render functions
	e := registry.CreateEntity()
	if err := ecs.AddComponent(registry, e, debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	}); err != nil {
		panic(err)
	}

	game := &Game{
		registry:     registry,
		scheduler:    scheduler,
		imguiBackend: imguiBackend,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
