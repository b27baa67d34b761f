package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsreg/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	historyFrames = max(historyFrames, 1)
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
		timer:         NewFrameTimer(),
	}
}

// record stores one frame time in milliseconds and returns the average over
// the history window.
func (ps *PerformanceStatsComponent) record(deltaTime float32) float32 {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	return avgFrameTime / float32(ps.historyFrames)
}

// Render draws registry counts and the frame time graph. scheduler may be
// nil, in which case per-system timings are omitted.
func (ps *PerformanceStatsComponent) Render(registry *ecs.Registry, scheduler *ecs.Scheduler) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avgFrameTime := ps.record(ps.timer.GetDeltaTime())

	stats := registry.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Live: %d  Pending Add: %d  Pending Kill: %d",
		stats.LiveEntityCount, stats.PendingAddCount, stats.PendingKillCount))
	imgui.Text(fmt.Sprintf("Component Types: %d / %d", stats.ComponentTypeCount, ecs.MaxComponents))

	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Pool Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PoolStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Capacity")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, pool := range stats.PoolBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d %s", pool.ComponentId, pool.Name))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Capacity))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if scheduler != nil && imgui.TreeNodeStr("System Timings") {
		schedStats := scheduler.GetStats()
		imgui.BulletText(fmt.Sprintf("Update: %s", schedStats.UpdateDuration))
		for _, sys := range schedStats.Systems {
			imgui.BulletText(fmt.Sprintf("%s: last %s, avg %s, %d entities",
				sys.Name, sys.LastDuration, sys.AvgDuration, sys.EntityCount))
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
