package debugui

import (
	"github.com/plus3/ecsreg/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selected           ecs.Entity
	hasSelection       bool
	filterText         string
	showPending        bool
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selected ecs.Entity
}

type SystemViewerComponent struct {
	cache          *SystemViewerCache
	selectedSystem string
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	timer         *FrameTimer
}

type SignatureDebuggerComponent struct {
	selectedComponentTypes map[string]bool
}
