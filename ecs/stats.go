package ecs

// RegistryStats is a snapshot of registry bookkeeping.
type RegistryStats struct {
	TotalEntityCount   int
	LiveEntityCount    int
	PendingAddCount    int
	PendingKillCount   int
	ComponentTypeCount int
	PoolBreakdown      []PoolStats
	SystemBreakdown    []SystemInfo
}

// PoolStats describes one component pool.
type PoolStats struct {
	ComponentId ComponentId
	Name        string
	Capacity    int
	// EntityCount is the number of entities whose signature has this component.
	EntityCount int
}

// SystemInfo describes one registered system.
type SystemInfo struct {
	Name               string
	Signature          Signature
	RequiredComponents []string
	EntityCount        int
}

// CollectStats gathers counts for pools, systems and entity states.
func (r *Registry) CollectStats() *RegistryStats {
	stats := &RegistryStats{
		TotalEntityCount:   len(r.states),
		LiveEntityCount:    r.numLive,
		PendingAddCount:    r.toAdd.len(),
		PendingKillCount:   r.toKill.len(),
		ComponentTypeCount: r.components.Len(),
	}

	counts := make([]int, MaxComponents)
	for _, sig := range r.signatures {
		for _, id := range sig.Ids() {
			counts[id]++
		}
	}

	for id, pool := range r.pools {
		if pool == nil {
			continue
		}
		stats.PoolBreakdown = append(stats.PoolBreakdown, PoolStats{
			ComponentId: ComponentId(id),
			Name:        pool.Type().String(),
			Capacity:    pool.Len(),
			EntityCount: counts[id],
		})
	}

	for _, sys := range r.systemOrder {
		b := sys.base()
		stats.SystemBreakdown = append(stats.SystemBreakdown, SystemInfo{
			Name:               b.name,
			Signature:          b.signature,
			RequiredComponents: r.components.Names(b.signature),
			EntityCount:        b.Len(),
		})
	}

	return stats
}
