package sand

import "falling-sand/internal/core"

// Parameters reports the grid configuration and live counters for the HUD.
func (g *Grid) Parameters() core.ParameterSnapshot {
	sandCells, waterCells := g.Counts()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("size", "Size", g.n),
				core.Int64Param("seed", "Seed", g.seed),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				core.Uint64Param("tick", "Tick", g.tick),
				core.IntParam("occupied", "Occupied", g.Occupied()),
				core.IntParam("moved", "Moved", g.moved),
				core.IntParam("sand", "Sand", sandCells),
				core.IntParam("water", "Water", waterCells),
			},
		},
	}}
}
