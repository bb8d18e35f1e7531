package viz

import "github.com/guptarohit/asciigraph"

// PlotSweep renders a coefficient sweep as a terminal line plot.
func PlotSweep(values []float64, caption string) string {
	return asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
}
