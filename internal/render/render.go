// Package render turns a completed packing run into an HTML page of 3D
// scatter charts, one per container, for visual inspection of the stowage
// plan. It is a pure consumer of placement records and never feeds back into
// the engine.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/stowage-io/stowage/internal/packing"
)

// WriteHTML renders one chart per container showing the center point of every
// placed item. Containers without cargo still get an empty chart so a reviewer
// sees every bin of the run.
func WriteHTML(w io.Writer, runID string, containers []packing.Container) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, c := range containers {
		page.AddCharts(containerChart(runID, c))
	}

	return page.Render(w)
}

func containerChart(runID string, c packing.Container) *charts.Scatter3D {
	chart := charts.NewScatter3D()
	interior := c.Size()

	placements := c.Placements()
	var usedVolume float64
	data := make([]opts.Chart3DData, 0, len(placements))
	for _, p := range placements {
		box := p.Box()
		center := packing.Vector{
			X: box.Origin.X + box.Size.W/2,
			Y: box.Origin.Y + box.Size.D/2,
			Z: box.Origin.Z + box.Size.H/2,
		}
		usedVolume += p.Item.Volume()
		data = append(data, opts.Chart3DData{
			Name:  fmt.Sprintf("%s #%d", p.Item.Name(), p.Instance),
			Value: []interface{}{center.X, center.Y, center.Z, p.Item.Weight()},
		})
	}

	utilization := 0.0
	if c.Volume() > 0 {
		utilization = usedVolume / c.Volume() * 100
	}
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Container %s", c.ID()),
			Subtitle: fmt.Sprintf("run %s: %d items, %.1f%% of %.0fx%.0fx%.0f used",
				runID, len(placements), utilization, interior.W, interior.D, interior.H),
		}),
	)
	chart.AddSeries("cargo", data)
	return chart
}
