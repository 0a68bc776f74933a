package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// writeTrace renders the inertia of every iteration as an HTML line chart.
func writeTrace(path, input string, trace []float64) error {
	if len(trace) == 0 {
		return fmt.Errorf("no iterations to chart")
	}
	line := charts.NewLine()

	xAxisData := make([]string, len(trace))
	inertiaData := make([]opts.LineData, len(trace))
	for i, v := range trace {
		xAxisData[i] = strconv.Itoa(i + 1)
		inertiaData[i] = opts.LineData{
			Value: v,
			Name:  fmt.Sprintf("iteration %d: %.6g", i+1, v),
		}
	}

	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Inertia per iteration",
			Subtitle: filepath.Base(input),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Iteration",
			Type: "category",
			Data: xAxisData,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Inertia",
			Type: "value",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)
	line.SetXAxis(xAxisData)
	line.AddSeries("Inertia", inertiaData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	return writeFile(path, func(w io.Writer) error { return line.Render(w) })
}
