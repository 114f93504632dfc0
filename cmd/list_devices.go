package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/emberfx/gpu/opencl"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List available opencl devices.
func ListDevices(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	platforms, err := opencl.GetPlatformInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Platform", "Version", "Device", "Type", "Speed (GFlops)"})
	for pIdx, p := range platforms {
		for _, d := range p.Devices {
			table.Append([]string{
				fmt.Sprintf("%02d %s", pIdx, p.Name),
				p.Version,
				d.Name,
				d.Type.String(),
				fmt.Sprintf("%d", d.Speed),
			})
		}
	}
	table.Render()

	logger.Noticef("system provides %d opencl platform(s)\n%s", len(platforms), buf.String())
	return nil
}
