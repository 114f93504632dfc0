package cmd

import (
	"github.com/achilleasa/emberfx/renderer"
	"github.com/urfave/cli"
)

// Render effects in a window until it is closed.
func RenderInteractive(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	effects, err := effectsFromFlags(ctx)
	if err != nil {
		return err
	}

	opts := renderer.Options{
		Frames:     uint32(ctx.Int("frames")),
		FrameW:     uint32(ctx.Int("width")),
		FrameH:     uint32(ctx.Int("height")),
		ViewExtent: float32(ctx.Float64("extent")),
		PointSize:  float32(ctx.Float64("point-size")),
	}
	r, err := renderer.NewInteractive(renderer.WallClock(), opts, effects...)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("press TAB to toggle the occupancy graph, R to reset effects and ESC to exit")
	return r.Render()
}
