package main

import (
	"os"

	"github.com/achilleasa/emberfx/cmd"
	"github.com/achilleasa/emberfx/log"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "emberfx"
	app.Usage = "simulate ring-buffer particle emitters and stream them to gpu buffers"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "simulate",
			Usage: "run effects headless and print frame statistics",
			Description: `
Advance each effect with a fixed time step and upload the alive particles
to a device buffer every frame. The buffers live in host memory unless the
opencl backend is selected.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "frames",
					Value: 600,
					Usage: "number of frames to simulate",
				},
				cli.Float64Flag{
					Name:  "dt",
					Value: 1.0 / 60,
					Usage: "simulation time step in seconds",
				},
				cli.StringFlag{
					Name:  "backend",
					Value: "host",
					Usage: "buffer backend (host, opencl)",
				},
				cli.StringFlag{
					Name:  "device-type",
					Value: "all",
					Usage: "opencl device type (cpu, gpu, all)",
				},
				cli.StringFlag{
					Name:  "device",
					Usage: "select the first opencl device whose name contains this value",
				},
			}, cmd.EffectFlags...),
			Action: cmd.Simulate,
		},
		{
			Name:  "interactive",
			Usage: "render effects in an opengl window",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 768,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 768,
					Usage: "window height",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 0,
					Usage: "stop after this many frames (0 = until the window is closed)",
				},
				cli.Float64Flag{
					Name:  "extent",
					Value: 10,
					Usage: "half-size of the visible world region",
				},
				cli.Float64Flag{
					Name:  "point-size",
					Value: 4,
					Usage: "particle size in pixels",
				},
			}, cmd.EffectFlags...),
			Action: cmd.RenderInteractive,
		},
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("emberfx").Error(err)
		os.Exit(1)
	}
}
