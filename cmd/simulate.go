package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/achilleasa/emberfx/gpu"
	"github.com/achilleasa/emberfx/gpu/opencl"
	"github.com/achilleasa/emberfx/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Run effects headless for a fixed number of frames and print statistics.
func Simulate(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	effects, err := effectsFromFlags(ctx)
	if err != nil {
		return err
	}

	provider, err := newProvider(ctx.String("backend"), ctx.String("device-type"), ctx.String("device"))
	if err != nil {
		return err
	}
	defer provider.Close()

	opts := renderer.Options{
		Frames: uint32(ctx.Int("frames")),
	}
	r, err := renderer.NewDefault(provider, renderer.FixedClock(float32(ctx.Float64("dt"))), opts, effects...)
	if err != nil {
		return err
	}
	defer r.Close()

	stop := interruptOnSignal(r)
	defer stop()

	logger.Noticef("simulating %d effect(s) for %d frames on %s", len(effects), opts.Frames, provider.Name())
	err = r.Render()
	if err == renderer.ErrInterrupted {
		logger.Warning("simulation interrupted")
	} else if err != nil {
		return err
	}

	var buf bytes.Buffer
	writeFrameStats(&buf, r.Stats())
	logger.Noticef("frame statistics\n%s", buf.String())
	return nil
}

func newProvider(backend, deviceType, deviceName string) (gpu.Provider, error) {
	switch backend {
	case "", "host":
		return gpu.NewHostProvider(), nil
	case "opencl":
		typeMask, err := opencl.ParseDeviceType(deviceType)
		if err != nil {
			return nil, err
		}
		return opencl.NewProvider(typeMask, deviceName)
	}
	return nil, fmt.Errorf("unsupported backend %q; expected host or opencl", backend)
}

// Interrupt r on SIGINT. The returned func stops signal delivery.
func interruptOnSignal(r renderer.Renderer) func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			r.Interrupt()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func writeFrameStats(w io.Writer, stats renderer.FrameStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Effect", "Capacity", "Alive", "Indices", "Emitted", "Dropped", "Reclaimed", "Sync time"})
	for _, st := range stats.Effects {
		table.Append([]string{
			st.Name,
			fmt.Sprintf("%d", st.Capacity),
			fmt.Sprintf("%d", st.Alive),
			fmt.Sprintf("%d", st.Indices),
			fmt.Sprintf("%d", st.Emitted),
			fmt.Sprintf("%d", st.Dropped),
			fmt.Sprintf("%d", st.Reclaimed),
			st.SyncTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "FRAME", fmt.Sprintf("%d @ t=%.2fs", stats.Frame, stats.SimTime), stats.RenderTime.String()})
	table.Render()
}
