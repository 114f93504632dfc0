package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/emberfx/emitter"
	"github.com/achilleasa/emberfx/renderer"
	"github.com/achilleasa/emberfx/types"
	"github.com/urfave/cli"
)

// Flags shared by all commands that run effects.
var EffectFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "capacity",
		Value: 1024,
		Usage: "max number of simultaneously alive particles",
	},
	cli.Float64Flag{
		Name:  "lifetime",
		Value: 2.0,
		Usage: "particle lifetime in seconds",
	},
	cli.Float64Flag{
		Name:  "rate",
		Value: 200,
		Usage: "particles emitted per second",
	},
	cli.StringFlag{
		Name:  "origin",
		Value: "0,0,0",
		Usage: "spawn origin as x,y,z",
	},
	cli.Float64Flag{
		Name:  "spread",
		Value: 0.5,
		Usage: "half-size of the cube spawn positions are jittered in",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed for spawn position jitter",
	},
	cli.StringSliceFlag{
		Name:  "effect, e",
		Value: &cli.StringSlice{},
		Usage: "add an effect as name:capacity:lifetime:rate[:x,y,z]; overrides the single effect flags",
	},
}

// Build the effect list from the command flags.
func effectsFromFlags(ctx *cli.Context) ([]renderer.Effect, error) {
	specs := ctx.StringSlice("effect")
	if len(specs) == 0 {
		origin, err := types.ParseVec3(ctx.String("origin"))
		if err != nil {
			return nil, err
		}
		em, err := emitter.New(emitter.Options{
			Capacity:     ctx.Int("capacity"),
			MaxLifetime:  float32(ctx.Float64("lifetime")),
			EmissionRate: float32(ctx.Float64("rate")),
			SpawnOrigin:  origin,
			SpawnSpread:  float32(ctx.Float64("spread")),
			Seed:         ctx.Int64("seed"),
		})
		if err != nil {
			return nil, err
		}
		return []renderer.Effect{{Name: "default", Emitter: em}}, nil
	}

	effects := make([]renderer.Effect, 0, len(specs))
	for idx, spec := range specs {
		name, opts, err := parseEffectSpec(spec)
		if err != nil {
			return nil, err
		}
		opts.SpawnSpread = float32(ctx.Float64("spread"))
		opts.Seed = ctx.Int64("seed") + int64(idx)

		em, err := emitter.New(opts)
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", name, err)
		}
		effects = append(effects, renderer.Effect{Name: name, Emitter: em})
	}
	return effects, nil
}

// Parse an effect definition of the form name:capacity:lifetime:rate[:x,y,z].
func parseEffectSpec(spec string) (string, emitter.Options, error) {
	var opts emitter.Options

	tokens := strings.Split(spec, ":")
	if len(tokens) < 4 || len(tokens) > 5 {
		return "", opts, fmt.Errorf("invalid effect %q; expected name:capacity:lifetime:rate[:x,y,z]", spec)
	}

	name := strings.TrimSpace(tokens[0])
	if name == "" {
		return "", opts, fmt.Errorf("invalid effect %q: missing name", spec)
	}

	capacity, err := strconv.Atoi(tokens[1])
	if err != nil {
		return "", opts, fmt.Errorf("invalid effect %q: capacity: %w", spec, err)
	}
	lifetime, err := strconv.ParseFloat(tokens[2], 32)
	if err != nil {
		return "", opts, fmt.Errorf("invalid effect %q: lifetime: %w", spec, err)
	}
	rate, err := strconv.ParseFloat(tokens[3], 32)
	if err != nil {
		return "", opts, fmt.Errorf("invalid effect %q: rate: %w", spec, err)
	}

	opts = emitter.Options{
		Capacity:     capacity,
		MaxLifetime:  float32(lifetime),
		EmissionRate: float32(rate),
	}
	if len(tokens) == 5 {
		if opts.SpawnOrigin, err = types.ParseVec3(tokens[4]); err != nil {
			return "", opts, fmt.Errorf("invalid effect %q: origin: %w", spec, err)
		}
	}

	return name, opts, nil
}
