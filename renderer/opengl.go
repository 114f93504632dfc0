//go:build !offscreen

package renderer

import (
	"fmt"
	"math/rand"
	"runtime"

	"github.com/achilleasa/emberfx/emitter"
	"github.com/achilleasa/emberfx/gpu/opengl"
	"github.com/achilleasa/emberfx/types"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// Height in pixels for the alive count history strip.
	stackedSeriesHeight uint32 = 40

	// Byte offset of Particle.Position inside a particle record.
	positionOffset = 4
)

// An interactive opengl-based renderer. Particles are drawn as points
// straight from the buffers the emitters upload to.
type interactiveGLRenderer struct {
	*defaultRenderer

	window *glfw.Window
	colors []types.Vec3

	// Display options
	showUI           bool
	aliveCountSeries *stackedSeries
}

// Create a window and an interactive renderer that draws the given effects.
// Interactive renderers must be created and run on the main goroutine.
func NewInteractive(clock Clock, opts Options, effects ...Effect) (Renderer, error) {
	runtime.LockOSThread()

	r := &interactiveGLRenderer{}
	if err := r.initGL(opts); err != nil {
		r.Close()
		return nil, err
	}

	base, err := newDefaultRenderer(opengl.NewProvider(true), clock, opts, effects)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.defaultRenderer = base

	r.initUI()
	return r, nil
}

func (r *interactiveGLRenderer) Close() {
	if r.defaultRenderer != nil {
		r.defaultRenderer.Close()
	}
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
		glfw.Terminate()
	}
}

func (r *interactiveGLRenderer) initGL(opts Options) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	r.window, err = glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), "emberfx", nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Enable(gl.POINT_SMOOTH)

	r.window.SetKeyCallback(r.onKeyEvent)
	return nil
}

func (r *interactiveGLRenderer) initUI() {
	r.colors = make([]types.Vec3, len(r.bindings))
	for idx := range r.colors {
		r.colors[idx] = types.Vec3{1.0, 0.3 + 0.5*rand.Float32(), 0.1 * rand.Float32()}
	}
	r.aliveCountSeries = makeStackedSeries(r.colors, int(r.options.FrameW))
}

func (r *interactiveGLRenderer) Render() error {
	var frame uint32
	for !r.window.ShouldClose() {
		glfw.PollEvents()

		if r.options.Frames != 0 && frame == r.options.Frames {
			break
		}
		frame++

		if err := r.renderFrame(); err != nil {
			return err
		}

		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		r.drawEffects()

		if r.showUI {
			r.renderUI()
		}

		r.window.SwapBuffers()
	}
	return nil
}

// Stop rendering by closing the window.
func (r *interactiveGLRenderer) Interrupt() {
	r.window.SetShouldClose(true)
}

func (r *interactiveGLRenderer) drawEffects() {
	extent := float64(r.options.ViewExtent)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(-extent, extent, -extent, extent, -extent, extent)
	gl.Viewport(0, 0, int32(r.options.FrameW), int32(r.options.FrameH))
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.PointSize(r.options.PointSize)
	gl.EnableClientState(gl.VERTEX_ARRAY)
	for idx, b := range r.bindings {
		if b.drawCount == 0 {
			continue
		}

		glBuf := b.buffer.(*opengl.Buffer)
		gl.BindBuffer(gl.ARRAY_BUFFER, glBuf.Handle())
		gl.VertexPointer(3, gl.FLOAT, int32(emitter.ParticleSize), gl.PtrOffset(positionOffset))
		gl.Color4f(r.colors[idx][0], r.colors[idx][1], r.colors[idx][2], 0.8)
		gl.DrawArrays(gl.POINTS, 0, int32(b.drawCount))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.DisableClientState(gl.VERTEX_ARRAY)
}

func (r *interactiveGLRenderer) renderUI() {
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(r.options.FrameW), float64(r.options.FrameH), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	for idx, b := range r.bindings {
		r.aliveCountSeries.Append(idx, float32(b.drawCount)/float32(b.Emitter.Capacity()))
	}
	r.aliveCountSeries.Render(r.options.FrameH-stackedSeriesHeight, stackedSeriesHeight)
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		r.window.SetShouldClose(true)
	case glfw.KeyR:
		r.resetEffects()
		r.aliveCountSeries.Clear()
	case glfw.KeyTab:
		r.showUI = !r.showUI
		if r.showUI {
			r.aliveCountSeries.Clear()
		}
	}
}

// A history of per-effect buffer occupancy drawn as stacked columns.
type stackedSeries struct {
	series [][]float32
	colors []types.Vec3
}

func makeStackedSeries(colors []types.Vec3, histCount int) *stackedSeries {
	s := &stackedSeries{
		series: make([][]float32, len(colors)),
		colors: colors,
	}
	for sIndex := range s.series {
		s.series[sIndex] = make([]float32, histCount)
	}
	return s
}

func (s *stackedSeries) Clear() {
	for sIndex := range s.series {
		s.series[sIndex] = make([]float32, len(s.series[sIndex]))
	}
}

// Shift series values and append new value at the end.
func (s *stackedSeries) Append(seriesIndex int, val float32) {
	s.series[seriesIndex] = append(s.series[seriesIndex][1:], val)
}

// Get the stacked column heights at history position x scaled to height.
func (s *stackedSeries) column(x int, height float32) []float32 {
	var sum float32
	for sIndex := range s.series {
		sum += s.series[sIndex][x]
	}

	out := make([]float32, len(s.series))
	if sum == 0 {
		return out
	}

	// Occupancies are fractions; only rescale when they overflow the strip.
	scale := height
	if sum > 1 {
		scale = height / sum
	}
	for sIndex := range s.series {
		out[sIndex] = s.series[sIndex][x] * scale
	}
	return out
}

func (s *stackedSeries) Render(rY, rHeight uint32) {
	if len(s.series) == 0 {
		return
	}

	gl.LineWidth(1.0)
	gl.Begin(gl.LINES)
	for x := 0; x < len(s.series[0]); x++ {
		y := float32(rY + rHeight)
		for sIndex, sH := range s.column(x, float32(rHeight)) {
			gl.Color3fv(&s.colors[sIndex][0])
			gl.Vertex2f(float32(x), y)
			gl.Vertex2f(float32(x), y-sH)
			y -= sH
		}
	}
	gl.End()
}
