package main

import (
	"github.com/loomkit/loom/engine/assets"
	"github.com/loomkit/loom/engine/colors"
	"github.com/loomkit/loom/engine/core"
)

// Fallbacks when assets/shaders is missing, so the sandbox runs from
// any working directory.
const backdropVert = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
out vec4 vColor;
void main() {
    vColor = aColor;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const backdropFrag = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;
void main() {
    FragColor = vColor;
}
`

// LayerBackdrop fills the framebuffer with a vertical gradient drawn by
// its own pipeline, underneath every UI layer.
type LayerBackdrop struct {
	pipe core.Pipeline
	mesh core.Mesh
}

func (l *LayerBackdrop) OnAttach(e *core.Engine) {
	vs, err := assets.LoadShader("backdrop.vert")
	if err != nil {
		vs = backdropVert
	}
	fs, err := assets.LoadShader("backdrop.frag")
	if err != nil {
		fs = backdropFrag
	}

	pipe, err := e.Device.CreatePipeline(core.PipelineDesc{
		VertexSource:   vs,
		FragmentSource: fs,
	})
	if err != nil {
		core.Logger().Error("backdrop pipeline", "error", err)
		return
	}

	top := colors.RGB8(38, 40, 50)
	bottom := colors.RGB8(22, 23, 30)
	mesh, err := e.Device.CreateMesh(core.MeshDesc{
		Vertices: gradientQuad(top, bottom),
		Layout: core.VertexLayout{
			Stride: 6 * 4,
			Attributes: []core.VertexAttrib{
				{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},
				{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 8},
			},
		},
	})
	if err != nil {
		core.Logger().Error("backdrop mesh", "error", err)
		return
	}

	l.pipe, l.mesh = pipe, mesh
}

// gradientQuad is a fullscreen quad in NDC with the top corners colored
// top and the bottom corners colored bottom.
func gradientQuad(top, bottom colors.Color) []float32 {
	v := func(x, y float32, c colors.Color) []float32 {
		return []float32{x, y, c[0], c[1], c[2], c[3]}
	}
	var out []float32
	out = append(out, v(-1, -1, bottom)...)
	out = append(out, v(1, -1, bottom)...)
	out = append(out, v(1, 1, top)...)
	out = append(out, v(-1, -1, bottom)...)
	out = append(out, v(1, 1, top)...)
	out = append(out, v(-1, 1, top)...)
	return out
}

func (l *LayerBackdrop) OnDetach(e *core.Engine) {}

func (l *LayerBackdrop) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerBackdrop) OnRender(e *core.Engine, alpha float64) {
	if l.pipe == nil || l.mesh == nil {
		return
	}
	err := e.Device.Draw(core.DrawCmd{Pipe: l.pipe, Mesh: l.mesh, VertexCount: 6})
	if err != nil {
		core.Logger().Error("backdrop draw", "error", err)
		l.pipe = nil // don't spam every frame
	}
}

func (l *LayerBackdrop) OnEvent(e *core.Engine, ev core.Event) bool { return false }
