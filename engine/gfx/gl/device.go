package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/loomkit/loom/engine/core"
)

// Device is the OpenGL 3.3 core implementation of core.Device.
// It owns every GPU object it hands out and releases them on Shutdown.
type Device struct {
	win core.Window

	pipelines map[*pipeline]struct{}
	textures  map[*texture]struct{}
	meshes    map[*mesh]struct{}
}

type pipeline struct {
	program  uint32
	blend    bool
	depth    bool
	uniforms map[string]int32
}

type texture struct {
	id     uint32
	w, h   int
	format core.TextureFormat
}

type mesh struct {
	vao, vbo, ebo uint32
	vertexBytes   int
	indexBytes    int
	hasIndex      bool
	dynamic       bool
}

// New initializes the GL function pointers against the window's current
// context and returns a ready device.
func New(win core.Window, _ core.Config) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl: init: %w", err)
	}

	d := &Device{
		win:       win,
		pipelines: make(map[*pipeline]struct{}),
		textures:  make(map[*texture]struct{}),
		meshes:    make(map[*mesh]struct{}),
	}

	core.Logger().Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return d, nil
}

func (d *Device) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(nullTerminated(desc.VertexSource), nullTerminated(desc.FragmentSource))
	if err != nil {
		return nil, err
	}
	p := &pipeline{
		program:  prog,
		blend:    desc.Blend,
		depth:    desc.DepthTest,
		uniforms: make(map[string]int32),
	}
	d.pipelines[p] = struct{}{}
	return p, nil
}

func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width < 1 || desc.Height < 1 {
		return nil, fmt.Errorf("gl: texture size %dx%d", desc.Width, desc.Height)
	}

	var internal int32
	var format uint32
	switch desc.Format {
	case core.TextureRGBA8:
		internal, format = gl.RGBA8, gl.RGBA
	case core.TextureAlpha8:
		internal, format = gl.R8, gl.RED
	default:
		return nil, fmt.Errorf("gl: unsupported texture format %d", desc.Format)
	}

	t := &texture{w: desc.Width, h: desc.Height, format: desc.Format}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterMode(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterMode(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapMode(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapMode(desc.WrapV))

	if desc.Format == core.TextureAlpha8 {
		// Single-channel rows are tightly packed, not 4-byte aligned.
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		defer gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	}

	var ptr unsafe.Pointer
	if len(desc.Pixels) > 0 {
		if err := checkPixels(desc.Format, desc.Width, desc.Height, desc.Pixels); err != nil {
			gl.DeleteTextures(1, &t.id)
			return nil, err
		}
		ptr = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, ptr)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	d.textures[t] = struct{}{}
	return t, nil
}

func (d *Device) UpdateTexture(th core.Texture, w, h int, pixels []byte) error {
	t, ok := th.(*texture)
	if !ok || t == nil {
		return fmt.Errorf("gl: update of foreign texture %T", th)
	}
	if w != t.w || h != t.h {
		return fmt.Errorf("gl: update size %dx%d on %dx%d texture", w, h, t.w, t.h)
	}
	if err := checkPixels(t.format, w, h, pixels); err != nil {
		return err
	}

	format := uint32(gl.RGBA)
	if t.format == core.TextureAlpha8 {
		format = gl.RED
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		defer gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (d *Device) DestroyTexture(th core.Texture) {
	t, ok := th.(*texture)
	if !ok || t == nil {
		return
	}
	if _, tracked := d.textures[t]; !tracked {
		return
	}
	gl.DeleteTextures(1, &t.id)
	delete(d.textures, t)
}

func (d *Device) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride <= 0 || len(desc.Layout.Attributes) == 0 {
		return nil, fmt.Errorf("gl: mesh needs a vertex layout")
	}

	usage := uint32(gl.STATIC_DRAW)
	if desc.Dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	m := &mesh{dynamic: desc.Dynamic}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.vertexBytes = len(desc.Vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, m.vertexBytes, ptrOrNil(desc.Vertices), usage)

	for _, a := range desc.Layout.Attributes {
		if a.Type != core.AttribFloat32 {
			gl.BindVertexArray(0)
			d.deleteMesh(m)
			return nil, fmt.Errorf("gl: unsupported attribute type %d", a.Type)
		}
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointer(uint32(a.Location), int32(a.Size), gl.FLOAT, false, int32(desc.Layout.Stride), unsafe.Pointer(uintptr(a.Offset)))
	}

	if len(desc.Indices) > 0 {
		m.hasIndex = true
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		m.indexBytes = len(desc.Indices) * 4
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.indexBytes, gl.Ptr(desc.Indices), usage)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if m.hasIndex {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}

	d.meshes[m] = struct{}{}
	return m, nil
}

func (d *Device) UpdateMesh(mh core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := mh.(*mesh)
	if !ok || m == nil {
		return fmt.Errorf("gl: update of foreign mesh %T", mh)
	}
	if !m.dynamic {
		return fmt.Errorf("gl: update of static mesh")
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if n := len(vertices) * 4; n > m.vertexBytes {
		m.vertexBytes = n
		gl.BufferData(gl.ARRAY_BUFFER, n, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	} else if n > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n, gl.Ptr(vertices))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if indices != nil {
		if !m.hasIndex {
			return fmt.Errorf("gl: indices for non-indexed mesh")
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		if n := len(indices) * 4; n > m.indexBytes {
			m.indexBytes = n
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, n, gl.Ptr(indices), gl.DYNAMIC_DRAW)
		} else if n > 0 {
			gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, n, gl.Ptr(indices))
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}
	return nil
}

func (d *Device) Draw(cmd core.DrawCmd) error {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok || p == nil {
		return fmt.Errorf("gl: draw with foreign pipeline %T", cmd.Pipe)
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok || m == nil {
		return fmt.Errorf("gl: draw with foreign mesh %T", cmd.Mesh)
	}

	gl.UseProgram(p.program)

	if p.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	if p.depth {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	for name, value := range cmd.Uniforms {
		if err := p.setUniform(name, value); err != nil {
			return err
		}
	}

	unit := int32(0)
	for name, th := range cmd.Samplers {
		t, ok := th.(*texture)
		if !ok || t == nil {
			return fmt.Errorf("gl: sampler %q bound to foreign texture %T", name, th)
		}
		gl.ActiveTexture(uint32(gl.TEXTURE0 + unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		if loc := p.uniform(name); loc >= 0 {
			gl.Uniform1i(loc, unit)
		}
		unit++
	}

	gl.BindVertexArray(m.vao)
	switch {
	case m.hasIndex:
		count := int32(cmd.IndexCount)
		if count <= 0 {
			count = int32(m.indexBytes / 4)
		}
		gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
	default:
		gl.DrawArrays(gl.TRIANGLES, 0, int32(cmd.VertexCount))
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	return nil
}

func (d *Device) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) Shutdown() {
	for m := range d.meshes {
		d.deleteMesh(m)
	}
	for t := range d.textures {
		gl.DeleteTextures(1, &t.id)
	}
	for p := range d.pipelines {
		gl.DeleteProgram(p.program)
	}
	d.meshes = make(map[*mesh]struct{})
	d.textures = make(map[*texture]struct{})
	d.pipelines = make(map[*pipeline]struct{})
}

func (d *Device) deleteMesh(m *mesh) {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	delete(d.meshes, m)
}

// uniform resolves and caches a uniform location. Missing uniforms
// resolve to -1, which GL silently ignores on assignment.
func (p *pipeline) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (p *pipeline) setUniform(name string, value any) error {
	loc := p.uniform(name)
	if loc < 0 {
		return nil
	}
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case int:
		gl.Uniform1i(loc, int32(v))
	case int32:
		gl.Uniform1i(loc, v)
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case [3]float32:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case [4]float32:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		return fmt.Errorf("gl: unsupported uniform %q type %T", name, value)
	}
	return nil
}

func filterMode(s string) int32 {
	if s == "nearest" {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrapMode(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func checkPixels(format core.TextureFormat, w, h int, pixels []byte) error {
	bpp := 4
	if format == core.TextureAlpha8 {
		bpp = 1
	}
	if len(pixels) < w*h*bpp {
		return fmt.Errorf("gl: pixel buffer %d bytes, need %d", len(pixels), w*h*bpp)
	}
	return nil
}

func ptrOrNil(v []float32) unsafe.Pointer {
	if len(v) == 0 {
		return nil
	}
	return gl.Ptr(v)
}

func nullTerminated(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
