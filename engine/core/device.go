package core

// Device abstracts the GPU: resource allocation and draw submission.
// Widgets never see this interface; they speak to the 2D renderer port,
// which is the only client of a Device.
type Device interface {
	// CreatePipeline compiles and links a shader pipeline.
	CreatePipeline(desc PipelineDesc) (Pipeline, error)

	// CreateTexture allocates an immutable-size texture, optionally with
	// initial pixel data.
	CreateTexture(desc TextureDesc) (Texture, error)

	// UpdateTexture replaces the full pixel contents of t. The pixel slice
	// must match the texture's dimensions and format.
	UpdateTexture(t Texture, w, h int, pixels []byte) error

	// DestroyTexture releases t. Destroying a nil texture is a no-op.
	DestroyTexture(t Texture)

	// CreateMesh allocates vertex (and optional index) buffers sized to the
	// initial data. Meshes created with Dynamic update in place via UpdateMesh.
	CreateMesh(desc MeshDesc) (Mesh, error)

	// UpdateMesh re-specifies the active region of a dynamic mesh.
	// Passing nil indices leaves the index buffer untouched.
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error

	// Draw binds the pipeline, uniforms and samplers and issues one draw of
	// cmd.VertexCount vertices (or the full index buffer when indexed).
	Draw(cmd DrawCmd) error

	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()
}

// Pipeline, Texture and Mesh are opaque handles owned by a Device.
// Backends put whatever they need behind them; callers only hold and
// return them. A nil handle is "no resource".
type (
	Pipeline any
	Texture  any
	Mesh     any
)

// PipelineDesc describes a shader pipeline. Sources are GLSL for the GL
// backend; other backends may interpret them as paths to their own bytecode.
type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	// Blend enables straight-alpha source-over blending:
	// color (SRC_ALPHA, ONE_MINUS_SRC_ALPHA), alpha (ONE, ONE_MINUS_SRC_ALPHA).
	Blend bool
}

// TextureFormat enumerates supported texel layouts.
type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	// TextureAlpha8 is a single 8-bit coverage channel, sampled as .r.
	TextureAlpha8
)

// TextureDesc describes a texture. Filter/wrap values: "nearest"/"linear",
// "clamp"/"repeat". Pixels may be nil for an uninitialized texture.
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte
	MinFilter     string
	MagFilter     string
	WrapU         string
	WrapV         string
}

// Vertex attribute types.
type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int // components, e.g. 2 for vec2
	Type     AttribType
	Offset   int // bytes from vertex start
}

// VertexLayout describes one interleaved vertex buffer.
type VertexLayout struct {
	Stride     int // bytes per vertex
	Attributes []VertexAttrib
}

// MeshDesc sizes the GPU buffers. Indices may be empty for non-indexed meshes.
type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	Dynamic  bool
}

// DrawCmd is a single draw submission.
type DrawCmd struct {
	Pipe        Pipeline
	Mesh        Mesh
	VertexCount int // vertices to draw for non-indexed meshes
	IndexCount  int // indices to draw for indexed meshes; 0 = all
	Uniforms    map[string]any
	Samplers    map[string]Texture
}
