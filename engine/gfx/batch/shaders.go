package batch

// The UI pipeline draws every widget of a frame in one call. Vertices
// arrive pre-transformed in NDC; a negative UV marks untextured
// geometry, anything else samples glyph coverage from the atlas.

const uiVertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec2 aUV;
layout(location=2) in vec4 aColor;
out vec2 vUV;
out vec4 vColor;
void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const uiFragmentSource = `
#version 330 core
in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;
uniform sampler2D uAtlas;
void main() {
    if (vUV.x < 0.0) {
        FragColor = vColor;
    } else {
        float coverage = texture(uAtlas, vUV).r;
        FragColor = vec4(vColor.rgb, vColor.a * coverage);
    }
}
`
