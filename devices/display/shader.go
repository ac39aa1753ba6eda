package display

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}

`
const fragment = `
#version 420

layout (binding = 0) uniform sampler2D bitmap;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Lit pixels are stored in the red channel as 0x00 or 0xff.
    float on = step(0.5, texture(bitmap, fragTexCoord).r);

    vec4 background = vec4(0, 0, 0, 1);
    vec4 foreground = vec4(1.0, 0.65, 0, 1);

    outputColor = mix(background, foreground, on);
}
`
