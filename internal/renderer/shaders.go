package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

// Compile builds the program once. Compile and link failures are logged by
// GenShader/GenShaderProgram and reported here.
func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}
	vertex, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fragment, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return err
	}
	program, err := GenShaderProgram(vertex, fragment)
	if err != nil {
		return err
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	return nil
}

func (shader *Shader) IsValid() bool {
	return shader.vertexSource != "" && shader.fragmentSource != ""
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value)
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetBool(name string, value bool) {
	shader.uniforms.SetBool(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

// lightUniform names one field of lights[i] in the default shader.
func lightUniform(i int, field string) string {
	return fmt.Sprintf("lights[%d].%s", i, field)
}

var vertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(model))) * inNormal;
    fragTexCoord = inTexCoord;
    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
` + "\x00"

var fragmentShaderSource = `#version 330 core
#define MAX_LIGHTS 4
#define PI 3.14159265359

in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

struct Light {
    vec3 position;
    vec3 direction;   // direction light travels, directional lights only
    vec3 color;
    float intensity;
    float decay;
    int isDirectional;
};

uniform sampler2D textureSampler;
uniform Light lights[MAX_LIGHTS];
uniform int lightCount;
uniform vec3 viewPos;

uniform vec3 diffuseColor;
uniform float metallic;
uniform float roughness;
uniform float reflectivity;
uniform float clearcoat;
uniform float clearcoatRoughness;
uniform float alpha;
uniform float exposure;
uniform bool unlit;

out vec4 FragColor;

vec3 toLinear(vec3 c) { return pow(c, vec3(2.2)); }

float distributionGGX(float NdotH, float r) {
    float a = r * r;
    float a2 = a * a;
    float d = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / max(PI * d * d, 1e-7);
}

float visibilitySmith(float NdotL, float NdotV, float r) {
    float a = r * r;
    float gv = NdotL * sqrt(NdotV * NdotV * (1.0 - a * a) + a * a);
    float gl = NdotV * sqrt(NdotL * NdotL * (1.0 - a * a) + a * a);
    return 0.5 / max(gv + gl, 1e-7);
}

vec3 fresnelSchlick(float VdotH, vec3 f0) {
    return f0 + (1.0 - f0) * pow(1.0 - VdotH, 5.0);
}

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);
    vec3 base = toLinear(diffuseColor) * toLinear(texColor.rgb);

    if (unlit) {
        FragColor = vec4(pow(base * exposure, vec3(1.0 / 2.2)), alpha * texColor.a);
        return;
    }

    vec3 N = normalize(Normal);
    vec3 V = normalize(viewPos - FragPos);
    float NdotV = max(dot(N, V), 1e-4);

    float r = clamp(roughness, 0.0525, 1.0);
    float cr = clamp(clearcoatRoughness, 0.0525, 1.0);
    vec3 dielectricF0 = vec3(pow(reflectivity / 2.5, 2.0));
    vec3 f0 = mix(dielectricF0, base, metallic);
    vec3 albedo = base * (1.0 - metallic);

    vec3 color = vec3(0.0);
    for (int i = 0; i < lightCount && i < MAX_LIGHTS; i++) {
        vec3 L;
        vec3 radiance = lights[i].color * lights[i].intensity;
        if (lights[i].isDirectional == 1) {
            L = normalize(-lights[i].direction);
        } else {
            vec3 toLight = lights[i].position - FragPos;
            float dist = length(toLight);
            L = toLight / max(dist, 1e-4);
            radiance /= max(pow(dist, lights[i].decay), 0.01);
        }

        float NdotL = max(dot(N, L), 0.0);
        if (NdotL <= 0.0) {
            continue;
        }
        vec3 H = normalize(L + V);
        float NdotH = max(dot(N, H), 0.0);
        float VdotH = max(dot(V, H), 0.0);

        vec3 F = fresnelSchlick(VdotH, f0);
        vec3 specular = F * distributionGGX(NdotH, r) * visibilitySmith(NdotL, NdotV, r);
        vec3 diffuse = albedo / PI;
        vec3 lit = (diffuse + specular) * radiance * NdotL;

        if (clearcoat > 0.0) {
            vec3 Fc = fresnelSchlick(VdotH, vec3(0.04)) * clearcoat;
            vec3 coat = Fc * distributionGGX(NdotH, cr) * visibilitySmith(NdotL, NdotV, cr);
            lit = lit * (1.0 - Fc) + coat * radiance * NdotL;
        }
        color += lit;
    }

    color *= exposure;
    FragColor = vec4(pow(color, vec3(1.0 / 2.2)), alpha * texColor.a);
}
` + "\x00"

func InitShader() Shader {
	return Shader{
		vertexSource:   vertexShaderSource,
		fragmentSource: fragmentShaderSource,
	}
}
