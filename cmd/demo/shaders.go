package main

// solidVertexShaderSource transforms an incoming local-space position by the
// bound model and projection matrices (bind group 0, bindings 0 and 1) and
// passes the local position through as a colour varying, so shape silhouettes
// are visible without needing a normal buffer bound at any vertex slot.
const solidVertexShaderSource = `
struct Uniforms {
	projection: mat4x4<f32>,
	model: mat4x4<f32>,
}
@group(0) @binding(0) var<uniform> projection: mat4x4<f32>;
@group(0) @binding(1) var<uniform> model: mat4x4<f32>;

struct VertexOutput {
	@builtin(position) position: vec4<f32>,
	@location(0) localPos: vec3<f32>,
}

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VertexOutput {
	var out: VertexOutput;
	out.position = projection * model * vec4<f32>(position, 1.0);
	out.localPos = position;
	return out;
}
`

// solidFragmentShaderSource shades a fragment using its interpolated local
// position, remapped into the unit colour cube.
const solidFragmentShaderSource = `
@fragment
fn fs_main(@location(0) localPos: vec3<f32>) -> @location(0) vec4<f32> {
	let color = clamp(localPos * 0.5 + vec3<f32>(0.5, 0.5, 0.5), vec3<f32>(0.0), vec3<f32>(1.0));
	return vec4<f32>(color, 1.0);
}
`
