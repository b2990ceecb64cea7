package opengl

// vertSrc passes world-space position and the tangent frame to the
// fragment stage. Attribute locations follow core.Vertex field order.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;
layout(location = 3) in vec4 aColor;
layout(location = 4) in vec3 aTangent;
layout(location = 5) in vec3 aBitangent;

uniform mat4 mvp;
uniform mat4 model;

out vec3 vNormal;
out vec2 vUV;
out vec3 vWorldPos;
out vec3 vTangent;
out vec3 vBitangent;

void main() {
    mat3 basis = mat3(model);
    vWorldPos  = (model * vec4(aPosition, 1.0)).xyz;
    vNormal    = basis * aNormal;
    vTangent   = basis * aTangent;
    vBitangent = basis * aBitangent;
    vUV        = aUV;
    gl_Position = mvp * vec4(aPosition, 1.0);
}
` + "\x00"

// fragSrc: metallic-roughness standard surface lit by one point light with
// physical distance falloff and a cube shadow, plus a hemisphere light.
// Texture slots: 0 color, 1 normal, 2 roughness (G), 3 metalness (B),
// 4 bump (R).
const fragSrc = `
#version 410 core
in vec3 vNormal;
in vec2 vUV;
in vec3 vWorldPos;
in vec3 vTangent;
in vec3 vBitangent;

out vec4 fragColor;

uniform vec3 cameraPos;

uniform bool  hasPointLight;
uniform vec3  pointLightPos;
uniform vec3  pointLightRadiance;
uniform float pointLightDistance;
uniform float pointLightDecay;

uniform vec3 hemiSky;
uniform vec3 hemiGround;

uniform bool        shadowsOn;
uniform bool        receiveShadow;
uniform samplerCube shadowCube;
uniform float       shadowFar;

uniform vec3  matColor;
uniform float matRoughness;
uniform float matMetalness;
uniform vec3  matEmissive;
uniform float bumpScale;

uniform sampler2D maps[5];
uniform bool      hasMap[5];
uniform vec2      mapRepeat[5];

const float PI = 3.141592653589793;

float ggxDistribution(float NdH, float alpha) {
    float a2 = alpha * alpha;
    float d  = NdH * NdH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

// Smith-Schlick visibility with the direct-lighting k = (r+1)^2 / 8.
float smithG(float NdV, float NdL, float roughness) {
    float k = (roughness + 1.0) * (roughness + 1.0) * 0.125;
    vec2 g = vec2(NdV, NdL) / (vec2(NdV, NdL) * (1.0 - k) + k);
    return g.x * g.y;
}

vec3 fresnelSchlick(float VdH, vec3 F0) {
    float f = pow(1.0 - clamp(VdH, 0.0, 1.0), 5.0);
    return F0 + (1.0 - F0) * f;
}

// Karis' analytic fit of the split-sum environment BRDF.
vec3 envBRDFApprox(vec3 F0, float roughness, float NdV) {
    const vec4 c0 = vec4(-1.0, -0.0275, -0.572, 0.022);
    const vec4 c1 = vec4(1.0, 0.0425, 1.04, -0.04);
    vec4 r = roughness * c0 + c1;
    float a004 = min(r.x * r.x, exp2(-9.28 * NdV)) * r.x + r.y;
    vec2 AB = vec2(-1.04, 1.04) * a004 + r.zw;
    return F0 * AB.x + AB.y;
}

vec3 evalPBR(vec3 N, vec3 V, vec3 L, vec3 rad, vec3 diffuse, float roughness, vec3 F0) {
    float NdL = dot(N, L);
    if (NdL <= 0.0) return vec3(0.0);

    vec3  H   = normalize(V + L);
    float NdV = max(dot(N, V), 1e-4);
    float NdH = max(dot(N, H), 0.0);

    vec3 spec = ggxDistribution(NdH, roughness * roughness)
              * smithG(NdV, NdL, roughness)
              * fresnelSchlick(dot(H, V), F0)
              / max(4.0 * NdV * NdL, 1e-3);
    return (diffuse / PI + spec) * rad * NdL;
}

float distanceAttenuation(float d, float cutoff, float decay) {
    float att = 1.0 / max(pow(d, decay), 0.01);
    if (cutoff > 0.0) {
        float x = clamp(1.0 - pow(d / cutoff, 4.0), 0.0, 1.0);
        att *= x * x;
    }
    return att;
}

const vec3 pcfOffsets[8] = vec3[8](
    vec3( 1,  1,  1), vec3( 1, -1,  1), vec3(-1, -1,  1), vec3(-1,  1,  1),
    vec3( 1,  1, -1), vec3( 1, -1, -1), vec3(-1, -1, -1), vec3(-1,  1, -1)
);

// 1 = lit, 0 = fully occluded.
float pointShadow(vec3 lightToFrag) {
    float current = length(lightToFrag);
    float bias    = 0.02;
    float radius  = 0.002 * current;
    float lit = 0.0;
    for (int i = 0; i < 8; i++) {
        float closest = texture(shadowCube, lightToFrag + pcfOffsets[i] * radius).r * shadowFar;
        lit += current - bias > closest ? 0.0 : 1.0;
    }
    return lit / 8.0;
}

vec2 dHdxy(vec2 uv) {
    vec2 dSTdx = dFdx(uv);
    vec2 dSTdy = dFdy(uv);
    float Hll = bumpScale * texture(maps[4], uv).r;
    float dBx = bumpScale * texture(maps[4], uv + dSTdx).r - Hll;
    float dBy = bumpScale * texture(maps[4], uv + dSTdy).r - Hll;
    return vec2(dBx, dBy);
}

vec3 perturbNormal(vec3 surfPos, vec3 N, vec2 dH) {
    vec3 sigmaX = dFdx(surfPos);
    vec3 sigmaY = dFdy(surfPos);
    vec3 R1 = cross(sigmaY, N);
    vec3 R2 = cross(N, sigmaX);
    float det = dot(sigmaX, R1);
    vec3 grad = sign(det) * (dH.x * R1 + dH.y * R2);
    return normalize(abs(det) * N - grad);
}

void main() {
    vec3 albedo = matColor;
    if (hasMap[0]) albedo *= texture(maps[0], vUV * mapRepeat[0]).rgb;

    float roughness = matRoughness;
    if (hasMap[2]) roughness *= texture(maps[2], vUV * mapRepeat[2]).g;
    roughness = clamp(roughness, 0.0525, 1.0);

    float metalness = matMetalness;
    if (hasMap[3]) metalness *= texture(maps[3], vUV * mapRepeat[3]).b;
    metalness = clamp(metalness, 0.0, 1.0);

    vec3 N = normalize(vNormal);
    if (hasMap[1]) {
        vec3 T = normalize(vTangent - N * dot(N, vTangent));
        vec3 B = cross(N, T);
        if (dot(B, vBitangent) < 0.0) B = -B;
        vec3 tn = texture(maps[1], vUV * mapRepeat[1]).xyz * 2.0 - 1.0;
        N = normalize(mat3(T, B, N) * tn);
    }
    if (hasMap[4]) {
        N = perturbNormal(vWorldPos, N, dHdxy(vUV * mapRepeat[4]));
    }

    vec3  V   = normalize(cameraPos - vWorldPos);
    float NdV = max(dot(N, V), 1e-4);
    vec3  diffuse = albedo * (1.0 - metalness);
    vec3  F0      = mix(vec3(0.04), albedo, metalness);

    vec3 color = vec3(0.0);

    if (hasPointLight) {
        vec3  toLight = pointLightPos - vWorldPos;
        float d = length(toLight);
        vec3  L = toLight / max(d, 1e-4);
        vec3  rad = pointLightRadiance * distanceAttenuation(d, pointLightDistance, pointLightDecay);
        float visibility = 1.0;
        if (shadowsOn && receiveShadow) visibility = pointShadow(-toLight);
        color += visibility * evalPBR(N, V, L, rad, diffuse, roughness, F0);
    }

    vec3 irradiance = mix(hemiGround, hemiSky, 0.5 * N.y + 0.5);
    color += irradiance * diffuse / PI;
    color += irradiance / PI * envBRDFApprox(F0, roughness, NdV);

    fragColor = vec4(color + matEmissive, 1.0);
}
` + "\x00"

// depthVertSrc renders one cube shadow face; worldPos feeds the linear
// distance written by depthFragSrc.
const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 aPosition;
uniform mat4 lightMVP;
uniform mat4 model;
out vec3 worldPos;
void main() {
    worldPos    = (model * vec4(aPosition, 1.0)).xyz;
    gl_Position = lightMVP * vec4(aPosition, 1.0);
}
` + "\x00"

const depthFragSrc = `
#version 410 core
in vec3 worldPos;
uniform vec3  lightPos;
uniform float far;
void main() {
    gl_FragDepth = length(worldPos - lightPos) / far;
}
` + "\x00"

// textVertSrc draws a screen rectangle as a 4-vertex strip; rect holds
// left, top, right, bottom in NDC.
const textVertSrc = `
#version 410 core
uniform vec4 rect;
out vec2 vUV;
void main() {
    vec2 corner = vec2(float(gl_VertexID & 1), float(gl_VertexID >> 1));
    gl_Position = vec4(mix(rect.x, rect.z, corner.x), mix(rect.y, rect.w, corner.y), 0.0, 1.0);
    vUV      = corner;
}
` + "\x00"

const textFragSrc = `
#version 410 core
in  vec2 vUV;
out vec4 fragColor;
uniform sampler2D glyphs;
void main() {
    fragColor = texture(glyphs, vUV);
}
` + "\x00"
