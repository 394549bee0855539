package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity overwrites m with the 4x4 identity matrix, column-major.
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes reinterprets data as a byte slice without copying, for
// uploading arbitrary typed CPU data straight into a GPU buffer. The result
// aliases data's backing array, so mutating one through the other is a race
// once either escapes to another goroutine.
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	elemSize := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(elemSize)*len(data))
}

// StructToBytes reinterprets v's pointee as a byte slice of its in-memory
// size, the struct equivalent of SliceToBytes for uniform-buffer payloads.
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// Mul4 sets out = a * b for two column-major 4x4 matrices. out may not
// alias a or b.
func Mul4(out, a, b []float32) {
	var product [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			product[col*4+row] = sum
		}
	}
	copy(out, product[:])
}

// Perspective writes a symmetric perspective projection matrix into out,
// targeting WebGPU's [0, 1] clip-space depth range. Callers are expected to
// have already validated fov/aspect/near/far through the InvalidInput
// contract their own constructor enforces; this function never checks them.
func Perspective(out []float32, fovY, aspect, near, far float32) {
	focalLength := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = focalLength / aspect
	out[5] = focalLength
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Orthographic writes a symmetric orthographic projection matrix into out,
// matching Perspective's [0, 1] clip-space depth convention.
func Orthographic(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)
	out[0] = 2.0 / (right - left)
	out[5] = 2.0 / (top - bottom)
	out[10] = -1.0 / (far - near)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = -near / (far - near)
}

// BuildModelMatrix composes a translate * rotate(Y then X then Z) * scale
// model matrix into out from Euler angles in radians.
func BuildModelMatrix(out []float32, posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) {
	cx, sx := math32.Cos(rotX), math32.Sin(rotX)
	cy, sy := math32.Cos(rotY), math32.Sin(rotY)
	cz, sz := math32.Cos(rotZ), math32.Sin(rotZ)

	out[0] = (cy*cz + sy*sx*sz) * scaleX
	out[1] = (cx * sz) * scaleX
	out[2] = (-sy*cz + cy*sx*sz) * scaleX
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scaleY
	out[5] = (cx * cz) * scaleY
	out[6] = (sy*sz + cy*sx*cz) * scaleY
	out[7] = 0

	out[8] = (sy * cx) * scaleZ
	out[9] = (-sx) * scaleZ
	out[10] = (cy * cx) * scaleZ
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1
}

// Invert4 inverts the column-major 4x4 matrix m into out via the adjugate
// (cofactor-transpose) method, scaled by 1/det. Returns false without
// touching out if m is singular.
func Invert4(out, m []float32) bool {
	// Determinants of every 2x2 minor of columns {0,1} (a*) and of columns
	// {2,3} (b*), each named by the pair of rows it spans.
	a01 := m[0]*m[5] - m[4]*m[1]
	a02 := m[0]*m[6] - m[4]*m[2]
	a03 := m[0]*m[7] - m[4]*m[3]
	a12 := m[1]*m[6] - m[5]*m[2]
	a13 := m[1]*m[7] - m[5]*m[3]
	a23 := m[2]*m[7] - m[6]*m[3]

	b23 := m[10]*m[15] - m[14]*m[11]
	b13 := m[9]*m[15] - m[13]*m[11]
	b12 := m[9]*m[14] - m[13]*m[10]
	b03 := m[8]*m[15] - m[12]*m[11]
	b02 := m[8]*m[14] - m[12]*m[10]
	b01 := m[8]*m[13] - m[12]*m[9]

	det := a01*b23 - a02*b13 + a03*b12 + a12*b03 - a13*b02 + a23*b01
	if det == 0 {
		return false
	}
	invDet := 1.0 / det

	out[0] = (m[5]*b23 - m[6]*b13 + m[7]*b12) * invDet
	out[1] = (-m[1]*b23 + m[2]*b13 - m[3]*b12) * invDet
	out[2] = (m[13]*a23 - m[14]*a13 + m[15]*a12) * invDet
	out[3] = (-m[9]*a23 + m[10]*a13 - m[11]*a12) * invDet

	out[4] = (-m[4]*b23 + m[6]*b03 - m[7]*b02) * invDet
	out[5] = (m[0]*b23 - m[2]*b03 + m[3]*b02) * invDet
	out[6] = (-m[12]*a23 + m[14]*a03 - m[15]*a02) * invDet
	out[7] = (m[8]*a23 - m[10]*a03 + m[11]*a02) * invDet

	out[8] = (m[4]*b13 - m[5]*b03 + m[7]*b01) * invDet
	out[9] = (-m[0]*b13 + m[1]*b03 - m[3]*b01) * invDet
	out[10] = (m[12]*a13 - m[13]*a03 + m[15]*a01) * invDet
	out[11] = (-m[8]*a13 + m[9]*a03 - m[11]*a01) * invDet

	out[12] = (-m[4]*b12 + m[5]*b02 - m[6]*b01) * invDet
	out[13] = (m[0]*b12 - m[1]*b02 + m[2]*b01) * invDet
	out[14] = (-m[12]*a12 + m[13]*a02 - m[14]*a01) * invDet
	out[15] = (m[8]*a12 - m[9]*a02 + m[10]*a01) * invDet

	return true
}

// LookAt writes a view matrix into out that places the camera at eye,
// oriented toward center, with up defining the camera's roll.
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	forwardX := eyeX - centerX
	forwardY := eyeY - centerY
	forwardZ := eyeZ - centerZ
	forwardX, forwardY, forwardZ = normalizeOrUnit(forwardX, forwardY, forwardZ)

	rightX := upY*forwardZ - upZ*forwardY
	rightY := upZ*forwardX - upX*forwardZ
	rightZ := upX*forwardY - upY*forwardX
	rightX, rightY, rightZ = normalizeOrUnit(rightX, rightY, rightZ)

	camUpX := forwardY*rightZ - forwardZ*rightY
	camUpY := forwardZ*rightX - forwardX*rightZ
	camUpZ := forwardX*rightY - forwardY*rightX

	out[0], out[4], out[8], out[12] = rightX, rightY, rightZ, -(rightX*eyeX + rightY*eyeY + rightZ*eyeZ)
	out[1], out[5], out[9], out[13] = camUpX, camUpY, camUpZ, -(camUpX*eyeX + camUpY*eyeY + camUpZ*eyeZ)
	out[2], out[6], out[10], out[14] = forwardX, forwardY, forwardZ, -(forwardX*eyeX + forwardY*eyeY + forwardZ*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// normalizeOrUnit normalizes (x,y,z), falling back to treating its squared
// length as 1 when it is exactly zero, so a degenerate axis (e.g. eye ==
// center) never divides by zero.
func normalizeOrUnit(x, y, z float32) (float32, float32, float32) {
	lengthSquared := x*x + y*y + z*z
	if lengthSquared == 0 {
		lengthSquared = 1
	}
	invLen := 1.0 / math32.Sqrt(lengthSquared)
	return x * invLen, y * invLen, z * invLen
}
