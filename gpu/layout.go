// SPDX-License-Identifier: Unlicense OR MIT

package gpu

// VertexStep controls how often a vertex buffer slot advances. The zero
// value advances once per vertex.
type VertexStep int

// StepPerVertex advances a slot once per vertex.
const StepPerVertex VertexStep = 0

// StepPerInstance advances a slot once every rate instances.
func StepPerInstance(rate int) VertexStep {
	return VertexStep(rate)
}

// Divisor returns the attribute divisor of the step.
func (s VertexStep) Divisor() int {
	return int(s)
}

// BufferLayout describes one vertex buffer slot of a pipeline. A zero
// Stride is replaced by the packed size of the slot's attributes.
type BufferLayout struct {
	Stride int
	Step   VertexStep
}

// VertexAttribute names a shader input and where its data comes from.
type VertexAttribute struct {
	Name        string
	Format      VertexFormat
	BufferIndex int
}

// AttributeLayout is the computed placement of one attribute.
type AttributeLayout struct {
	Name    string
	Format  VertexFormat
	Offset  int
	Stride  int
	Divisor int
}

// ComputeLayout places attrs in the buffer slots described by buffers.
// The result holds, per slot, the slot's attributes in declaration order.
//
// Offsets are packed in declaration order with no padding. An explicit
// stride is kept as given even when smaller than the packed size.
func ComputeLayout(buffers []BufferLayout, attrs []VertexAttribute) ([][]AttributeLayout, error) {
	for i, b := range buffers {
		if b.Stride < 0 {
			return nil, precondition("buffer %d: negative stride %d", i, b.Stride)
		}
		if b.Step < 0 {
			return nil, precondition("buffer %d: negative step rate %d", i, b.Step)
		}
	}
	strides := make([]int, len(buffers))
	for _, a := range attrs {
		if a.BufferIndex < 0 || a.BufferIndex >= len(buffers) {
			return nil, precondition("attribute %q: buffer index %d out of range [0, %d)", a.Name, a.BufferIndex, len(buffers))
		}
		if !a.Format.valid() {
			return nil, precondition("attribute %q: invalid format %d", a.Name, a.Format)
		}
		strides[a.BufferIndex] += a.Format.Size()
	}
	for i, b := range buffers {
		if b.Stride != 0 {
			strides[i] = b.Stride
		}
	}
	offsets := make([]int, len(buffers))
	slots := make([][]AttributeLayout, len(buffers))
	for _, a := range attrs {
		i := a.BufferIndex
		slots[i] = append(slots[i], AttributeLayout{
			Name:    a.Name,
			Format:  a.Format,
			Offset:  offsets[i],
			Stride:  strides[i],
			Divisor: buffers[i].Step.Divisor(),
		})
		offsets[i] += a.Format.Size()
	}
	return slots, nil
}
