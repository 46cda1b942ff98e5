package shape

import (
	"errors"
	"fmt"
	"slices"
)

// ErrShapeNotFound is returned when a shape id does not resolve.
var ErrShapeNotFound = errors.New("shape: shape not found")

// NotFoundError reports a missing shape.
type NotFoundError struct {
	ID ShapeID
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("shape: shape %s not found", e.ID)
}

// Is reports whether the target matches ErrShapeNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrShapeNotFound
}

// Model is an immutable set of shapes.
type Model struct {
	shapes map[ShapeID]*Shape
	ids    []ShapeID // sorted
}

// NewModel builds a model from the given shapes.
// It returns an error for invalid or duplicated shape ids.
func NewModel(shapes ...*Shape) (*Model, error) {
	m := &Model{shapes: make(map[ShapeID]*Shape, len(shapes))}
	for _, s := range shapes {
		if s == nil {
			continue
		}
		if _, err := ParseShapeID(string(s.ID)); err != nil {
			return nil, err
		}
		if _, ok := m.shapes[s.ID]; ok {
			return nil, fmt.Errorf("shape: duplicate shape id %s", s.ID)
		}
		m.shapes[s.ID] = s
		m.ids = append(m.ids, s.ID)
	}
	slices.Sort(m.ids)
	return m, nil
}

// MustNewModel is like NewModel but panics on error.
func MustNewModel(shapes ...*Shape) *Model {
	m, err := NewModel(shapes...)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of shapes in the model.
func (m *Model) Len() int { return len(m.ids) }

// Shape returns the shape with the given id.
func (m *Model) Shape(id ShapeID) (*Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

// Expect returns the shape with the given id or a NotFoundError.
func (m *Model) Expect(id ShapeID) (*Shape, error) {
	if s, ok := m.shapes[id]; ok {
		return s, nil
	}
	return nil, &NotFoundError{ID: id}
}

// Shapes returns every shape ordered by id.
func (m *Model) Shapes() []*Shape {
	out := make([]*Shape, len(m.ids))
	for i, id := range m.ids {
		out[i] = m.shapes[id]
	}
	return out
}

// ShapesOf returns the shapes of the given kinds ordered by id.
func (m *Model) ShapesOf(kinds ...Kind) []*Shape {
	var out []*Shape
	for _, id := range m.ids {
		if s := m.shapes[id]; slices.Contains(kinds, s.Kind) {
			out = append(out, s)
		}
	}
	return out
}

// Services returns the service shapes ordered by id.
func (m *Model) Services() []*Shape {
	return m.ShapesOf(KindService)
}

// Operations returns the operations bound to a service, in declaration order.
func (m *Model) Operations(service *Shape) ([]*Shape, error) {
	if service.Kind != KindService {
		return nil, fmt.Errorf("shape: %s is a %s, not a service", service.ID, service.Kind)
	}
	ops := make([]*Shape, 0, len(service.Operations))
	for _, id := range service.Operations {
		op, err := m.Expect(id)
		if err != nil {
			return nil, err
		}
		if op.Kind != KindOperation {
			return nil, fmt.Errorf("shape: service %s binds %s which is a %s", service.ID, id, op.Kind)
		}
		ops = append(ops, op)
	}
	return ops, nil
}
