package network

// FieldOp selects what an update does to one optional field.
type FieldOp int

const (
	Keep FieldOp = iota
	Clear
	Set
)

// Field is a per-field update instruction. The zero value leaves the field
// unchanged.
type Field[T any] struct {
	Op    FieldOp
	Value T
}

func KeepField[T any]() Field[T] {
	return Field[T]{}
}

func ClearField[T any]() Field[T] {
	return Field[T]{Op: Clear}
}

func SetField[T any](v T) Field[T] {
	return Field[T]{Op: Set, Value: v}
}

// apply returns the field's new value given the current one.
func (f Field[T]) apply(current T) T {
	switch f.Op {
	case Clear:
		var zero T
		return zero
	case Set:
		return f.Value
	default:
		return current
	}
}
