package ot

// Option holds a value which may be absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Unwrap returns the value held and whether it is present.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}
