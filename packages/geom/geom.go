// Package geom holds the small value types shared by the presentation
// packages: two component vectors, sizes and axis aligned rectangles.
package geom

import "golang.org/x/exp/constraints"

type numeric interface {
	constraints.Integer | constraints.Float
}

type Vec2[T numeric] struct {
	X, Y T
}

type Size[T numeric] struct {
	Width, Height T
}

// Rect is an axis aligned rectangle given by its top left corner and size.
type Rect[T numeric] struct {
	Pos  Vec2[T]
	Size Size[T]
}

type Vec2i = Vec2[int]
type Vec2f = Vec2[float32]
type Sizei = Size[int]
type Recti = Rect[int]

func V2[T numeric](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

func (lhs Vec2[T]) Add(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs.X + rhs.X, lhs.Y + rhs.Y}
}

func (lhs Vec2[T]) Sub(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs.X - rhs.X, lhs.Y - rhs.Y}
}

func (lhs Vec2[T]) Mul(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs.X * rhs.X, lhs.Y * rhs.Y}
}

func (lhs Vec2[T]) XY() (x, y T) {
	return lhs.X, lhs.Y
}

// AsSize reinterprets the vector as a width/height pair.
func (lhs Vec2[T]) AsSize() Size[T] {
	return Size[T]{lhs.X, lhs.Y}
}

func (s Size[T]) AsVec() Vec2[T] {
	return Vec2[T]{s.Width, s.Height}
}

// Empty reports whether either dimension is zero or negative.
func (s Size[T]) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func RectFromSize[T numeric](pos Vec2[T], size Size[T]) Rect[T] {
	return Rect[T]{Pos: pos, Size: size}
}

func (r Rect[T]) Right() T {
	return r.Pos.X + r.Size.Width
}

func (r Rect[T]) Bottom() T {
	return r.Pos.Y + r.Size.Height
}

// Contains reports whether other lies completely within r.
func (r Rect[T]) Contains(other Rect[T]) bool {
	return other.Pos.X >= r.Pos.X && other.Pos.Y >= r.Pos.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

func (r Rect[T]) XYWH() (T, T, T, T) {
	return r.Pos.X, r.Pos.Y, r.Size.Width, r.Size.Height
}
