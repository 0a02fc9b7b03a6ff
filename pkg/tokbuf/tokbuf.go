// Package tokbuf provides a one-token lookahead buffer over a lazy token
// source, shared by the assembler and expression front ends.
package tokbuf

import "fmt"

// Token is anything carrying a comparable kind tag.
type Token[K comparable] interface {
	Kind() K
}

// Source yields tokens until it returns false.
type Source[T any] interface {
	Next() (T, bool)
}

// MismatchError is returned by MustMatch when the next token has the wrong
// kind or the source is exhausted.
type MismatchError[K comparable] struct {
	Want  K
	Got   K
	AtEnd bool
}

func (e *MismatchError[K]) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("expected %v, got end of input", e.Want)
	}
	return fmt.Sprintf("expected %v, got %v", e.Want, e.Got)
}

// Buffer caches at most one pending token.
type Buffer[K comparable, T Token[K]] struct {
	src     Source[T]
	pending []T
}

func New[K comparable, T Token[K]](src Source[T]) *Buffer[K, T] {
	return &Buffer[K, T]{src: src}
}

// Peek returns the next unconsumed token, fetching it if needed.
func (b *Buffer[K, T]) Peek() (T, bool) {
	if len(b.pending) == 0 {
		tok, ok := b.src.Next()
		if !ok {
			var zero T
			return zero, false
		}
		b.pending = append(b.pending, tok)
	}
	return b.pending[0], true
}

// MayMatch consumes and returns the next token only if its kind is kind.
func (b *Buffer[K, T]) MayMatch(kind K) (T, bool) {
	tok, ok := b.Peek()
	if !ok || tok.Kind() != kind {
		var zero T
		return zero, false
	}
	b.pending = b.pending[1:]
	return tok, true
}

// MustMatch is MayMatch that fails with a *MismatchError.
func (b *Buffer[K, T]) MustMatch(kind K) (T, error) {
	if tok, ok := b.MayMatch(kind); ok {
		return tok, nil
	}
	tok, ok := b.Peek()
	if !ok {
		return tok, &MismatchError[K]{Want: kind, AtEnd: true}
	}
	return tok, &MismatchError[K]{Want: kind, Got: tok.Kind()}
}

// SkipToNextLine discards tokens up to and including the first one whose
// kind is in terminators. Used only for error recovery.
func (b *Buffer[K, T]) SkipToNextLine(terminators ...K) {
	for {
		tok, ok := b.Peek()
		if !ok {
			return
		}
		b.pending = b.pending[1:]
		for _, k := range terminators {
			if tok.Kind() == k {
				return
			}
		}
	}
}
