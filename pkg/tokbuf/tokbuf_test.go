package tokbuf

import (
	"errors"
	"testing"
)

type kind int

const (
	word kind = iota
	num
	eol
)

type tok struct {
	k    kind
	text string
}

func (t tok) Kind() kind { return t.k }

type sliceSource struct {
	toks  []tok
	pulls int
}

func (s *sliceSource) Next() (tok, bool) {
	if len(s.toks) == 0 {
		return tok{}, false
	}
	s.pulls++
	t := s.toks[0]
	s.toks = s.toks[1:]
	return t, true
}

func TestPeekCachesOneToken(t *testing.T) {
	src := &sliceSource{toks: []tok{{word, "a"}, {num, "1"}}}
	b := New[kind, tok](src)

	for i := 0; i < 3; i++ {
		got, ok := b.Peek()
		if !ok || got.text != "a" {
			t.Fatalf("Peek() = %v, %v; want a", got, ok)
		}
	}
	if src.pulls != 1 {
		t.Errorf("source pulled %d times; want 1", src.pulls)
	}
}

func TestMayMatch(t *testing.T) {
	b := New[kind, tok](&sliceSource{toks: []tok{{word, "a"}, {num, "1"}}})

	if _, ok := b.MayMatch(num); ok {
		t.Fatal("MayMatch(num) matched a word")
	}
	if got, ok := b.MayMatch(word); !ok || got.text != "a" {
		t.Fatalf("MayMatch(word) = %v, %v", got, ok)
	}
	if got, ok := b.MayMatch(num); !ok || got.text != "1" {
		t.Fatalf("MayMatch(num) = %v, %v", got, ok)
	}
	if _, ok := b.Peek(); ok {
		t.Error("buffer should be exhausted")
	}
}

func TestMustMatch(t *testing.T) {
	b := New[kind, tok](&sliceSource{toks: []tok{{word, "a"}}})

	_, err := b.MustMatch(num)
	var mm *MismatchError[kind]
	if !errors.As(err, &mm) || mm.Want != num || mm.Got != word || mm.AtEnd {
		t.Fatalf("MustMatch(num) error = %v", err)
	}
	if _, err := b.MustMatch(word); err != nil {
		t.Fatalf("MustMatch(word) error = %v", err)
	}
	_, err = b.MustMatch(eol)
	if !errors.As(err, &mm) || !mm.AtEnd {
		t.Fatalf("MustMatch at end error = %v", err)
	}
}

func TestSkipToNextLine(t *testing.T) {
	b := New[kind, tok](&sliceSource{toks: []tok{
		{word, "a"}, {num, "1"}, {eol, ""}, {word, "b"},
	}})
	b.SkipToNextLine(eol)
	if got, ok := b.Peek(); !ok || got.text != "b" {
		t.Fatalf("after skip Peek() = %v, %v; want b", got, ok)
	}

	b.SkipToNextLine(eol)
	if _, ok := b.Peek(); ok {
		t.Error("skip without terminator should drain the source")
	}
}
