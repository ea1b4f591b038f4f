// Package demo walks BoundedStack through its public surface with a few
// element types and prints the diagnostic text for each step.
package demo

import (
	"errors"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"io"
	"strings"
)

// customFloat stands in for a user defined numeric element.
type customFloat float64

// char prints as a character instead of its code point.
type char rune

func (c char) String() string {
	return string(c)
}

type user struct {
	Name string
	Age  uint
}

func (u user) String() string {
	return fmt.Sprintf("(%s %d)", u.Name, u.Age)
}

func ageAbove(age uint) engine.Predicate[user] {
	return func(u user) bool { return u.Age > age }
}

func nameIs(name string) engine.Predicate[user] {
	return func(u user) bool { return u.Name == name }
}

// ErrCheckFailed marks a demo expectation that did not hold.
var ErrCheckFailed = errors.New("check failed")

func check(ok bool, what string) error {
	if !ok {
		return fmt.Errorf("%w: %s", ErrCheckFailed, what)
	}
	return nil
}

// show prints a label followed by the stack's display text, which carries
// its own newline.
func show(w io.Writer, label string, s fmt.Stringer) {
	fmt.Fprintf(w, "%s: %s", label, s)
}

// topSatisfies applies p to the current top of s.
func topSatisfies[T any](s *engine.BoundedStack[T], p engine.Predicate[T], what string) error {
	top, err := s.Top()
	if err != nil {
		return err
	}
	return check(s.Satisfies(p, top), what)
}

// Scenario is one named walk through the stack's operations.
type Scenario struct {
	Name string
	run  func(w io.Writer) error
}

func (s Scenario) Run(w io.Writer) error {
	if err := s.run(w); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return nil
}

var Scenarios = []Scenario{
	{"construction", construction},
	{"emptying", emptying},
	{"sequences", sequences},
	{"traversal", traversal},
	{"predicates", predicates},
}

// Run plays every scenario against w and stops at the first failure.
func Run(w io.Writer) error {
	for _, scenario := range Scenarios {
		if err := scenario.Run(w); err != nil {
			return err
		}
	}
	return nil
}

func construction(w io.Writer) error {
	fmt.Fprintln(w, "----- Construction, assignment and comparison -----")

	s1 := engine.New[int]()
	if err := check(s1.Cap() == 0 && s1.IsEmpty(), "default stack is empty with capacity 0"); err != nil {
		return err
	}

	s2, err := engine.WithCapacity[int](5)
	if err != nil {
		return err
	}
	if err := check(s2.Cap() == 5 && s2.IsEmpty(), "stack of capacity 5 starts empty"); err != nil {
		return err
	}
	if err := s2.Fill([]int{5, 10, 15, 20, 25}); err != nil {
		return err
	}
	if err := topSatisfies(s2, engine.EqualTo(25), "top after fill is 25"); err != nil {
		return err
	}
	if err := check(s2.IsFull(), "filled stack is full"); err != nil {
		return err
	}

	ss, err := engine.WithCapacity[string](5)
	if err != nil {
		return err
	}
	for _, word := range []string{"project", "in", "go"} {
		if err := ss.Push(word); err != nil {
			return err
		}
	}
	show(w, "Stack ss (strings, push)", ss)

	s3, err := s2.Clone()
	if err != nil {
		return err
	}

	s4, err := engine.WithCapacity[customFloat](3)
	if err != nil {
		return err
	}
	if err := s4.Fill([]customFloat{5, 10, 15}); err != nil {
		return err
	}
	if err := topSatisfies(s4, engine.EqualTo(customFloat(15)), "top after fill is 15"); err != nil {
		return err
	}
	if err := check(s4.IsFull(), "filled stack is full"); err != nil {
		return err
	}

	s5, err := s4.Clone()
	if err != nil {
		return err
	}
	if err := s5.Fill([]customFloat{1, 2, 3}); err != nil {
		return err
	}

	show(w, "Stack s1 (default)", s1)
	show(w, "Stack s2 (capacity 5, fill)", s2)
	show(w, "Stack s3 (clone of s2)", s3)
	show(w, "Stack s4 (custom floats, fill)", s4)
	show(w, "Stack s5 (clone of s4, refilled)", s5)
	if err := check(!engine.Equal(s4, s5), "refilling a clone leaves the source untouched"); err != nil {
		return err
	}

	s9 := engine.New[int]()
	if err := s9.Assign(s2); err != nil {
		return err
	}
	if err := check(engine.Equal(s9, s2), "assigned stack equals its source"); err != nil {
		return err
	}
	show(w, "Stack s9 (assigned from s2)", s9)
	return nil
}

func emptying(w io.Writer) error {
	fmt.Fprintln(w, "----- Emptying -----")

	s1, err := engine.WithCapacity[char](7)
	if err != nil {
		return err
	}
	if err := s1.Fill([]char{'a', '?', '2', '#', 'B', 'T', 'S'}); err != nil {
		return err
	}
	show(w, "Stack s1 full (chars, fill)", s1)

	a, err := s1.Pop()
	if err != nil {
		return err
	}
	b, err := s1.Pop()
	if err != nil {
		return err
	}
	c, err := s1.Top()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Popped %s and %s, the top is now %s\n\n", a, b, c)

	s1.Clear()
	if err := check(s1.IsEmpty(), "cleared stack is empty"); err != nil {
		return err
	}
	show(w, "Stack s1 after clear", s1)

	s2, err := engine.FromSlice([]user{{"Mario", 25}, {"Luigi", 30}, {"Pippo", 35}})
	if err != nil {
		return err
	}
	show(w, "Stack s2 full (users, from sequence)", s2)

	if _, err := s2.Pop(); err != nil {
		return err
	}
	show(w, "Stack s2 after pop", s2)

	s2.Clear()
	if err := check(s2.IsEmpty(), "cleared stack is empty"); err != nil {
		return err
	}
	show(w, "Stack s2 after clear", s2)
	return nil
}

func sequences(w io.Writer) error {
	fmt.Fprintln(w, "----- Construction from a sequence -----")

	s1, err := engine.FromSlice([]int{5, 10, 15, 20, 25, 30, 35})
	if err != nil {
		return err
	}
	show(w, "Stack s1 full (from sequence)", s1)

	s1.Clear()
	if err := check(s1.IsEmpty(), "cleared stack is empty"); err != nil {
		return err
	}
	show(w, "Stack s1 after clear", s1)

	s2, err := engine.FromSlice([]int{9, 8, 7, 6, 5, 4, 3})
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("[ ")
	for start, end := s2.ConstBegin(), s2.ConstEnd(); !start.Equal(end); start.Advance() {
		fmt.Fprintf(&sb, "%v ", start.Get())
	}
	sb.WriteString("]")
	fmt.Fprintf(w, "Const traversal of s2 (bottom to top):\n%s\n\n", sb.String())
	return nil
}

func readOnly[T any](s *engine.BoundedStack[T]) string {
	var sb strings.Builder
	sb.WriteString("[ ")
	start, end := s.ReadOnlyBegin(), s.ReadOnlyEnd()
	for !start.Equal(end) {
		fmt.Fprintf(&sb, "%v ", start.Get())
		start.PostAdvance()
	}
	sb.WriteString("]")
	return sb.String()
}

func traversal(w io.Writer) error {
	fmt.Fprintln(w, "----- Read-only traversal -----")

	s1, err := engine.FromSlice([]int{5, 10, 15, 20, 25, 30, 35})
	if err != nil {
		return err
	}
	show(w, "Stack s1 full (ints, from sequence)", s1)
	fmt.Fprintf(w, "Read-only traversal (top to bottom):\n%s\n\n", readOnly(s1))

	s2, err := engine.FromSlice([]user{{"Mario", 20}, {"Pippo", 21}, {"Luigi", 22}})
	if err != nil {
		return err
	}
	show(w, "Stack s2 full (users, from sequence)", s2)
	fmt.Fprintf(w, "Read-only traversal (top to bottom):\n%s\n\n", readOnly(s2))
	return nil
}

func predicates(w io.Writer) error {
	fmt.Fprintln(w, "----- Predicates -----")

	s1, err := engine.FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		return err
	}
	show(w, "Stack s1 full (from sequence)", s1)

	fmt.Fprint(w, "top int > 5\n\n")
	if err := topSatisfies(s1, engine.GreaterThan(5), "top of s1 is greater than 5"); err != nil {
		return err
	}

	if _, err := s1.Pop(); err != nil {
		return err
	}
	if err := topSatisfies(s1, engine.IsOdd[int](), "top of s1 is odd after pop"); err != nil {
		return err
	}

	s2, err := engine.FromSlice([]user{{"Mario", 20}, {"Pippo", 21}, {"Luigi", 22}})
	if err != nil {
		return err
	}
	show(w, "Stack s2 full (users, from sequence)", s2)

	fmt.Fprintln(w, "top user age > 20")
	if err := topSatisfies(s2, ageAbove(20), "top user is older than 20"); err != nil {
		return err
	}

	fmt.Fprintln(w, "top user name == Luigi")
	if err := topSatisfies(s2, nameIs("Luigi"), "top user is Luigi"); err != nil {
		return err
	}

	if _, err := s2.Pop(); err != nil {
		return err
	}
	fmt.Fprintln(w, "top user name == Pippo (after pop)")
	return topSatisfies(s2, nameIs("Pippo"), "top user is Pippo after pop")
}
