package list_test

import (
	"errors"
	"reflect"
	"testing"

	"miniSeq/datastruct/list"
)

func checkIntegrity[T comparable](t *testing.T, l *list.LinkedList[T]) {
	t.Helper()
	if got := l.CountNodes(l.Len() + 1); got != l.Len() {
		t.Fatalf("reachable nodes %d, cached size %d", got, l.Len())
	}
	if l.IsEmpty() != (l.Len() == 0) {
		t.Fatalf("IsEmpty() disagrees with Len() %d", l.Len())
	}
	tail, ok := l.Tail()
	if ok != !l.IsEmpty() {
		t.Fatalf("tail presence %v with size %d", ok, l.Len())
	}
	if ok {
		last, _ := l.Get(l.Len() - 1)
		if tail != last {
			t.Fatalf("cached tail %v, last element %v", tail, last)
		}
	}
}

func assertValues(t *testing.T, l *list.LinkedList[int], expected ...int) {
	t.Helper()
	actual := l.Values()
	if len(expected) == 0 {
		expected = []int{}
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("expected %v, actual %v", expected, actual)
	}
	checkIntegrity(t, l)
}

func TestAddAndGet(t *testing.T) {
	l := list.Make[int]()
	for i := 0; i < 10; i++ {
		l.Add(i * 10)
	}
	if l.Len() != 10 {
		t.Fatalf("expected size 10, actual %d", l.Len())
	}
	for i := 0; i < 10; i++ {
		v, err := l.Get(i)
		if err != nil {
			t.Fatal(err)
		}
		if v != i*10 {
			t.Errorf("get(%d): expected %d, actual %d", i, i*10, v)
		}
	}
	checkIntegrity(t, l)
}

func TestEmpty(t *testing.T) {
	l := list.Make[string]()
	if !l.IsEmpty() || l.Len() != 0 {
		t.Fatal("new list should be empty")
	}
	if _, err := l.Get(0); err == nil {
		t.Fatal("get on empty list should fail")
	}
	if l.RemoveFirst("a") {
		t.Fatal("remove on empty list should report false")
	}
	if _, ok := l.Middle(); ok {
		t.Fatal("middle of empty list should be absent")
	}
	if l.HasCycle() {
		t.Fatal("empty list has no cycle")
	}
	l.Reverse()
	if len(l.Values()) != 0 {
		t.Fatal("reverse of empty list should stay empty")
	}
	checkIntegrity(t, l)
}

func TestInsert(t *testing.T) {
	l := list.Make(1, 2, 3)
	if err := l.Insert(0, 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := l.Get(0); v != 0 {
		t.Fatalf("expected 0 at head, actual %d", v)
	}
	if err := l.Insert(2, 15); err != nil {
		t.Fatal(err)
	}
	assertValues(t, l, 0, 1, 15, 2, 3)

	// 在末尾插入等价于追加
	if err := l.Insert(l.Len(), 4); err != nil {
		t.Fatal(err)
	}
	l.Add(5)
	assertValues(t, l, 0, 1, 15, 2, 3, 4, 5)

	empty := list.Make[int]()
	if err := empty.Insert(0, 7); err != nil {
		t.Fatal(err)
	}
	empty.Add(8)
	assertValues(t, empty, 7, 8)
}

func TestInsertOutOfRange(t *testing.T) {
	l := list.Make(1, 2, 3)
	for _, index := range []int{-1, 4, 100} {
		err := l.Insert(index, 9)
		if err == nil {
			t.Fatalf("insert at %d should fail", index)
		}
		if !errors.Is(err, list.ErrIndexOutOfRange) {
			t.Fatalf("expected ErrIndexOutOfRange, actual %v", err)
		}
		var indexErr *list.IndexError
		if !errors.As(err, &indexErr) {
			t.Fatalf("expected *IndexError, actual %T", err)
		}
		if indexErr.Index != index || indexErr.Len != 3 {
			t.Fatalf("unexpected error detail: %+v", indexErr)
		}
	}
	assertValues(t, l, 1, 2, 3)
}

func TestIndexErrorMessage(t *testing.T) {
	l := list.Make(1, 2, 3)
	err := l.Insert(5, 0)
	if err.Error() != "list: insert index 5 out of range [0, 3]" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	_, err = l.Get(3)
	if err.Error() != "list: get index 3 out of range [0, 3)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGetOutOfRange(t *testing.T) {
	l := list.Make(1, 2, 3)
	for _, index := range []int{-1, 3, 4} {
		if _, err := l.Get(index); !errors.Is(err, list.ErrIndexOutOfRange) {
			t.Fatalf("get(%d): expected index error, actual %v", index, err)
		}
	}
}

func TestRemoveFirst(t *testing.T) {
	l := list.Make(1, 2, 3, 2, 4)
	if !l.RemoveFirst(2) {
		t.Fatal("expected 2 to be removed")
	}
	assertValues(t, l, 1, 3, 2, 4)

	if l.RemoveFirst(9) {
		t.Fatal("absent value should not be removed")
	}
	assertValues(t, l, 1, 3, 2, 4)

	// head
	if !l.RemoveFirst(1) {
		t.Fatal("expected head to be removed")
	}
	assertValues(t, l, 3, 2, 4)

	// tail，之后的追加要接在新的尾节点上
	if !l.RemoveFirst(4) {
		t.Fatal("expected tail to be removed")
	}
	l.Add(5)
	assertValues(t, l, 3, 2, 5)

	l.RemoveFirst(3)
	l.RemoveFirst(2)
	l.RemoveFirst(5)
	assertValues(t, l)
	l.Add(6)
	assertValues(t, l, 6)
}

func TestRemoveByIndex(t *testing.T) {
	l := list.Make(1, 2, 3, 4)
	v, err := l.Remove(3)
	if err != nil || v != 4 {
		t.Fatalf("expected 4, actual %d %v", v, err)
	}
	v, err = l.Remove(0)
	if err != nil || v != 1 {
		t.Fatalf("expected 1, actual %d %v", v, err)
	}
	assertValues(t, l, 2, 3)
	if _, err = l.Remove(2); err == nil {
		t.Fatal("remove out of range should fail")
	}
	l.Add(9)
	assertValues(t, l, 2, 3, 9)
}

func TestRemoveAllByVal(t *testing.T) {
	l := list.Make(1, 2, 1, 1, 3, 1)
	removed := l.RemoveAllByVal(func(a int) bool {
		return a == 1
	})
	if removed != 4 {
		t.Fatalf("expected 4 removed, actual %d", removed)
	}
	assertValues(t, l, 2, 3)
	l.Add(4)
	assertValues(t, l, 2, 3, 4)
}

func TestSet(t *testing.T) {
	l := list.Make("a", "b", "c")
	if err := l.Set(1, "B"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set(3, "d"); !errors.Is(err, list.ErrIndexOutOfRange) {
		t.Fatalf("expected index error, actual %v", err)
	}
	if !reflect.DeepEqual(l.Values(), []string{"a", "B", "c"}) {
		t.Fatalf("unexpected values %v", l.Values())
	}
}

func TestContains(t *testing.T) {
	l := list.Make("a", "b", "c")
	if !l.Contains(func(a string) bool { return a == "b" }) {
		t.Fatal("expected to contain b")
	}
	if l.Contains(func(a string) bool { return a == "z" }) {
		t.Fatal("expected not to contain z")
	}
}

func TestRange(t *testing.T) {
	l := list.Make(0, 1, 2, 3, 4)
	cases := []struct {
		start, stop int
		expected    []int
	}{
		{0, 5, []int{0, 1, 2, 3, 4}},
		{1, 3, []int{1, 2}},
		{2, 2, []int{}},
		{5, 5, []int{}},
	}
	for _, c := range cases {
		actual, err := l.Range(c.start, c.stop)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(actual, c.expected) {
			t.Errorf("range(%d, %d): expected %v, actual %v", c.start, c.stop, c.expected, actual)
		}
	}
	if _, err := l.Range(3, 2); err == nil {
		t.Fatal("stop before start should fail")
	}
	if _, err := l.Range(0, 6); err == nil {
		t.Fatal("stop after end should fail")
	}
}

func TestReverse(t *testing.T) {
	l := list.Make(1, 2, 3, 4, 5)
	l.Reverse()
	assertValues(t, l, 5, 4, 3, 2, 1)
	l.Add(0)
	assertValues(t, l, 5, 4, 3, 2, 1, 0)

	single := list.Make(1)
	single.Reverse()
	assertValues(t, single, 1)
}

func TestReverseTwiceRestoresOrder(t *testing.T) {
	for n := 0; n < 8; n++ {
		l := list.Make[int]()
		for i := 0; i < n; i++ {
			l.Add(i)
		}
		before := l.Values()
		l.Reverse()
		l.Reverse()
		if !reflect.DeepEqual(before, l.Values()) {
			t.Fatalf("n=%d: expected %v, actual %v", n, before, l.Values())
		}
		checkIntegrity(t, l)
	}
}

func TestMiddle(t *testing.T) {
	cases := []struct {
		vals     []int
		expected int
	}{
		{[]int{10}, 10},
		{[]int{10, 20}, 20},
		{[]int{10, 20, 30}, 20},
		{[]int{10, 20, 30, 40}, 30},
		{[]int{10, 20, 30, 40, 50}, 30},
	}
	for _, c := range cases {
		actual, ok := list.Make(c.vals...).Middle()
		if !ok || actual != c.expected {
			t.Errorf("middle of %v: expected %d, actual %d", c.vals, c.expected, actual)
		}
	}
}

func TestHasCycle(t *testing.T) {
	for n := 0; n < 6; n++ {
		l := list.Make[int]()
		for i := 0; i < n; i++ {
			l.Add(i)
		}
		if l.HasCycle() {
			t.Fatalf("list of %d built through Add reported a cycle", n)
		}
	}

	for n := 1; n < 8; n++ {
		for target := 0; target < n; target++ {
			l := list.Make[int]()
			for i := 0; i < n; i++ {
				l.Add(i)
			}
			l.LinkTailTo(target)
			if !l.HasCycle() {
				t.Fatalf("n=%d, tail linked to %d: cycle not detected", n, target)
			}
		}
	}
}

func TestScenario(t *testing.T) {
	l := list.Make[int]()
	for _, v := range []int{10, 20, 30, 40, 50} {
		l.Add(v)
	}
	if l.Len() != 5 {
		t.Fatalf("expected size 5, actual %d", l.Len())
	}
	if err := l.Insert(2, 25); err != nil {
		t.Fatal(err)
	}
	assertValues(t, l, 10, 20, 25, 30, 40, 50)
	if v, _ := l.Get(3); v != 30 {
		t.Fatalf("expected 30, actual %d", v)
	}
	if !l.RemoveFirst(30) {
		t.Fatal("expected 30 to be removed")
	}
	assertValues(t, l, 10, 20, 25, 40, 50)
	if v, _ := l.Middle(); v != 25 {
		t.Fatalf("expected middle 25, actual %d", v)
	}
	l.Reverse()
	assertValues(t, l, 50, 40, 25, 20, 10)
}

func BenchmarkLinkedList_Add(b *testing.B) {
	l := list.Make[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Add(i)
	}
}

func BenchmarkLinkedList_Reverse(b *testing.B) {
	l := list.Make[int]()
	for i := 0; i < 1024; i++ {
		l.Add(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Reverse()
	}
}
