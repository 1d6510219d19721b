package list

// Expected 检查给定项是否与期望值一致
type Expected[T any] func(a T) bool

// consumer 遍历链表，返回false时停止遍历
type consumer[T any] func(i int, v T) bool

// Sequence 单向链表对外提供的全部操作
type Sequence[T comparable] interface {
	Add(val T)
	Insert(index int, val T) error
	Get(index int) (val T, err error)
	Set(index int, val T) error
	Remove(index int) (val T, err error)
	RemoveFirst(val T) bool
	RemoveAllByVal(expected Expected[T]) int
	Len() int
	IsEmpty() bool
	Contains(expected Expected[T]) bool
	Range(start int, stop int) ([]T, error)
	Values() []T
	Reverse()
	Middle() (val T, ok bool)
	HasCycle() bool
}

var _ Sequence[string] = (*LinkedList[string])(nil)
