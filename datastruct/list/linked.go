package list

// LinkedList 单向链表，不是线程安全的，并发访问需要调用方自己加锁
type LinkedList[T comparable] struct {
	first *node[T]
	last  *node[T] // 只用于O(1)追加，不参与遍历
	size  int
}

type node[T comparable] struct {
	val  T
	next *node[T]
}

func Make[T comparable](vals ...T) *LinkedList[T] {
	list := LinkedList[T]{}
	for _, v := range vals {
		list.Add(v)
	}
	return &list
}

// Add 追加到链表末尾
func (list *LinkedList[T]) Add(val T) {
	if list == nil {
		panic("list is nil")
	}
	n := &node[T]{
		val: val,
	}
	if list.last == nil {
		// empty list
		list.first = n
		list.last = n
	} else {
		list.last.next = n
		list.last = n
	}
	list.size++
}

// find 从头部走index步，调用方保证 0 <= index < size
func (list *LinkedList[T]) find(index int) *node[T] {
	n := list.first
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}

func (list *LinkedList[T]) Get(index int) (val T, err error) {
	if list == nil {
		panic("list is nil")
	}
	if index < 0 || index >= list.size {
		return val, indexError("get", index, list.size)
	}
	return list.find(index).val, nil
}

func (list *LinkedList[T]) Set(index int, val T) error {
	if list == nil {
		panic("list is nil")
	}
	if index < 0 || index >= list.size {
		return indexError("set", index, list.size)
	}
	list.find(index).val = val
	return nil
}

// Insert 在指定位置插入val，之后的元素整体后移一位
// index == Len() 时等价于 Add
func (list *LinkedList[T]) Insert(index int, val T) error {
	if list == nil {
		panic("list is nil")
	}
	if index < 0 || index > list.size {
		return indexError("insert", index, list.size)
	}

	if index == list.size {
		list.Add(val)
		return nil
	}
	n := &node[T]{val: val}
	if index == 0 {
		n.next = list.first
		list.first = n
		list.size++
		return nil
	}
	// 找到前驱节点，把新节点接在前驱和它原来的后继之间
	prev := list.find(index - 1)
	n.next = prev.next
	prev.next = n
	list.size++
	return nil
}

// unlink 移除prev之后的节点n，prev为nil表示n是头节点
func (list *LinkedList[T]) unlink(prev *node[T], n *node[T]) {
	if prev == nil {
		list.first = n.next
	} else {
		prev.next = n.next
	}
	if list.last == n {
		list.last = prev
	}

	// for gc
	n.next = nil

	list.size--
}

func (list *LinkedList[T]) Remove(index int) (val T, err error) {
	if list == nil {
		panic("list is nil")
	}
	if index < 0 || index >= list.size {
		return val, indexError("remove", index, list.size)
	}

	var prev *node[T]
	if index > 0 {
		prev = list.find(index - 1)
	}
	n := list.first
	if prev != nil {
		n = prev.next
	}
	list.unlink(prev, n)
	return n.val, nil
}

// RemoveFirst 移除从头部开始第一个等于val的元素，没有找到时链表保持不变
func (list *LinkedList[T]) RemoveFirst(val T) bool {
	if list == nil {
		panic("list is nil")
	}
	var prev *node[T]
	for n := list.first; n != nil; n = n.next {
		if n.val == val {
			list.unlink(prev, n)
			return true
		}
		prev = n
	}
	return false
}

// RemoveAllByVal 移除所有满足expected的元素，返回移除的个数
func (list *LinkedList[T]) RemoveAllByVal(expected Expected[T]) int {
	if list == nil {
		panic("list is nil")
	}
	removed := 0
	var prev *node[T]
	n := list.first
	for n != nil {
		nextNode := n.next
		if expected(n.val) {
			list.unlink(prev, n)
			removed++
		} else {
			prev = n
		}
		n = nextNode
	}
	return removed
}

func (list *LinkedList[T]) Len() int {
	if list == nil {
		panic("list is nil")
	}
	return list.size
}

func (list *LinkedList[T]) IsEmpty() bool {
	return list.Len() == 0
}

func (list *LinkedList[T]) forEach(fn consumer[T]) {
	i := 0
	for n := list.first; n != nil; n = n.next {
		if !fn(i, n.val) {
			break
		}
		i++
	}
}

// Contains 查看是否存在满足expected的元素
func (list *LinkedList[T]) Contains(expected Expected[T]) bool {
	if list == nil {
		panic("list is nil")
	}
	contains := false
	list.forEach(func(i int, actual T) bool {
		if expected(actual) {
			contains = true
			return false
		}
		return true
	})
	return contains
}

// Range 返回下标在[start, stop)之间的元素
func (list *LinkedList[T]) Range(start int, stop int) ([]T, error) {
	if list == nil {
		panic("list is nil")
	}
	if start < 0 || start > list.size {
		return nil, indexError("range start", start, list.size)
	}
	if stop < start || stop > list.size {
		return nil, indexError("range stop", stop, list.size)
	}

	slice := make([]T, 0, stop-start)
	list.forEach(func(i int, v T) bool {
		if i >= stop {
			return false
		}
		if i >= start {
			slice = append(slice, v)
		}
		return true
	})
	return slice, nil
}

// Values 按从头到尾的顺序返回所有元素，不修改链表
func (list *LinkedList[T]) Values() []T {
	if list == nil {
		panic("list is nil")
	}
	values := make([]T, 0, list.size)
	list.forEach(func(i int, v T) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Reverse 原地反转，只修改next指针，不分配新节点
func (list *LinkedList[T]) Reverse() {
	if list == nil {
		panic("list is nil")
	}
	var prev *node[T]
	n := list.first
	list.last = n
	for n != nil {
		nextNode := n.next
		n.next = prev
		prev = n
		n = nextNode
	}
	list.first = prev
}

// Middle 快慢指针查找中间元素，长度为偶数时返回靠后的那一个
func (list *LinkedList[T]) Middle() (val T, ok bool) {
	if list == nil {
		panic("list is nil")
	}
	if list.first == nil {
		return val, false
	}
	slow, fast := list.first, list.first
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	return slow.val, true
}

// HasCycle Floyd判环：快指针每次走两步，慢指针走一步，相遇则有环
func (list *LinkedList[T]) HasCycle() bool {
	if list == nil {
		panic("list is nil")
	}
	if list.first == nil || list.first.next == nil {
		return false
	}
	slow, fast := list.first, list.first
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
		if slow == fast {
			return true
		}
	}
	return false
}
