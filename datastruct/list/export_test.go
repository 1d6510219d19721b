package list

// LinkTailTo 把尾节点的next指向下标为index的节点，人为制造环，只在测试中可用。
// 制造环之后除了 HasCycle 之外不要再调用其它方法。
func (list *LinkedList[T]) LinkTailTo(index int) {
	list.last.next = list.find(index)
}

// Tail 返回缓存的尾节点的值
func (list *LinkedList[T]) Tail() (val T, ok bool) {
	if list.last == nil {
		return val, false
	}
	return list.last.val, true
}

// CountNodes 沿next指针数出节点个数，最多数limit个
func (list *LinkedList[T]) CountNodes(limit int) int {
	count := 0
	for n := list.first; n != nil && count < limit; n = n.next {
		count++
	}
	return count
}
