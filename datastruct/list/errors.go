package list

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange 所有下标越界错误都可以用 errors.Is 与它比较
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError 记录越界的下标以及调用时链表的长度
type IndexError struct {
	Op    string // 出错的操作，例如 get / insert
	Index int    // 越界的下标
	Len   int    // 调用时的元素个数
}

func (e *IndexError) Error() string {
	// insert 允许 index == Len，相当于追加
	if e.Op == "insert" {
		return fmt.Sprintf("list: %s index %d out of range [0, %d]", e.Op, e.Index, e.Len)
	}
	return fmt.Sprintf("list: %s index %d out of range [0, %d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

func indexError(op string, index int, size int) error {
	return &IndexError{Op: op, Index: index, Len: size}
}
