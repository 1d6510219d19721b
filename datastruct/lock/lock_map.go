package lock

import (
	"sort"
	"sync"

	"github.com/spaolacci/murmur3"
)

// Locks 按key哈希到固定数量的读写锁上，多个key同时加锁时按下标排序，避免死锁
type Locks struct {
	table []*sync.RWMutex
}

func Make(tableSize int) *Locks {
	if tableSize <= 0 {
		tableSize = 1
	}
	table := make([]*sync.RWMutex, tableSize)
	for i := 0; i < tableSize; i++ {
		table[i] = &sync.RWMutex{}
	}
	return &Locks{
		table: table,
	}
}

func (locks *Locks) spread(key string) uint32 {
	return murmur3.Sum32([]byte(key)) % uint32(len(locks.table))
}

func (locks *Locks) Lock(key string) {
	locks.table[locks.spread(key)].Lock()
}

func (locks *Locks) RLock(key string) {
	locks.table[locks.spread(key)].RLock()
}

func (locks *Locks) UnLock(key string) {
	locks.table[locks.spread(key)].Unlock()
}

func (locks *Locks) RUnLock(key string) {
	locks.table[locks.spread(key)].RUnlock()
}

// toLockIndices 去重并排序，reverse用于解锁
func (locks *Locks) toLockIndices(keys []string, reverse bool) []uint32 {
	indexMap := make(map[uint32]struct{})
	for _, key := range keys {
		indexMap[locks.spread(key)] = struct{}{}
	}
	indices := make([]uint32, 0, len(indexMap))
	for index := range indexMap {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(i, j int) bool {
		if !reverse {
			return indices[i] < indices[j]
		}
		return indices[i] > indices[j]
	})
	return indices
}

// RWLocks 对writeKeys加写锁，对readKeys加读锁，同一个槽既读又写时只加写锁
func (locks *Locks) RWLocks(writeKeys []string, readKeys []string) {
	keys := make([]string, 0, len(writeKeys)+len(readKeys))
	keys = append(append(keys, writeKeys...), readKeys...)
	indices := locks.toLockIndices(keys, false)
	writeIndexSet := make(map[uint32]struct{})
	for _, wKey := range writeKeys {
		writeIndexSet[locks.spread(wKey)] = struct{}{}
	}
	for _, index := range indices {
		_, w := writeIndexSet[index]
		mu := locks.table[index]
		if w {
			mu.Lock()
		} else {
			mu.RLock()
		}
	}
}

func (locks *Locks) RWUnLocks(writeKeys []string, readKeys []string) {
	keys := make([]string, 0, len(writeKeys)+len(readKeys))
	keys = append(append(keys, writeKeys...), readKeys...)
	indices := locks.toLockIndices(keys, true)
	writeIndexSet := make(map[uint32]struct{})
	for _, wKey := range writeKeys {
		writeIndexSet[locks.spread(wKey)] = struct{}{}
	}
	for _, index := range indices {
		_, w := writeIndexSet[index]
		mu := locks.table[index]
		if w {
			mu.Unlock()
		} else {
			mu.RUnlock()
		}
	}
}
