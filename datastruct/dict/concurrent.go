package dict

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// ConcurrentDict 按murmur3哈希分片，每个分片一把读写锁
type ConcurrentDict struct {
	table      []*shard
	shardCount uint32
}

type shard struct {
	m     map[string]interface{}
	mutex sync.RWMutex
}

// computeCapacity 分片数取不小于param的2的幂
func computeCapacity(param int) uint32 {
	if param <= 16 {
		return 16
	}
	n := uint32(param - 1)
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

func MakeConcurrent(shardCount int) *ConcurrentDict {
	count := computeCapacity(shardCount)
	table := make([]*shard, count)
	for i := range table {
		table[i] = &shard{
			m: make(map[string]interface{}),
		}
	}
	return &ConcurrentDict{
		table:      table,
		shardCount: count,
	}
}

func (dict *ConcurrentDict) spread(key string) uint32 {
	return murmur3.Sum32([]byte(key)) & (dict.shardCount - 1)
}

func (dict *ConcurrentDict) getShard(key string) *shard {
	if dict == nil {
		panic("dict is nil")
	}
	return dict.table[dict.spread(key)]
}

func (dict *ConcurrentDict) Get(key string) (val interface{}, exists bool) {
	s := dict.getShard(key)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	val, exists = s.m[key]
	return
}

func (dict *ConcurrentDict) Len() int {
	if dict == nil {
		panic("dict is nil")
	}
	count := 0
	for _, s := range dict.table {
		s.mutex.RLock()
		count += len(s.m)
		s.mutex.RUnlock()
	}
	return count
}

func (dict *ConcurrentDict) Put(key string, val interface{}) (result int) {
	s := dict.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, existed := s.m[key]
	s.m[key] = val
	if existed {
		return 0
	}
	return 1
}

func (dict *ConcurrentDict) PutIfAbsent(key string, val interface{}) (result int) {
	s := dict.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, existed := s.m[key]; existed {
		return 0
	}
	s.m[key] = val
	return 1
}

func (dict *ConcurrentDict) PutIfExists(key string, val interface{}) (result int) {
	s := dict.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, existed := s.m[key]; existed {
		s.m[key] = val
		return 1
	}
	return 0
}

func (dict *ConcurrentDict) Remove(key string) (result int) {
	s := dict.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, existed := s.m[key]; existed {
		delete(s.m, key)
		return 1
	}
	return 0
}

// ForEach 遍历时逐个分片加读锁，consumer中不能再写同一个dict
func (dict *ConcurrentDict) ForEach(consumer Consumer) {
	if dict == nil {
		panic("dict is nil")
	}
	for _, s := range dict.table {
		s.mutex.RLock()
		goNext := func() bool {
			defer s.mutex.RUnlock()
			for key, value := range s.m {
				if !consumer(key, value) {
					return false
				}
			}
			return true
		}()
		if !goNext {
			break
		}
	}
}

func (dict *ConcurrentDict) Keys() []string {
	keys := make([]string, 0, dict.Len())
	dict.ForEach(func(key string, val interface{}) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (dict *ConcurrentDict) Clear() {
	for _, s := range dict.table {
		s.mutex.Lock()
		s.m = make(map[string]interface{})
		s.mutex.Unlock()
	}
}
