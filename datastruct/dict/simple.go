package dict

// SimpleDict 包装了一个map，不是线程安全的，只在单线程的数据库中使用
type SimpleDict struct {
	m map[string]interface{}
}

var _ Dict = (*SimpleDict)(nil)

func MakeSimple() *SimpleDict {
	return &SimpleDict{
		m: make(map[string]interface{}),
	}
}

func (dict *SimpleDict) Get(key string) (val interface{}, exists bool) {
	val, exists = dict.m[key]
	return
}

func (dict *SimpleDict) Len() int {
	return len(dict.m)
}

// Put 新插入返回1，覆盖已有的值返回0
func (dict *SimpleDict) Put(key string, val interface{}) (result int) {
	if _, existed := dict.m[key]; !existed {
		result = 1
	}
	dict.m[key] = val
	return
}

func (dict *SimpleDict) PutIfAbsent(key string, val interface{}) (result int) {
	if _, existed := dict.m[key]; existed {
		return 0
	}
	dict.m[key] = val
	return 1
}

func (dict *SimpleDict) PutIfExists(key string, val interface{}) (result int) {
	if _, existed := dict.m[key]; !existed {
		return 0
	}
	dict.m[key] = val
	return 1
}

func (dict *SimpleDict) Remove(key string) (result int) {
	if _, existed := dict.m[key]; !existed {
		return 0
	}
	delete(dict.m, key)
	return 1
}

func (dict *SimpleDict) Keys() []string {
	keys := make([]string, 0, len(dict.m))
	for k := range dict.m {
		keys = append(keys, k)
	}
	return keys
}

func (dict *SimpleDict) ForEach(consumer Consumer) {
	for k, v := range dict.m {
		if !consumer(k, v) {
			return
		}
	}
}

func (dict *SimpleDict) Clear() {
	dict.m = make(map[string]interface{})
}
