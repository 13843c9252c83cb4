package repository

// collection 按 id 存放一种实体，并保留插入顺序
type collection[T any] struct {
	items map[uint]T
	order []uint
	clone func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{items: make(map[uint]T), clone: clone}
}

func (c *collection[T]) insert(id uint, v T) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = c.clone(v)
}

func (c *collection[T]) get(id uint) (T, bool) {
	v, ok := c.items[id]
	if !ok {
		return v, false
	}
	return c.clone(v), true
}

// filter 线性扫描，按插入顺序返回；无匹配时返回空切片
func (c *collection[T]) filter(pred func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range c.order {
		v := c.items[id]
		if pred == nil || pred(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	for _, id := range c.order {
		v := c.items[id]
		if pred(v) {
			return c.clone(v), true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) len() int {
	return len(c.order)
}
