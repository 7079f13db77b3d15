package types

import (
	"github.com/tidwall/btree"
)

const btreeDegrees = 32

type orderedItem struct {
	key   string
	value interface{}
}

func (oi *orderedItem) Less(item btree.Item, ctx interface{}) bool {
	return oi.key < item.(*orderedItem).key
}

// orderedSet iterates map entries in ascending key order so hashing and flushing are deterministic
type orderedSet struct {
	tr *btree.BTree
}

func newOrderedSet() *orderedSet {
	return &orderedSet{
		tr: btree.New(btreeDegrees, nil),
	}
}

func (os *orderedSet) Put(key string, value interface{}) {
	os.tr.ReplaceOrInsert(&orderedItem{key: key, value: value})
}

func (os *orderedSet) Len() int {
	return os.tr.Len()
}

func (os *orderedSet) Each(fn func(key string, value interface{}) error) error {
	var err error
	os.tr.Ascend(func(item btree.Item) bool {
		oi := item.(*orderedItem)
		if err = fn(oi.key, oi.value); err != nil {
			return false
		}
		return true
	})
	return err
}
