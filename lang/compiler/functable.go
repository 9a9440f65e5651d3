package compiler

import (
	"github.com/dolthub/swiss"

	"github.com/nerinelang/nerine/lang/types"
)

// FuncTable maps function ids to their compiled chunks. The engine owns
// one table whose entries accumulate across executions: ids are assigned
// once and never reused, so Function values stored in global slots keep
// resolving in later executions. Id 0 is reserved for the print builtin
// and has no chunk.
type FuncTable struct {
	chunks *swiss.Map[uint32, *Chunk]
	next   uint32
}

// NewFuncTable creates an empty function table. The first registered
// chunk receives id 1.
func NewFuncTable() *FuncTable {
	return &FuncTable{
		chunks: swiss.NewMap[uint32, *Chunk](8),
		next:   uint32(types.PrintID) + 1,
	}
}

// Register adds a compiled chunk to the table and returns its id.
func (t *FuncTable) Register(c *Chunk) types.Function {
	id := t.next
	t.next++
	t.chunks.Put(id, c)
	return types.Function(id)
}

// Lookup returns the chunk registered under id.
func (t *FuncTable) Lookup(id types.Function) (*Chunk, bool) {
	return t.chunks.Get(uint32(id))
}

// Len returns the number of registered chunks.
func (t *FuncTable) Len() int { return t.chunks.Count() }

// ForEach calls fn for each registered chunk in increasing id order.
func (t *FuncTable) ForEach(fn func(id types.Function, c *Chunk)) {
	for id := uint32(types.PrintID) + 1; id < t.next; id++ {
		if c, ok := t.chunks.Get(id); ok {
			fn(types.Function(id), c)
		}
	}
}
