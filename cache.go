// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package zudd

// cacheop identifies the operation stored in a cache entry.
type cacheop uint8

const (
	cacheNone cacheop = iota // marks an empty entry
	cacheUnion
	cacheIntersect
	cacheDiff
	cacheChange
	cacheSubset1
	cacheSubset0
)

// cacheData is a unit of information stored in the operation cache
type cacheData struct {
	a, b Edge
	res  Edge
	op   cacheop
}

// opcache is a direct-mapped cache for the results of the family operations.
// A colliding entry simply overwrites the previous one.
type opcache struct {
	table []cacheData
	hit   int // entries found in the cache
	miss  int // entries not found in the cache
}

func (c *opcache) init(size int) {
	c.table = make([]cacheData, primeGte(size))
}

// reset invalidates all the entries. It is needed after GC since reclaimed
// slots can be reused for different nodes.
func (c *opcache) reset() {
	clear(c.table)
}

func (c *opcache) pos(op cacheop, a, b Edge) int {
	return _TRIPLE(uint64(a), uint64(b), uint64(op), len(c.table))
}

func (c *opcache) lookup(op cacheop, a, b Edge) (Edge, bool) {
	entry := &c.table[c.pos(op, a, b)]
	if entry.op == op && entry.a == a && entry.b == b {
		c.hit++
		return entry.res, true
	}
	c.miss++
	return 0, false
}

func (c *opcache) store(op cacheop, a, b, res Edge) Edge {
	c.table[c.pos(op, a, b)] = cacheData{a: a, b: b, res: res, op: op}
	return res
}
