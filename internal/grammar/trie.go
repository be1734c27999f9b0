package grammar

import (
	"cmp"
	"slices"
)

// Trie is a case-insensitive prefix tree over ASCII keys.
// Children of each node are kept sorted by byte and are binary searched on lookup.
// Trie is not safe for concurrent writes, but is safe for concurrent reads once filled.
type Trie[V any] struct {
	root trieNode[V]
	size int
}

type trieNode[V any] struct {
	char     byte
	children []*trieNode[V]
	value    V
	terminal bool
}

func (n *trieNode[V]) child(c byte) (*trieNode[V], bool) {
	i, ok := slices.BinarySearchFunc(n.children, c, cmpNodeChar[V])
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

func cmpNodeChar[V any](n *trieNode[V], c byte) int { return cmp.Compare(n.char, c) }

// NewTrie builds a trie from the given key-value pairs.
func NewTrie[V any](entries map[string]V) *Trie[V] {
	t := new(Trie[V])
	for k, v := range entries {
		t.Insert(k, v)
	}
	return t
}

// Insert adds the key with the value, replacing a previous value of the same key.
func (t *Trie[V]) Insert(key string, val V) {
	n := &t.root
	for i := 0; i < len(key); i++ {
		c := ToLower(key[i])
		j, ok := slices.BinarySearchFunc(n.children, c, cmpNodeChar[V])
		if !ok {
			n.children = slices.Insert(n.children, j, &trieNode[V]{char: c})
		}
		n = n.children[j]
	}
	if !n.terminal {
		t.size++
	}
	n.value = val
	n.terminal = true
}

// Lookup walks the trie over the lowercased key.
// It reports false when the walk runs out of children or ends on a non-terminal node.
func (t *Trie[V]) Lookup(key string) (V, bool) {
	var zero V
	if t == nil || len(key) == 0 {
		return zero, false
	}

	n := &t.root
	for i := 0; i < len(key); i++ {
		var ok bool
		if n, ok = n.child(ToLower(key[i])); !ok {
			return zero, false
		}
	}
	if !n.terminal {
		return zero, false
	}
	return n.value, true
}

// Len returns the number of keys in the trie.
func (t *Trie[V]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}
