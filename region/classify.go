package region

import (
	"sort"

	"github.com/biogo/store/llrb"

	"github.com/future-re/memscan/memtype"
)

const maxClassifyFilename = 24

// classNode adapts a region's address span to llrb.Comparable, ordered by
// start address, so the classifier can be built as a sorted index in the
// same way the teacher package builds sorted interval indexes.
type classNode struct {
	start, end memtype.RemotePtr
	typ        Type
	filename   string
}

// Compare implements llrb.Comparable, ordering nodes by start address.
func (n *classNode) Compare(other llrb.Comparable) int {
	o := other.(*classNode)
	switch {
	case n.start < o.start:
		return -1
	case n.start > o.start:
		return 1
	default:
		return 0
	}
}

// Classifier resolves a remote address to a short human-readable label. It
// is built once from a region list and never mutated afterward.
type Classifier struct {
	tree   *llrb.Tree
	sorted []*classNode // in-order snapshot, used for the floor lookup
}

// NewClassifier builds an immutable classifier from regions.
func NewClassifier(regions []*Region) *Classifier {
	c := &Classifier{tree: &llrb.Tree{}}
	for _, r := range regions {
		n := &classNode{start: r.Start, end: r.End, typ: r.Type, filename: r.Filename}
		c.tree.Insert(n)
	}
	c.sorted = make([]*classNode, 0, len(regions))
	c.tree.Do(func(e llrb.Comparable) (done bool) {
		c.sorted = append(c.sorted, e.(*classNode))
		return false
	})
	return c
}

// Classify returns a short label for addr: "heap", "stack",
// "exe[:short-filename]", "code[:short-filename]", or "unk".
func (c *Classifier) Classify(addr memtype.RemotePtr) string {
	n := c.floor(addr)
	if n == nil || addr >= n.end {
		return "unk"
	}
	switch n.typ {
	case Heap:
		return "heap"
	case Stack:
		return "stack"
	case Exe:
		return withFilename("exe", n.filename)
	case Code:
		return withFilename("code", n.filename)
	default:
		return "unk"
	}
}

// floor returns the node with the greatest start <= addr, or nil.
func (c *Classifier) floor(addr memtype.RemotePtr) *classNode {
	i := sort.Search(len(c.sorted), func(i int) bool { return c.sorted[i].start > addr })
	if i == 0 {
		return nil
	}
	return c.sorted[i-1]
}

func withFilename(prefix, filename string) string {
	if filename == "" {
		return prefix
	}
	return prefix + ":" + truncateFilename(filename)
}

// truncateFilename truncates names longer than 24 characters from the left
// with an ellipsis prefix.
func truncateFilename(name string) string {
	if len(name) <= maxClassifyFilename {
		return name
	}
	const ellipsis = "..."
	keep := maxClassifyFilename - len(ellipsis)
	return ellipsis + name[len(name)-keep:]
}
