package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Node is a node of a Huffman tree.  A leaf has a valid Symbol and no
// children; an internal node has InvalidSymbol and exactly two children, each
// owned by it alone.
type Node struct {
	symbol      Symbol
	probability float64
	left        *Node
	right       *Node
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.left == nil
}

// Symbol returns the leaf's symbol, or InvalidSymbol for internal nodes.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// Probability returns the leaf's probability, or the sum of the children's
// probabilities for internal nodes.
func (n *Node) Probability() float64 {
	return n.probability
}

// Left returns the child reached by a 0 bit, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the child reached by a 1 bit, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Child returns Left() for bit 0 and Right() for any other bit.
func (n *Node) Child(bit uint) *Node {
	if bit == 0 {
		return n.left
	}
	return n.right
}

// LeafCount returns the number of leaves in the subtree rooted at n.
func (n *Node) LeafCount() int {
	if n.IsLeaf() {
		return 1
	}
	return n.left.LeafCount() + n.right.LeafCount()
}

// InternalCount returns the number of internal nodes in the subtree rooted at
// n.
func (n *Node) InternalCount() int {
	if n.IsLeaf() {
		return 0
	}
	return 1 + n.left.InternalCount() + n.right.InternalCount()
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, one line per node in depth-first order, keyed by the node's path.
func (n *Node) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	n.dump(&buf, Code{})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (n *Node) dump(buf *bytes.Buffer, path Code) {
	if n.IsLeaf() {
		fmt.Fprintf(buf, "\t%s = Leaf(%#v, %s)\n", path, n.symbol, formatProbability(n.probability))
		return
	}
	fmt.Fprintf(buf, "\t%s = Internal\n", path)
	n.left.dump(buf, path.Append(0))
	n.right.dump(buf, path.Append(1))
}

// BuildTree constructs the Huffman tree for a list of entries sorted as by
// Frequencies.Sorted, using the two-queue method.  The list must have at
// least two entries.
//
// Leaves are queued in list order on a "source" queue and merged nodes are
// queued in creation order on a "merge" queue.  Each step takes the smaller
// head twice, preferring "source" when the two heads tie, and merges the
// first as left child and the second as right child.  The tie rule fixes the
// shape of the tree, and with it the code lengths.
//
func BuildTree(list []FrequencyEntry) *Node {
	assert.Assertf(len(list) >= 2, "BuildTree: need at least 2 entries, got %d", len(list))
	assert.Assertf(len(list) <= NumSymbols, "BuildTree: %d entries > %d symbols", len(list), NumSymbols)

	source := makeNodeQueue(len(list))
	merge := makeNodeQueue(len(list) - 1)
	for _, fe := range list {
		assert.Assertf(fe.Symbol.IsValid(), "BuildTree: invalid symbol %d", fe.Symbol)
		source.Push(&Node{symbol: fe.Symbol, probability: fe.Probability})
	}

	for source.Len() != 0 || merge.Len() != 1 {
		left := takeSmallest(&source, &merge)
		right := takeSmallest(&source, &merge)
		merge.Push(&Node{
			symbol:      InvalidSymbol,
			probability: left.probability + right.probability,
			left:        left,
			right:       right,
		})
	}

	root := merge.Pop()
	log.Debugf("built tree: %d leaves, root probability %s", len(list), formatProbability(root.probability))
	return root
}

func takeSmallest(source, merge *nodeQueue) *Node {
	switch {
	case merge.Len() == 0:
		return source.Pop()
	case source.Len() == 0:
		return merge.Pop()
	case merge.Peek().probability < source.Peek().probability:
		return merge.Pop()
	default:
		return source.Pop()
	}
}

// type nodeQueue {{{

type nodeQueue struct {
	list []*Node
	head int
}

func makeNodeQueue(capacity int) nodeQueue {
	return nodeQueue{list: make([]*Node, 0, capacity)}
}

func (q *nodeQueue) Len() int {
	return len(q.list) - q.head
}

func (q *nodeQueue) Push(n *Node) {
	q.list = append(q.list, n)
}

func (q *nodeQueue) Peek() *Node {
	assert.Assertf(q.Len() > 0, "nodeQueue.Peek: empty queue")
	return q.list[q.head]
}

func (q *nodeQueue) Pop() *Node {
	n := q.Peek()
	q.list[q.head] = nil
	q.head++
	return n
}

// }}}
