package filterir

import "fmt"

// Builder assembles a predicate tree from postfix events.
//
// A bottom-up parser reduces a filter expression by emitting each leaf as
// it is recognized, followed by the connective once both operands are
// complete. Builder mirrors those reduction actions with an explicit node
// stack: leaves are pushed, and a connective pops the two most recent
// nodes (right first, then left) and pushes the new Branch.
//
// The zero value is ready to use.
type Builder struct {
	stack []Node
	root  Node
}

// PushLeaf records a completed comparison. The first leaf pushed becomes
// the provisional root, so a single-comparison filter needs no connective.
func (b *Builder) PushLeaf(leaf *Leaf) {
	if b.root == nil {
		b.root = leaf
	}
	b.stack = append(b.stack, leaf)
}

// PushConnective joins the two most recently completed nodes under op and
// makes the result the new root. The most recently pushed node becomes the
// right child.
//
// Fewer than two nodes on the stack means the caller violated the postfix
// event contract; that is a parser bug, not user input, so PushConnective
// panics rather than returning an error.
func (b *Builder) PushConnective(op LogicalOperator) {
	if len(b.stack) < 2 {
		panic(fmt.Sprintf("filterir: connective %s pushed with %d node(s) on the stack", op, len(b.stack)))
	}
	right := b.stack[len(b.stack)-1]
	left := b.stack[len(b.stack)-2]
	node := &Branch{Left: left, Op: op, Right: right}
	b.stack = append(b.stack[:len(b.stack)-2], node)
	b.root = node
}

// Depth returns the number of completed nodes awaiting a connective.
// Loaders use it to validate a document's event sequence before pushing.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Root returns the most recently completed node, or nil if no leaf was
// ever pushed. A nil root is the always-true filter and compiles to an
// empty fragment.
func (b *Builder) Root() Node {
	return b.root
}
