package filterir

// Node is one node of a filter predicate tree.
//
// This is a sealed interface - only *Branch and *Leaf implement it. The
// marker method pattern keeps type switches in the dialect backends
// exhaustive.
type Node interface {
	filterNode() // Marker method - seals interface to this package
}

// Branch is an interior node joining two subtrees with AND or OR.
//
// Both children are always set: a Branch only comes into existence when
// the Builder pops two completed nodes off its stack. Children are owned
// exclusively by their parent; the tree has no sharing and no cycles.
type Branch struct {
	Left  Node
	Op    LogicalOperator
	Right Node
}

func (*Branch) filterNode() {}

// Leaf is a single comparison between an attribute or partition key and a
// constant.
//
// ValueOnLeft records whether the constant appeared on the left of the
// operator in the source text ("5 >= count" rather than "count >= 5").
// Generated fragments must preserve that ordering so the operator keeps
// its meaning, and LIKE is only legal with the constant on the right.
type Leaf struct {
	Key         string
	Op          Operator
	Value       Value
	ValueOnLeft bool
}

func (*Leaf) filterNode() {}
