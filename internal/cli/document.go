package cli

import (
	"fmt"

	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
)

// Target names for filter documents.
const (
	TargetTable     = "table"
	TargetPartition = "partition"
)

// Document is a filter document: the compilation target, the partition key
// schema (partition target only), and the predicate as the postfix event
// list a bottom-up parser would emit.
type Document struct {
	Target    string    `yaml:"target" json:"target"`
	Keys      []KeySpec `yaml:"keys,omitempty" json:"keys,omitempty"`
	Predicate []Event   `yaml:"predicate" json:"predicate"`
}

// KeySpec declares one partition key.
type KeySpec struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Event is one postfix event: either a completed comparison (Leaf set) or
// a connective joining the two most recent nodes (Op set). Exactly one of
// the two must be present.
type Event struct {
	Leaf *LeafSpec `yaml:"leaf,omitempty" json:"leaf,omitempty"`
	Op   string    `yaml:"op,omitempty" json:"op,omitempty"`
}

// LeafSpec is one comparison in a filter document.
type LeafSpec struct {
	Key         string      `yaml:"key" json:"key"`
	Op          string      `yaml:"op" json:"op"`
	Value       interface{} `yaml:"value" json:"value"`
	ValueOnLeft bool        `yaml:"value_on_left,omitempty" json:"value_on_left,omitempty"`
}

// Validate checks the document shape: a known target, a non-empty key list
// for partition targets, and well-formed events. It does not compile the
// predicate.
func (d *Document) Validate() error {
	switch d.Target {
	case TargetTable, TargetPartition:
	default:
		return fmt.Errorf("invalid target %q: must be %q or %q", d.Target, TargetTable, TargetPartition)
	}
	if d.Target == TargetPartition && len(d.Keys) == 0 {
		return fmt.Errorf("partition target requires a non-empty keys list")
	}
	if d.Target == TargetTable && len(d.Keys) > 0 {
		return fmt.Errorf("table target does not take a keys list")
	}
	for i, k := range d.Keys {
		if k.Name == "" || k.Type == "" {
			return fmt.Errorf("keys[%d]: name and type are required", i)
		}
	}
	for i, ev := range d.Predicate {
		if (ev.Leaf == nil) == (ev.Op == "") {
			return fmt.Errorf("predicate[%d]: exactly one of leaf or op must be set", i)
		}
	}
	return nil
}

// PartitionKeys returns the declared schema as catalog keys.
func (d *Document) PartitionKeys() []catalog.PartitionKey {
	keys := make([]catalog.PartitionKey, len(d.Keys))
	for i, k := range d.Keys {
		keys[i] = catalog.PartitionKey{Name: k.Name, Type: k.Type}
	}
	return keys
}

// BuildTree replays the document's postfix events through a tree builder
// and returns the root. The event sequence is depth-checked here so a
// malformed document surfaces as a validation error instead of tripping
// the builder's caller-contract panic.
func (d *Document) BuildTree() (filterir.Node, error) {
	var b filterir.Builder
	for i, ev := range d.Predicate {
		switch {
		case ev.Leaf != nil:
			leaf, err := buildLeaf(ev.Leaf)
			if err != nil {
				return nil, fmt.Errorf("predicate[%d]: %w", i, err)
			}
			b.PushLeaf(leaf)
		case ev.Op != "":
			op, err := logicalOp(ev.Op)
			if err != nil {
				return nil, fmt.Errorf("predicate[%d]: %w", i, err)
			}
			if b.Depth() < 2 {
				return nil, fmt.Errorf("predicate[%d]: connective %s needs two completed nodes, have %d", i, op, b.Depth())
			}
			b.PushConnective(op)
		default:
			return nil, fmt.Errorf("predicate[%d]: exactly one of leaf or op must be set", i)
		}
	}
	if b.Depth() > 1 {
		return nil, fmt.Errorf("predicate leaves %d unjoined node(s); missing connective", b.Depth())
	}
	return b.Root(), nil
}

func buildLeaf(spec *LeafSpec) (*filterir.Leaf, error) {
	op, err := filterir.OperatorFromSymbol(spec.Op)
	if err != nil {
		return nil, err
	}
	value, err := constantValue(spec.Value)
	if err != nil {
		return nil, fmt.Errorf("key %q: %w", spec.Key, err)
	}
	return &filterir.Leaf{
		Key:         spec.Key,
		Op:          op,
		Value:       value,
		ValueOnLeft: spec.ValueOnLeft,
	}, nil
}

func logicalOp(name string) (filterir.LogicalOperator, error) {
	switch name {
	case string(filterir.And):
		return filterir.And, nil
	case string(filterir.Or):
		return filterir.Or, nil
	}
	return "", fmt.Errorf("invalid connective %q: must be AND or OR", name)
}

// constantValue maps a decoded YAML/CUE scalar to a filter constant.
// Only strings and integers exist as filter constants.
func constantValue(v interface{}) (filterir.Value, error) {
	switch val := v.(type) {
	case string:
		return filterir.StringValue(val), nil
	case int:
		return filterir.IntValue(val), nil
	case int64:
		return filterir.IntValue(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer value out of int64 range: %d", val)
		}
		return filterir.IntValue(val), nil
	case nil:
		return nil, fmt.Errorf("value is required")
	default:
		return nil, fmt.Errorf("unsupported value type %T: only strings and integers are allowed", v)
	}
}
