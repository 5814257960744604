package indent

import "fmt"

// Walk calls fn for every node reachable from root in depth-first order,
// Yes before No. Shared nodes are visited once per path that reaches them.
// depth is 0 for root.
func Walk(root Rule, fn func(r Rule, depth int)) {
	var walk func(r Rule, depth int)
	walk = func(r Rule, depth int) {
		if r == nil {
			return
		}
		fn(r, depth)
		if q, ok := r.(*Question); ok {
			walk(q.Yes, depth+1)
			walk(q.No, depth+1)
		}
	}
	walk(root, 0)
}

// Validate checks that every path from root ends at an action: no
// question has a nil branch and no rule is reachable from itself.
func Validate(root Rule) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[Rule]int)

	var visit func(r Rule, path string) error
	visit = func(r Rule, path string) error {
		if r == nil {
			return fmt.Errorf("%s: %w", path, ErrIncompleteTree)
		}
		switch state[r] {
		case visiting:
			return fmt.Errorf("%s: %w", path, ErrCyclicTree)
		case done:
			return nil
		}
		q, ok := r.(*Question)
		if !ok {
			state[r] = done
			return nil
		}
		state[r] = visiting
		if err := visit(q.Yes, path+"/"+q.Name()+":yes"); err != nil {
			return err
		}
		if err := visit(q.No, path+"/"+q.Name()+":no"); err != nil {
			return err
		}
		state[r] = done
		return nil
	}
	return visit(root, "")
}

// Outline is a serializable view of a rule tree.
type Outline struct {
	Rule string   `yaml:"rule" json:"rule"`
	Kind string   `yaml:"kind" json:"kind"`
	Yes  *Outline `yaml:"yes,omitempty" json:"yes,omitempty"`
	No   *Outline `yaml:"no,omitempty" json:"no,omitempty"`
}

// Describe returns the outline of the tree rooted at root.
func Describe(root Rule) *Outline {
	switch r := root.(type) {
	case *Question:
		return &Outline{Rule: r.Name(), Kind: "question", Yes: Describe(r.Yes), No: Describe(r.No)}
	case *Action:
		return &Outline{Rule: r.Name(), Kind: "action"}
	default:
		return nil
	}
}

// Actions returns the names of the distinct actions reachable from root.
func Actions(root Rule) []string {
	seen := make(map[string]bool)
	var names []string
	Walk(root, func(r Rule, _ int) {
		if a, ok := r.(*Action); ok && !seen[a.Name()] {
			seen[a.Name()] = true
			names = append(names, a.Name())
		}
	})
	return names
}
