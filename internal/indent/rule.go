package indent

// Reason tells rules why indentation was requested.
type Reason int

const (
	// ReasonEnterKeyPress means a newline was just typed. Comment rules
	// insert a fresh " * " continuation for it.
	ReasonEnterKeyPress Reason = iota

	// ReasonOther means an existing line is being re-indented.
	ReasonOther
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonEnterKeyPress:
		return "enter"
	case ReasonOther:
		return "other"
	default:
		return "unknown"
	}
}

// Rule is a node of the decision tree. Every Rule is either a *Question or
// an *Action.
type Rule interface {
	// Name describes the rule and its parameters, e.g. StartPrevLinePlus(" * ").
	Name() string

	rule()
}

// Predicate tests the line starting at offset line.
type Predicate func(doc Document, line int, reason Reason) bool

// Edit rewrites the line starting at offset line and reports whether the
// document changed.
type Edit func(doc Document, line int, reason Reason) bool

// Question is a binary test. It never modifies the document.
type Question struct {
	name string
	test Predicate

	// Yes is evaluated when the test holds, No otherwise.
	Yes Rule
	No  Rule
}

// NewQuestion creates a question node.
func NewQuestion(name string, test Predicate, yes, no Rule) *Question {
	return &Question{name: name, test: test, Yes: yes, No: no}
}

// Name returns the question name.
func (q *Question) Name() string { return q.name }

// Test evaluates the question for the line starting at line.
func (q *Question) Test(doc Document, line int, reason Reason) bool {
	return q.test(doc, line, reason)
}

func (*Question) rule() {}

// Action is a terminal node that performs one edit.
type Action struct {
	name string
	edit Edit
}

// NewAction creates an action node.
func NewAction(name string, edit Edit) *Action {
	return &Action{name: name, edit: edit}
}

// Name returns the action name.
func (a *Action) Name() string { return a.name }

// Apply performs the edit for the line starting at line.
func (a *Action) Apply(doc Document, line int, reason Reason) bool {
	return a.edit(doc, line, reason)
}

func (*Action) rule() {}

// decide walks from root to the action selected for the line. rootHeld
// records the outcome of the root question, and is false when root is
// itself an action.
func decide(root Rule, doc Document, line int, reason Reason) (action *Action, rootHeld bool) {
	node := root
	first := true
	for {
		switch n := node.(type) {
		case *Action:
			return n, rootHeld
		case *Question:
			held := n.Test(doc, line, reason)
			if first {
				rootHeld = held
			}
			first = false
			if held {
				node = n.Yes
			} else {
				node = n.No
			}
		default:
			return doNothing, rootHeld
		}
	}
}
