package indent

import (
	"context"
	"fmt"
	"log/slog"
)

// Indenter applies a decision tree built for one indent width.
type Indenter struct {
	width    int
	settings Settings
	logger   *slog.Logger

	cfg  TreeConfig
	root Rule
}

// Option configures an Indenter.
type Option func(*Indenter)

// WithSettings sets the collaborator consulted when the tree is built.
func WithSettings(s Settings) Option {
	return func(in *Indenter) {
		in.settings = s
	}
}

// WithAutoCloseComments fixes the auto-close-comments setting.
func WithAutoCloseComments(enabled bool) Option {
	return WithSettings(StaticSettings{CloseComments: enabled})
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Indenter) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// Result describes one Indent call.
type Result struct {
	// EditApplied reports whether the document changed.
	EditApplied bool

	// TookCommentBranch reports whether the line started inside a block
	// comment, so the comment subtree decided the result.
	TookCommentBranch bool

	// Action is the name of the action that ran.
	Action string
}

// New creates an Indenter whose tree indents one level by width columns.
func New(width int, opts ...Option) (*Indenter, error) {
	in := &Indenter{logger: slog.Default()}
	for _, opt := range opts {
		opt(in)
	}
	if err := in.build(width); err != nil {
		return nil, err
	}
	return in, nil
}

// Reconfigure rebuilds the tree for a new indent width, reading settings
// again. The previous tree is kept if the width is invalid. Reconfigure
// must not run while an Indent call is in progress.
func (in *Indenter) Reconfigure(width int) error {
	return in.build(width)
}

func (in *Indenter) build(width int) error {
	if width < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIndentWidth, width)
	}
	cfg := resolveTreeConfig(in.settings, in.logger)
	root := BuildTree(width, cfg)
	if err := Validate(root); err != nil {
		return err
	}
	in.width, in.cfg, in.root = width, cfg, root
	return nil
}

// IndentLevel returns the indent width the tree was built for.
func (in *Indenter) IndentLevel() int { return in.width }

// TreeConfig returns the configuration the tree was built with.
func (in *Indenter) TreeConfig() TreeConfig { return in.cfg }

// Root returns the root of the decision tree.
func (in *Indenter) Root() Rule { return in.root }

// Indent re-indents the line containing the document's cursor. The caller
// holds the document lock.
func (in *Indenter) Indent(doc Document, reason Reason) Result {
	return in.IndentAt(doc, doc.Cursor(), reason)
}

// IndentAt re-indents the line containing offset. The cursor only moves as
// the edit shifts text, or where an action places it explicitly.
func (in *Indenter) IndentAt(doc Document, offset int, reason Reason) Result {
	line := doc.LineStart(offset)
	action, inComment := decide(in.root, doc, line, reason)
	res := Result{
		EditApplied:       action.Apply(doc, line, reason),
		TookCommentBranch: inComment,
		Action:            action.Name(),
	}

	if in.logger.Enabled(context.Background(), slog.LevelDebug) {
		in.logger.Debug("indent line",
			"line", line,
			"reason", reason,
			"action", res.Action,
			"comment", res.TookCommentBranch,
			"edit", res.EditApplied,
		)
	}
	return res
}
