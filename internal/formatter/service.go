package formatter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/indentree/internal/config"
	"github.com/dshills/indentree/internal/engine/document"
	"github.com/dshills/indentree/internal/indent"
)

// Service indents documents with a configurable decision tree.
type Service struct {
	mu       sync.RWMutex
	cfg      *config.Config
	indenter *indent.Indenter
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service and its indenter.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Stats summarizes a range or whole-document pass.
type Stats struct {
	// Lines is the number of lines visited.
	Lines int
	// Changed is the number of lines whose text changed.
	Changed int
	// Skipped counts lines left alone because they start inside a string.
	Skipped int
	// CommentLines counts lines decided by the comment rules.
	CommentLines int
}

// New creates a service for cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the configuration the current tree was built from.
func (s *Service) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// IndentWidth returns the current indent width.
func (s *Service) IndentWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indenter.IndentLevel()
}

// Root returns the current decision tree.
func (s *Service) Root() indent.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indenter.Root()
}

// Reconfigure rebuilds the decision tree from cfg. On error the previous
// tree and configuration stay in use.
func (s *Service) Reconfigure(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in, err := indent.New(cfg.Indent.Width,
		indent.WithSettings(cfg),
		indent.WithLogger(s.logger),
	)
	if err != nil {
		return fmt.Errorf("building indenter: %w", err)
	}

	s.mu.Lock()
	s.cfg, s.indenter = cfg, in
	s.mu.Unlock()

	s.logger.Debug("indenter configured",
		"width", cfg.Indent.Width,
		"autoCloseComments", in.TreeConfig().AutoCloseComments,
		"tabs", cfg.Indent.Tabs,
	)
	return nil
}

// IndentLine re-indents the 0-based line of doc.
func (s *Service) IndentLine(doc *document.Document, line int, reason indent.Reason) (indent.Result, error) {
	if doc == nil {
		return indent.Result{}, ErrNilDocument
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc.Lock()
	defer doc.Unlock()

	if line < 0 || line >= doc.LineCount() {
		return indent.Result{}, fmt.Errorf("%w: %d of %d", ErrLineOutOfRange, line, doc.LineCount())
	}

	if s.cfg.Indent.Tabs {
		return s.indentLineTabs(doc, line, reason), nil
	}
	return s.indenter.IndentAt(doc, doc.LineOffset(line), reason), nil
}

// indentLineTabs indents one line of a tab-indented document. Rules
// measure columns in spaces, so the line and those above it are expanded
// first. Afterwards the line is collapsed back to tabs and every line
// above it gets its original blanks again.
func (s *Service) indentLineTabs(doc *document.Document, line int, reason indent.Reason) indent.Result {
	width := s.cfg.Indent.Width
	before, count := doc.LineText(doc.LineOffset(line)), doc.LineCount()

	saved := expandLines(doc, 0, line, width)
	res := s.indenter.IndentAt(doc, doc.LineOffset(line), reason)

	// Multi-line actions insert their lines below the target.
	collapseLines(doc, line, line+doc.LineCount()-count, width, false)
	restoreLines(doc, 0, saved[:line])

	res.EditApplied = doc.LineCount() != count || doc.LineText(doc.LineOffset(line)) != before
	return res
}

// IndentRange re-indents the 0-based lines from through to, inclusive.
// Lines starting inside a multi-line string are skipped and blank lines
// lose their indentation.
func (s *Service) IndentRange(doc *document.Document, from, to int) (Stats, error) {
	if doc == nil {
		return Stats{}, ErrNilDocument
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc.Lock()
	defer doc.Unlock()

	return s.indentRange(doc, from, to)
}

func (s *Service) indentRange(doc *document.Document, from, to int) (Stats, error) {
	var stats Stats
	if from < 0 || to >= doc.LineCount() || from > to {
		return stats, fmt.Errorf("%w: [%d, %d] of %d", ErrLineOutOfRange, from, to, doc.LineCount())
	}

	width := s.cfg.Indent.Width
	if s.cfg.Indent.Tabs {
		expandLines(doc, 0, doc.LineCount()-1, width)
	}

	for n := from; n <= to; n++ {
		stats.Lines++
		start := doc.LineOffset(n)
		if doc.LexicalState(start) == document.StateString {
			stats.Skipped++
			continue
		}

		line := doc.LineText(start)
		if len(leadingBlanks(line)) == len(line) {
			if doc.ReplacePrefix(start, "") {
				stats.Changed++
			}
			continue
		}

		res := s.indenter.IndentAt(doc, start, indent.ReasonOther)
		if res.EditApplied {
			stats.Changed++
		}
		if res.TookCommentBranch {
			stats.CommentLines++
		}
	}

	if s.cfg.Indent.Tabs {
		collapseLines(doc, 0, doc.LineCount()-1, width, true)
	}
	s.logger.Debug("indented range",
		"doc", doc.ID(),
		"from", from,
		"to", to,
		"changed", stats.Changed,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

// Format re-indents every line of text.
func (s *Service) Format(text string) (string, Stats) {
	doc := document.New(text)

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc.Lock()
	defer doc.Unlock()

	// The whole document is always a valid range.
	stats, _ := s.indentRange(doc, 0, doc.LineCount()-1)
	return doc.Text(), stats
}
