// Package plan parses Markdown test-plan documents. A test plan narrows the
// playtest suite to the scenarios named by checked task-list items:
//
//	# Smoke plan
//
//	- [x] launch
//	- [x] movement
//	- [ ] spike-damage
//
// Unchecked items are kept in the document for humans but skipped by the
// runner. An empty plan (no task-list items at all) is an error, a plan with
// items but none checked selects nothing.
package plan

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Plan is a parsed test-plan document.
type Plan struct {
	Name      string   // From the first level-1 heading, may be empty
	Scenarios []string // Checked scenario names in document order
	Skipped   []string // Unchecked scenario names in document order
}

// Parser parses Markdown test plans.
type Parser struct {
	markdown goldmark.Markdown
}

// NewParser creates a test-plan parser with task-list support enabled.
func NewParser() *Parser {
	return &Parser{
		markdown: goldmark.New(goldmark.WithExtensions(extension.TaskList)),
	}
}

// ParseFile reads and parses the test plan at path.
func (p *Parser) ParseFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan file: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse parses a test plan from r.
func (p *Parser) Parse(r io.Reader) (*Plan, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))

	result := &Plan{}
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 && result.Name == "" {
			result.Name = extractText(heading, content)
			return ast.WalkSkipChildren, nil
		}

		if item, ok := n.(*ast.ListItem); ok {
			checkbox, name := taskItem(item, content)
			if checkbox == nil || name == "" {
				return ast.WalkContinue, nil
			}
			if checkbox.IsChecked {
				result.Scenarios = append(result.Scenarios, name)
			} else {
				result.Skipped = append(result.Skipped, name)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Scenarios) == 0 && len(result.Skipped) == 0 {
		return nil, fmt.Errorf("plan contains no task-list items")
	}

	return result, nil
}

// taskItem returns the checkbox and text of a task-list item, or nil when
// the list item is a plain bullet.
func taskItem(item *ast.ListItem, source []byte) (*east.TaskCheckBox, string) {
	para := item.FirstChild()
	if para == nil {
		return nil, ""
	}

	var checkbox *east.TaskCheckBox
	var sb strings.Builder
	for child := para.FirstChild(); child != nil; child = child.NextSibling() {
		if cb, ok := child.(*east.TaskCheckBox); ok {
			checkbox = cb
			continue
		}
		sb.WriteString(extractText(child, source))
	}

	return checkbox, strings.TrimSpace(sb.String())
}

// extractText collects the raw text content beneath a node.
func extractText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
