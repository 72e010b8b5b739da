// Package outline recognizes free-form outline text (ATX headings, bullet
// and ordered list lines) and turns it into a forest of labelled nodes.
package outline

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrParse is returned when outline text cannot be read at all.
var ErrParse = errors.New("outline parse failure")

// Node is an outline entry with its nested entries.
type Node struct {
	Label    string
	Children []*Node
}

// Forest is an ordered list of root nodes.
type Forest []*Node

// Entry is a flattened node. Depth starts at 1 for roots.
type Entry struct {
	Depth int
	Label string
}

type lineKind int

const (
	kindUnknown lineKind = iota
	kindHeading
	kindList
)

type frame struct {
	node    *Node
	depth   int
	heading bool
}

// Parse splits text into lines and parses them.
func Parse(text string) (Forest, error) {
	return ParseLines(strings.Split(text, "\n"))
}

// ParseLines builds a forest from outline lines. Heading lines nest by their
// level. List lines nest by two-space indentation steps below the closest
// preceding heading. Lines that match neither form are skipped.
func ParseLines(lines []string) (Forest, error) {
	var forest Forest
	var stack []frame

	for i, line := range lines {
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%w: line %d is not valid UTF-8", ErrParse, i+1)
		}

		kind, level, label := classify(line)
		if kind == kindUnknown {
			continue
		}

		depth := level
		if kind == kindList {
			depth = headingBase(stack) + level + 1
		}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}

		node := &Node{Label: label}
		if len(stack) == 0 {
			forest = append(forest, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, frame{node: node, depth: depth, heading: kind == kindHeading})
	}

	return forest, nil
}

func headingBase(stack []frame) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].heading {
			return stack[i].depth
		}
	}
	return 0
}

// classify returns the line kind, its level (heading depth, or indentation
// step for list lines) and its label.
func classify(line string) (lineKind, int, string) {
	line = strings.TrimRight(line, " \t\r")

	if hashes := countPrefix(line, '#'); hashes > 0 {
		rest := line[hashes:]
		if !strings.HasPrefix(rest, " ") {
			return kindUnknown, 0, ""
		}
		label := strings.TrimSpace(rest)
		if label == "" {
			return kindUnknown, 0, ""
		}
		return kindHeading, hashes, label
	}

	spaces := countPrefix(line, ' ')
	if spaces%2 != 0 {
		return kindUnknown, 0, ""
	}
	rest := line[spaces:]

	if label, ok := bulletLabel(rest); ok {
		return kindList, spaces / 2, label
	}
	if label, ok := orderedLabel(rest); ok {
		return kindList, spaces / 2, label
	}
	return kindUnknown, 0, ""
}

func bulletLabel(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, "- ")
	if !ok {
		return "", false
	}
	label := strings.TrimSpace(rest)
	return label, label != ""
}

func orderedLabel(s string) (string, bool) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || !strings.HasPrefix(s[digits:], ". ") {
		return "", false
	}
	label := strings.TrimSpace(s[digits+2:])
	return label, label != ""
}

func countPrefix(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// Flatten lists the forest in pre-order with tree depths.
func (f Forest) Flatten() []Entry {
	var entries []Entry
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			entries = append(entries, Entry{Depth: depth, Label: n.Label})
			walk(n.Children, depth+1)
		}
	}
	walk(f, 1)
	return entries
}
