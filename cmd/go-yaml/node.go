// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaml/go-yaml"
)

// treeWriter prints node trees as an indented outline:
//
//	Mapping
//	  ? Scalar "a"
//	  : Sequence flow
//	      - Scalar "1"
type treeWriter struct {
	w       io.Writer
	p       *palette
	profuse bool // show tags and styles of every node

	tree *yaml.Tree
	seen map[yaml.NodeID]bool
	err  error
}

func writeTrees(w io.Writer, trees []*yaml.Tree, profuse bool, p *palette) error {
	tw := &treeWriter{w: w, p: p, profuse: profuse}
	for i, t := range trees {
		if i > 0 {
			tw.printf("---\n")
		}
		tw.tree = t
		tw.seen = make(map[yaml.NodeID]bool)
		if t.Empty() {
			tw.printf("%s\n", p.kind.Sprint("Empty"))
			continue
		}
		tw.node(t.Root, "", "")
	}
	return tw.err
}

func (tw *treeWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *treeWriter) node(id yaml.NodeID, indent, prefix string) {
	n := tw.tree.Node(id)
	tw.printf("%s%s%s\n", indent, prefix, tw.describe(n))
	if tw.seen[id] {
		return
	}
	tw.seen[id] = true

	inner := indent + strings.Repeat(" ", len(prefix)) + "  "
	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Items {
			tw.node(item, inner, "- ")
		}
	case yaml.MappingNode:
		for _, p := range n.Pairs {
			tw.node(p.Key, inner, "? ")
			tw.node(p.Value, inner, ": ")
		}
	}
}

func (tw *treeWriter) describe(n *yaml.Node) string {
	parts := []string{tw.p.kind.Sprint(n.Kind.String())}
	if tw.profuse {
		parts = append(parts, tw.p.tag.Sprint(n.ShortTag()))
	}
	if n.Anchor != "" {
		parts = append(parts, tw.p.anchor.Sprint("&"+n.Anchor))
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if tw.profuse {
			parts = append(parts, strings.ToLower(n.Style.ScalarStyle().String()))
		}
		parts = append(parts, tw.p.value.Sprint(strconv.Quote(n.Value)))
	default:
		if n.Style&yaml.FlowStyle != 0 {
			parts = append(parts, "flow")
		} else if tw.profuse {
			parts = append(parts, "block")
		}
	}
	return strings.Join(parts, " ")
}
