// Package object discovers a service's object tree via recursive
// introspection and flattens it into a path → interface-set map.
package object

import (
	"encoding/xml"
	"strings"

	"github.com/godbus/dbus/v5/introspect"
)

// DefaultMaxDepth bounds the recursive walk. The remote service is
// untrusted; a tree deeper than this is truncated rather than followed.
const DefaultMaxDepth = 32

// Introspecter is the single bus operation the walker needs: the raw
// introspection XML for one object path on one service.
type Introspecter interface {
	Introspect(service, path string) (string, error)
}

// Node is one object in a service's tree.
//
// Interfaces carries the sentinel distinction the flattening rules
// depend on: nil means introspection failed for this node (its subtree
// is unknowable), while an empty non-nil slice means introspection
// succeeded and the object declares no interfaces.
type Node struct {
	Path       string
	Interfaces []string
	Children   []*Node
}

// ChildPath joins a child segment onto a parent path. The root path is
// the empty string; joining the empty segment onto it yields "/".
func ChildPath(parent, name string) string {
	if parent == "/" {
		parent = ""
	}
	return parent + "/" + name
}

// Walk discovers the object tree of service, starting at the root path.
// It never returns an error: introspection failures are recorded in the
// affected node's Interfaces sentinel and prune only that subtree.
func Walk(in Introspecter, service string, maxDepth int) *Node {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	root := &Node{Path: ChildPath("", "")}
	walk(in, service, root, maxDepth)
	return root
}

func walk(in Introspecter, service string, node *Node, depth int) {
	data, err := in.Introspect(service, node.Path)
	if err != nil {
		return // Interfaces stays nil: failure sentinel
	}
	var parsed introspect.Node
	if err := xml.Unmarshal([]byte(data), &parsed); err != nil {
		return
	}
	node.Interfaces = make([]string, 0, len(parsed.Interfaces))
	for _, iface := range parsed.Interfaces {
		if iface.Name == "" {
			continue
		}
		node.Interfaces = append(node.Interfaces, iface.Name)
	}
	if depth <= 1 {
		// Depth bound reached: keep this node's interfaces but do not
		// probe its children.
		return
	}
	for _, child := range parsed.Children {
		// Child names are relative segments. A name with a separator
		// could walk the tree sideways or upwards; drop it.
		if child.Name == "" || strings.Contains(child.Name, "/") {
			continue
		}
		cn := &Node{Path: ChildPath(node.Path, child.Name)}
		node.Children = append(node.Children, cn)
		walk(in, service, cn, depth-1)
	}
}

// Failed reports whether introspection failed for the node itself.
func (n *Node) Failed() bool {
	return n.Interfaces == nil
}

// Flatten reduces the tree to a map of object path to interface names.
// A failed node contributes nothing and excludes its subtree. A
// successful non-root node with no interfaces is purely organizational:
// it contributes no entry of its own but its children are still
// flattened. The root always contributes an entry when it was
// introspectable, even with no interfaces.
func (n *Node) Flatten() map[string][]string {
	out := make(map[string][]string)
	n.flattenInto(out, true)
	return out
}

func (n *Node) flattenInto(out map[string][]string, root bool) {
	if n.Failed() {
		return
	}
	if root || len(n.Interfaces) > 0 {
		out[n.Path] = n.Interfaces
	}
	for _, child := range n.Children {
		child.flattenInto(out, false)
	}
}
