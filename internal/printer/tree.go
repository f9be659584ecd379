package printer

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

var (
	treeRootStyle = lipgloss.NewStyle().Bold(true)
	treeEnumStyle = lipgloss.NewStyle().Faint(true).MarginRight(1)
)

// Node is a labelled entry in a rendered tree.
type Node struct {
	Label    string
	Children []Node
}

// Tree renders nodes as a rounded lipgloss tree under a bold root label.
func Tree(root string, nodes []Node) string {
	t := tree.Root(root).
		RootStyle(treeRootStyle).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle)
	for _, n := range nodes {
		t.Child(buildTree(n))
	}
	return t.String()
}

func buildTree(n Node) any {
	if len(n.Children) == 0 {
		return n.Label
	}
	t := tree.Root(n.Label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle)
	for _, c := range n.Children {
		t.Child(buildTree(c))
	}
	return t
}
