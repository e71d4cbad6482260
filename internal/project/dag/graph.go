package dag

import (
	"slices"

	"basedef/internal/project"
)

// Graph holds import edges between program files. Cycles are allowed.
type Graph struct {
	Edges [][]FileID // Edges[from] = []to, отсортированы, без дублей и self-loop
}

func BuildGraph(idx FileIndex, metas []project.FileMeta) Graph {
	g := Graph{Edges: make([][]FileID, len(idx.IDToPath))}
	for _, meta := range metas {
		from, ok := idx.PathToID[meta.Path]
		if !ok {
			continue
		}
		for _, imp := range meta.Imports {
			to, ok := idx.PathToID[imp.Path]
			if !ok || to == from || slices.Contains(g.Edges[from], to) {
				continue
			}
			g.Edges[from] = append(g.Edges[from], to)
		}
		slices.Sort(g.Edges[from])
	}
	return g
}

// Reachable returns every file reachable from id through imports, sorted,
// excluding id itself.
func (g Graph) Reachable(id FileID) []FileID {
	seen := map[FileID]bool{id: true}
	stack := append([]FileID(nil), g.Edges[id]...)
	var out []FileID
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
		stack = append(stack, g.Edges[n]...)
	}
	slices.Sort(out)
	return out
}

// ComputeHashes fills metas[i].Hash with Combine over the file's own content
// hash and the content hashes of everything it reaches, in path order.
// Per-file closures keep the result stable under import cycles.
func ComputeHashes(metas []project.FileMeta) FileIndex {
	idx := BuildIndex(metas)
	g := BuildGraph(idx, metas)
	content := make([]project.Digest, len(idx.IDToPath))
	for _, meta := range metas {
		if id, ok := idx.PathToID[meta.Path]; ok {
			content[id] = meta.ContentHash
		}
	}
	for i := range metas {
		id, ok := idx.PathToID[metas[i].Path]
		if !ok {
			metas[i].Hash = project.Combine(metas[i].ContentHash)
			continue
		}
		reach := g.Reachable(id)
		deps := make([]project.Digest, len(reach))
		for j, dep := range reach {
			deps[j] = content[dep]
		}
		metas[i].Hash = project.Combine(metas[i].ContentHash, deps...)
	}
	return idx
}
