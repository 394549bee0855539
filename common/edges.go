package common

// MakeTriangleEdges derives the unique undirected edge set of an indexed
// triangle list, for use as an index buffer under a LineList topology
// (wireframe overlay). indices is read three at a time, one triangle per
// group.
//
// Edges are deduplicated by the endpoints' positions in points (three
// floats per vertex, indexed by the values in indices), not by the index
// values themselves — geometry generators such as generateUnitSphere never
// share vertex entries between adjacent triangles, so position equality is
// the only way two triangles' shared edge is recognised as one edge.
//
// The returned slice holds index pairs (2*N entries for N unique edges);
// each pair names one occurrence of the edge's endpoints in indices.
func MakeTriangleEdges(points []float32, indices []uint32) []uint32 {
	type vertex [3]float32
	type edgeKey [2]vertex

	position := func(index uint32) vertex {
		i := int(index) * 3
		return vertex{points[i], points[i+1], points[i+2]}
	}

	canonicalKey := func(a, b vertex) edgeKey {
		if less(a, b) {
			return edgeKey{a, b}
		}
		return edgeKey{b, a}
	}

	seen := make(map[edgeKey]bool)
	var edges []uint32

	addEdge := func(i, j uint32) {
		key := canonicalKey(position(i), position(j))
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, i, j)
	}

	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		addEdge(a, b)
		addEdge(b, c)
		addEdge(c, a)
	}

	return edges
}

func less(a, b [3]float32) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
