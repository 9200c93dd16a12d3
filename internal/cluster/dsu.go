package cluster

// dsu is a disjoint-set union over array indices with path compression
// and union by attaching roots, used to turn the pairwise grouping
// predicate into its transitive closure.
type dsu struct {
	parent []int
}

func newDSU(n int) *dsu {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &dsu{parent: parent}
}

func (d *dsu) find(i int) int {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

func (d *dsu) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra != rb {
		d.parent[rb] = ra
	}
}
