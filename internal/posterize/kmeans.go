package posterize

// DefaultMaxIterations bounds Lloyd's loop.
const DefaultMaxIterations = 100

// Cluster is one K-means center with the tallies of its last iteration.
type Cluster struct {
	Center int `json:"center"` // 0..255
	Sum    int `json:"sum"`
	Count  int `json:"count"`
}

// ClusterSet is the outcome of KMeans.
type ClusterSet struct {
	Clusters   []Cluster `json:"clusters"`
	Iterations int       `json:"iterations"`

	// Converged is false when the iteration cap stopped the loop; the
	// clusters are then those of the last iteration run.
	Converged bool `json:"converged"`
}

// Centers returns the current center levels.
func (cs ClusterSet) Centers() []int {
	out := make([]int, len(cs.Clusters))
	for i, c := range cs.Clusters {
		out[i] = c.Center
	}
	return out
}

// Nearest returns the index of the center closest to level. Ties go to
// the lowest index.
func (cs ClusterSet) Nearest(level int) int {
	best, bestD := 0, -1
	for k, c := range cs.Clusters {
		d := c.Center - level
		if d < 0 {
			d = -d
		}
		if bestD < 0 || d < bestD {
			best, bestD = k, d
		}
	}
	return best
}

// KMeans runs Lloyd's algorithm over integer levels starting from init.
// Each pass assigns every level to its nearest center and moves each center
// to the integer mean of its members; an empty cluster resets to 0. The loop
// stops when no center moves, or after maxIter passes (<= 0 means
// DefaultMaxIterations).
func KMeans(levels []int, init []int, maxIter int) ClusterSet {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	cs := ClusterSet{Clusters: make([]Cluster, len(init))}
	for k, c := range init {
		cs.Clusters[k].Center = c
	}
	if len(init) == 0 {
		cs.Converged = true
		return cs
	}

	for cs.Iterations < maxIter {
		cs.Iterations++
		for k := range cs.Clusters {
			cs.Clusters[k].Sum = 0
			cs.Clusters[k].Count = 0
		}

		for _, l := range levels {
			k := cs.Nearest(l)
			cs.Clusters[k].Sum += l
			cs.Clusters[k].Count++
		}

		shift := 0
		for k := range cs.Clusters {
			c := &cs.Clusters[k]
			next := 0
			if c.Count > 0 {
				next = c.Sum / c.Count
			}
			d := next - c.Center
			if d < 0 {
				d = -d
			}
			shift = max(shift, d)
			c.Center = next
		}

		if shift == 0 {
			cs.Converged = true
			break
		}
	}
	return cs
}
