package cnf

import (
	"bufio"
	"fmt"
	"io"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

// VariableOrder lists every variable in the order a BDD variable-order
// file expects: each node's edge variables with their auxiliaries
// interleaved, then the variables of absent edges. The formula must have
// been built with [OrderingVariable].
func VariableOrder(g *kpartite.Graph, f *Formula) []int {
	return order(g, f, false)
}

// BucketOrder lists every variable in bucket-elimination order: each
// node's edge variables, then the auxiliaries raised while processing the
// previous nodes, then the variables of absent edges. The formula must
// have been built with [OrderingBucket].
func BucketOrder(g *kpartite.Graph, f *Formula) []int {
	return order(g, f, true)
}

func order(g *kpartite.Graph, f *Formula, bucket bool) []int {
	p := atLeastPartition(g)
	var out []int
	for n := 0; n < g.PartitionSize(p); n++ {
		vars := neighborVars(g, p, n, 1-p)
		for _, v := range vars {
			out = append(out, v)
			if !bucket && f.AuxFor[v] > 0 {
				out = append(out, f.AuxFor[v])
			}
		}
		if bucket && n > 0 {
			for _, v := range vars {
				if f.AuxFor[v] > 0 {
					out = append(out, f.AuxFor[v])
				}
			}
		}
	}
	return append(out, absentVars(g)...)
}

func atLeastPartition(g *kpartite.Graph) int {
	if g.PartitionSize(0) > g.PartitionSize(1) {
		return 0
	}
	return 1
}

// WriteOrder writes one variable per line, the format shared by bucket
// and variable-order files.
func WriteOrder(w io.Writer, vars []int) error {
	bw := bufio.NewWriter(w)
	for _, v := range vars {
		fmt.Fprintf(bw, "%d\n", v)
	}
	return bw.Flush()
}
