package scoring

// solveAssignment solves the square minimum-cost assignment problem exactly
// in O(n^3) (Hungarian algorithm with row/column potentials). cost must be
// an n x n matrix; the returned slice maps each row to its assigned column.
//
// The LEA matcher feeds it a padded matrix with cost = MaxLinkScore - score,
// so the minimum-cost assignment is the maximum-weight matching.
func solveAssignment(cost [][]int) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}

	const inf = int(^uint(0) >> 1)

	// 1-indexed potentials and column assignment, per the classic
	// formulation; index 0 is the virtual unassigned row.
	u := make([]int, n+1)
	v := make([]int, n+1)
	p := make([]int, n+1)   // p[j] = row assigned to column j
	way := make([]int, n+1) // predecessor column on the augmenting path

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]int, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Trace the augmenting path back, flipping assignments.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			assignment[p[j]-1] = j - 1
		}
	}
	return assignment
}
