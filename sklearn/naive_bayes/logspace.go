package naive_bayes

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// jointLogLikelihood computes [X | 1] . w, where w has one more row than X
// has columns (the last row holds the class log priors). A zero entry of X
// contributes nothing even when the matching weight is -Inf: an absent
// feature carries no evidence. When every weight is finite the product is
// delegated to BLAS.
func jointLogLikelihood(X mat.Matrix, w *mat.Dense, finite bool) *mat.Dense {
	rows, cols := X.Dims()
	_, k := w.Dims()

	if finite {
		aug := mat.NewDense(rows, cols+1, nil)
		aug.Slice(0, rows, 0, cols).(*mat.Dense).Copy(X)
		for i := 0; i < rows; i++ {
			aug.Set(i, cols, 1)
		}
		out := mat.NewDense(rows, k, nil)
		out.Mul(aug, w)
		return out
	}

	out := mat.NewDense(rows, k, nil)
	prior := w.RawRowView(cols)
	for i := 0; i < rows; i++ {
		row := out.RawRowView(i)
		copy(row, prior)
		for j := 0; j < cols; j++ {
			x := X.At(i, j)
			if x == 0 {
				continue
			}
			floats.AddScaled(row, x, w.RawRowView(j))
		}
	}
	return out
}

// normalizeLogRows subtracts the log-sum-exp of each row from that row, in
// place. A row whose exponentials sum to exactly zero (every entry -Inf)
// gets a normalizer of 0 and is left unchanged.
func normalizeLogRows(scores *mat.Dense) {
	rows, _ := scores.Dims()
	for i := 0; i < rows; i++ {
		row := scores.RawRowView(i)
		lse := floats.LogSumExp(row)
		if math.IsInf(lse, -1) {
			lse = 0
		}
		floats.AddConst(-lse, row)
	}
}

// argmaxRows returns the column of the largest entry in each row. Ties go
// to the lowest column.
func argmaxRows(scores *mat.Dense) []int {
	rows, cols := scores.Dims()
	idx := make([]int, rows)
	for i := 0; i < rows; i++ {
		row := scores.RawRowView(i)
		best := 0
		for c := 1; c < cols; c++ {
			if row[c] > row[best] {
				best = c
			}
		}
		idx[i] = best
	}
	return idx
}

// allFinite reports whether w holds no infinities or NaNs.
func allFinite(w *mat.Dense) bool {
	rows, _ := w.Dims()
	for i := 0; i < rows; i++ {
		for _, v := range w.RawRowView(i) {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}

// safeLog is math.Log with 0/0 taken as probability 0.
func safeLog(num, den float64) float64 {
	if den == 0 {
		return math.Inf(-1)
	}
	return math.Log(num / den)
}
