package fec

// RowReduce runs Gauss-Jordan elimination in place on the augmented n x (n+1)
// matrix m. Pivots are taken in diagonal order; a column with no nonzero
// entry on or below the diagonal is skipped and its unknown reads as zero.
// After a successful reduction, m[i][n] is the value of unknown i.
func RowReduce(f Field, m [][]int) error {
	n := len(m)
	for _, row := range m {
		if len(row) != n+1 {
			return ErrMatrixShape
		}
	}

	for col := 0; col < n; col++ {
		if m[col][col] == 0 {
			for r := col + 1; r < n; r++ {
				if m[r][col] != 0 {
					m[col], m[r] = m[r], m[col]
					break
				}
			}
		}
		if m[col][col] == 0 {
			continue
		}
		inv, err := f.Reciprocal(m[col][col])
		if err != nil {
			return err
		}
		rowScale(f, m[col], col, inv)
		for r := col + 1; r < n; r++ {
			rowAddMultiple(f, m[r], m[col], col, f.Negate(m[r][col]))
		}
	}

	for col := n - 1; col > 0; col-- {
		for r := 0; r < col; r++ {
			rowAddMultiple(f, m[r], m[col], col, f.Negate(m[r][col]))
		}
	}
	return nil
}

// rowScale multiplies row[from:] by s. Entries before from are zero.
func rowScale(f Field, row []int, from, s int) {
	for j := from; j < len(row); j++ {
		row[j] = f.Mul(row[j], s)
	}
}

// rowAddMultiple adds s*src to dst, touching columns from onwards.
func rowAddMultiple(f Field, dst, src []int, from, s int) {
	if s == 0 {
		return
	}
	for j := from; j < len(dst); j++ {
		if src[j] != 0 {
			dst[j] = f.Add(dst[j], f.Mul(src[j], s))
		}
	}
}
