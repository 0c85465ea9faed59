package assignment

import (
	"errors"
	"math"
)

// https://en.wikipedia.org/wiki/Hungarian_algorithm

// Hungarian solves minimum-cost assignment problems, here: matching
// deficit intersections to surplus intersections of the route-inspection
// multigraph.
type Hungarian struct{}

func NewHungarian() *Hungarian {
	return &Hungarian{}
}

// padMatrix adds dummy rows/columns until the matrix is square.
func padMatrix(matrix [][]float64) [][]float64 {
	iSize := len(matrix)
	jSize := len(matrix[0])

	if iSize > jSize {
		for i := range matrix {
			for len(matrix[i]) < iSize {
				matrix[i] = append(matrix[i], math.MaxFloat64)
			}
		}
	} else if iSize < jSize {
		for len(matrix) < jSize {
			row := make([]float64, jSize)
			for i := range row {
				row[i] = math.MaxFloat64
			}
			matrix = append(matrix, row)
		}
	}
	return matrix
}

// step1 subtract each row's minimum from the row, then each column's
// minimum from the column.
func step1(matrix [][]float64, step *int) {
	for i := range matrix {
		min := math.MaxFloat64
		for _, val := range matrix[i] {
			if val < min {
				min = val
			}
		}
		if min > 0 {
			for j := range matrix[i] {
				matrix[i][j] -= min
			}
		}
	}

	sz := len(matrix)
	for j := 0; j < sz; j++ {
		min := math.MaxFloat64
		for i := 0; i < sz; i++ {
			if matrix[i][j] < min {
				min = matrix[i][j]
			}
		}
		if min > 0 {
			for i := 0; i < sz; i++ {
				matrix[i][j] -= min
			}
		}
	}

	*step = 2
}

func clearCovers(cover []int) {
	for i := range cover {
		cover[i] = 0
	}
}

// step2 star a zero in every row/column not yet covered.
func step2(matrix [][]float64, M [][]int, RowCover, ColCover []int, step *int) {
	sz := len(matrix)
	for r := 0; r < sz; r++ {
		for c := 0; c < sz; c++ {
			if matrix[r][c] == 0 && RowCover[r] == 0 && ColCover[c] == 0 {
				M[r][c] = 1
				RowCover[r] = 1
				ColCover[c] = 1
			}
		}
	}
	clearCovers(RowCover)
	clearCovers(ColCover)
	*step = 3
}

// step3 cover all columns containing a starred zero; done when every
// column is covered.
func step3(M [][]int, ColCover []int, step *int) {
	sz := len(M)
	colCount := 0
	for r := 0; r < sz; r++ {
		for c := 0; c < sz; c++ {
			if M[r][c] == 1 {
				ColCover[c] = 1
			}
		}
	}

	for _, n := range ColCover {
		if n == 1 {
			colCount++
		}
	}

	if colCount >= sz {
		*step = 7 // solution found
	} else {
		*step = 4
	}
}

func findAZero(matrix [][]float64, RowCover, ColCover []int) (int, int) {
	sz := len(matrix)
	for r := 0; r < sz; r++ {
		for c := 0; c < sz; c++ {
			if matrix[r][c] == 0 && RowCover[r] == 0 && ColCover[c] == 0 {
				return r, c
			}
		}
	}
	return -1, -1
}

func starInRow(row int, M [][]int) bool {
	for _, val := range M[row] {
		if val == 1 {
			return true
		}
	}
	return false
}

func findStarInRow(row int, M [][]int) int {
	for c, val := range M[row] {
		if val == 1 {
			return c
		}
	}
	return -1
}

// step4 prime a non-covered zero. If its row has a starred zero, cover
// the row and uncover the star's column; otherwise start the augmenting
// path of step5 at the primed zero. No non-covered zero left -> step6.
func step4(matrix [][]float64, M [][]int, RowCover, ColCover []int, pathRow0, pathCol0 *int, step *int) {
	for {
		r, c := findAZero(matrix, RowCover, ColCover)
		if r == -1 {
			*step = 6
			return
		}

		M[r][c] = 2
		if starInRow(r, M) {
			starCol := findStarInRow(r, M)
			RowCover[r] = 1
			ColCover[starCol] = 0
		} else {
			*pathRow0 = r
			*pathCol0 = c
			*step = 5
			return
		}
	}
}

func findStarInCol(c int, M [][]int) int {
	for r := 0; r < len(M); r++ {
		if M[r][c] == 1 {
			return r
		}
	}
	return -1
}

func findPrimeInRow(r int, M [][]int) int {
	for c, val := range M[r] {
		if val == 2 {
			return c
		}
	}
	return -1
}

// augmentPath star primed zeros and unstar starred zeros along the path.
func augmentPath(path [][]int, pathCount int, M [][]int) {
	for p := 0; p < pathCount; p++ {
		r, c := path[p][0], path[p][1]
		if M[r][c] == 1 {
			M[r][c] = 0
		} else {
			M[r][c] = 1
		}
	}
}

func erasePrimes(M [][]int) {
	for r := 0; r < len(M); r++ {
		for c := 0; c < len(M[r]); c++ {
			if M[r][c] == 2 {
				M[r][c] = 0
			}
		}
	}
}

// step5 build the alternating star/prime path from the zero primed in
// step4, flip stars along it, clear covers and primes, back to step3.
func step5(path [][]int, pathRow0, pathCol0 int, M [][]int, RowCover, ColCover []int, step *int) {
	r := -1
	c := -1
	pathCount := 1

	path[pathCount-1][0] = pathRow0
	path[pathCount-1][1] = pathCol0

	for {
		r = findStarInCol(path[pathCount-1][1], M)
		if r > -1 {
			pathCount++
			path[pathCount-1][0] = r
			path[pathCount-1][1] = path[pathCount-2][1]
		} else {
			break
		}

		c = findPrimeInRow(path[pathCount-1][0], M)
		if c != -1 {
			pathCount++
			path[pathCount-1][0] = path[pathCount-2][0]
			path[pathCount-1][1] = c
		} else {
			break
		}
	}

	augmentPath(path, pathCount, M)
	clearCovers(RowCover)
	clearCovers(ColCover)
	erasePrimes(M)
	*step = 3
}

func findSmallest(matrix [][]float64, RowCover, ColCover []int) float64 {
	minval := math.MaxFloat64
	for r := 0; r < len(matrix); r++ {
		for c := 0; c < len(matrix[r]); c++ {
			if RowCover[r] == 0 && ColCover[c] == 0 && matrix[r][c] < minval {
				minval = matrix[r][c]
			}
		}
	}
	return minval
}

// step6 subtract the smallest uncovered value from every uncovered
// element, add it to every doubly covered one, back to step4.
func step6(matrix [][]float64, RowCover, ColCover []int, step *int) {
	minval := findSmallest(matrix, RowCover, ColCover)
	for r := 0; r < len(matrix); r++ {
		for c := 0; c < len(matrix[r]); c++ {
			if RowCover[r] == 1 {
				matrix[r][c] += minval
			}
			if ColCover[c] == 0 {
				matrix[r][c] -= minval
			}
		}
	}
	*step = 4
}

func outputSolution(original [][]float64, M [][]int) float64 {
	res := 0.0
	for r := 0; r < len(original); r++ {
		for c := 0; c < len(original[r]); c++ {
			if M[r][c] == 1 {
				res += original[r][c]
			}
		}
	}
	return res
}

// Solve returns the optimal total cost and the row -> column matching
// for the given cost matrix. Rectangular matrices are padded internally;
// dummy rows/columns never appear in the returned matching.
func (h *Hungarian) Solve(original [][]float64) (float64, map[int]int, error) {
	if len(original) == 0 || len(original[0]) == 0 {
		return 0, map[int]int{}, errors.New("empty matrix")
	}

	matrix := make([][]float64, len(original))
	for i := range original {
		matrix[i] = make([]float64, len(original[i]))
		copy(matrix[i], original[i])
	}

	matrix = padMatrix(matrix)
	sz := len(matrix)

	// M[i][j] == 1 when matrix[i][j] is starred, == 2 when primed
	M := make([][]int, sz)
	for i := range M {
		M[i] = make([]int, sz)
	}

	RowCover := make([]int, sz)
	ColCover := make([]int, sz)

	path := make([][]int, sz+1)
	for i := range path {
		path[i] = make([]int, 2)
	}

	step := 1
	done := false
	for !done {
		switch step {
		case 1:
			step1(matrix, &step)
		case 2:
			step2(matrix, M, RowCover, ColCover, &step)
		case 3:
			step3(M, ColCover, &step)
		case 4:
			step4(matrix, M, RowCover, ColCover, &path[0][0], &path[0][1], &step)
		case 5:
			step5(path, path[0][0], path[0][1], M, RowCover, ColCover, &step)
		case 6:
			step6(matrix, RowCover, ColCover, &step)
		case 7:
			for i := 0; i < len(original); i++ {
				M[i] = M[i][:len(original[i])]
			}
			M = M[:len(original)]
			done = true
		default:
			done = true
		}
	}

	total := outputSolution(original, M)
	match := make(map[int]int)
	for i := 0; i < len(M); i++ {
		for j := 0; j < len(M[i]); j++ {
			if M[i][j] == 1 {
				match[i] = j
			}
		}
	}
	return total, match, nil
}
