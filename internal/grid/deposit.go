// Package grid deposits particle positions onto a regular 3-D lattice using
// nearest-lower-cell assignment. Each in-bounds particle adds unit weight to
// exactly one cell; out-of-bounds particles are silently dropped.
package grid

import "fmt"

// Deposit bins the flat xyz position array onto the caller-allocated flat
// grid buffer, laid out as grid[i*ny*nz + j*nz + k]. The buffer accumulates:
// it is not cleared first.
//
// Cell indices are computed as int((pos - origin)/cellSize), truncating
// toward zero. For positions less than one cell size below the origin the
// quotient is a negative fraction that truncates to index 0, so such
// particles land in the first cell rather than being dropped. This matches
// the upstream plane-building convention and must not be changed to floor.
//
// Length contracts: len(positions) must be a multiple of 3 and len(buf) must
// equal nx*ny*nz; violations panic.
func Deposit(positions []float32, origin, cellSize [3]float64, dims [3]int, buf []float32) {
	checkContracts(positions, dims, buf)
	deposit(positions, origin, cellSize, dims, buf)
}

func deposit(positions []float32, origin, cellSize [3]float64, dims [3]int, buf []float32) {
	nx, ny, nz := dims[0], dims[1], dims[2]
	npart := len(positions) / 3
	for n := 0; n < npart; n++ {
		i := int((float64(positions[3*n]) - origin[0]) / cellSize[0])
		j := int((float64(positions[3*n+1]) - origin[1]) / cellSize[1])
		k := int((float64(positions[3*n+2]) - origin[2]) / cellSize[2])

		if i >= 0 && i < nx && j >= 0 && j < ny && k >= 0 && k < nz {
			buf[i*ny*nz+j*nz+k] += 1.0
		}
	}
}

func checkContracts(positions []float32, dims [3]int, buf []float32) {
	if len(positions)%3 != 0 {
		panic(fmt.Sprintf("grid: position array length %d is not a multiple of 3", len(positions)))
	}
	if dims[0] < 1 || dims[1] < 1 || dims[2] < 1 {
		panic(fmt.Sprintf("grid: invalid dimensions %v", dims))
	}
	if want := dims[0] * dims[1] * dims[2]; len(buf) != want {
		panic(fmt.Sprintf("grid: buffer length %d does not match %dx%dx%d", len(buf), dims[0], dims[1], dims[2]))
	}
}
