package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lenskit/internal/grid"
)

var (
	depositPositions string
	depositOrigin    string
	depositCellSize  string
	depositDims      string
	depositOutPath   string
	depositWorkers   int
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Deposit particle positions onto a regular 3-D grid",
	Long: `Reads whitespace-separated x y z rows from a positions file, bins each
particle into the enclosing grid cell (nearest-lower-cell assignment,
out-of-bounds particles silently dropped), and reports the deposited count.
With --out, the flat float32 grid is written in little-endian binary,
addressed as grid[i*ny*nz + j*nz + k].`,
	RunE: runDeposit,
}

func init() {
	depositCmd.Flags().StringVarP(&depositPositions, "positions", "p", "", "positions file, one x y z row per particle")
	depositCmd.Flags().StringVar(&depositOrigin, "origin", "0,0,0", "grid origin as x,y,z")
	depositCmd.Flags().StringVar(&depositCellSize, "cell-size", "1,1,1", "per-axis cell size as x,y,z")
	depositCmd.Flags().StringVar(&depositDims, "dims", "64,64,64", "grid dimensions as nx,ny,nz")
	depositCmd.Flags().StringVarP(&depositOutPath, "out", "o", "", "output path for the raw float32 grid")
	depositCmd.Flags().IntVar(&depositWorkers, "workers", 1, "parallel deposition workers (1 = sequential)")
	_ = depositCmd.MarkFlagRequired("positions")
}

func runDeposit(cmd *cobra.Command, args []string) error {
	origin, err := parseVec3(depositOrigin)
	if err != nil {
		return fmt.Errorf("invalid --origin: %w", err)
	}
	cellSize, err := parseVec3(depositCellSize)
	if err != nil {
		return fmt.Errorf("invalid --cell-size: %w", err)
	}
	dims, err := parseDims(depositDims)
	if err != nil {
		return fmt.Errorf("invalid --dims: %w", err)
	}

	positions, err := readPositions(depositPositions)
	if err != nil {
		return err
	}
	npart := len(positions) / 3

	buf := make([]float32, dims[0]*dims[1]*dims[2])
	if depositWorkers > 1 {
		grid.DepositParallel(positions, origin, cellSize, dims, buf, depositWorkers)
	} else {
		grid.Deposit(positions, origin, cellSize, dims, buf)
	}

	deposited := 0.0
	for _, v := range buf {
		deposited += float64(v)
	}
	logger.Info("particles deposited",
		zap.Int("particles", npart),
		zap.Int("deposited", int(deposited)),
		zap.Int("dropped", npart-int(deposited)))
	fmt.Printf("deposited %d of %d particles onto %dx%dx%d grid\n",
		int(deposited), npart, dims[0], dims[1], dims[2])

	if depositOutPath != "" {
		if err := writeGrid(depositOutPath, buf); err != nil {
			return fmt.Errorf("failed to write grid: %w", err)
		}
		logger.Info("grid written", zap.String("path", depositOutPath), zap.Int("cells", len(buf)))
	}
	return nil
}

// readPositions parses one x y z row per particle. Blank lines and lines
// starting with # are skipped.
func readPositions(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open positions: %w", err)
	}
	defer f.Close()

	var positions []float32
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("positions line %d: want 3 fields, got %d", line, len(fields))
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("positions line %d: %w", line, err)
			}
			positions = append(positions, float32(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	return positions, nil
}

func writeGrid(path string, buf []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
		return err
	}
	return w.Flush()
}

func parseVec3(s string) ([3]float64, error) {
	var v [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("want 3 comma-separated values, got %d", len(parts))
	}
	for i, part := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return v, err
		}
		v[i] = x
	}
	return v, nil
}

func parseDims(s string) ([3]int, error) {
	var d [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return d, fmt.Errorf("want 3 comma-separated values, got %d", len(parts))
	}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return d, err
		}
		if n < 1 {
			return d, fmt.Errorf("dimension %d must be positive", n)
		}
		d[i] = n
	}
	return d, nil
}
