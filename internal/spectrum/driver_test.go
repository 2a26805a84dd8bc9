package spectrum

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"lenskit/internal/cosmo"
	"lenskit/internal/kernel"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeKernel hands out fakeModels and records them so tests can assert on
// handle lifetimes.
type fakeKernel struct {
	constructErr error
	failEll      float64
	failI, failJ int
	models       []*fakeModel
}

func newFakeKernel() *fakeKernel {
	return &fakeKernel{failEll: -1, failI: -1, failJ: -1}
}

func (k *fakeKernel) NewModel(spec kernel.ModelSpec) (kernel.Model, error) {
	if k.constructErr != nil {
		return nil, k.constructErr
	}
	m := &fakeModel{failEll: k.failEll, failI: k.failI, failJ: k.failJ}
	k.models = append(k.models, m)
	return m, nil
}

// fakeModel encodes (ell, i, j) into the returned value so tests can verify
// buffer placement, and counts Close calls.
type fakeModel struct {
	failEll      float64
	failI, failJ int
	closes       int
}

func encode(ell float64, i, j int) float64 {
	return ell*100 + float64(i)*10 + float64(j)
}

func (m *fakeModel) Pshear(ell float64, i, j int) (float64, error) {
	if ell == m.failEll || (i == m.failI && j == m.failJ) {
		return 0, fmt.Errorf("kernel: interpolation failure at ell=%g (%d,%d)", ell, i, j)
	}
	return encode(ell, i, j), nil
}

func (m *fakeModel) Close() error {
	m.closes++
	if m.closes > 1 {
		return errors.New("fake model closed twice")
	}
	return nil
}

func spec(mode cosmo.Tomography, nbins int) kernel.ModelSpec {
	return kernel.ModelSpec{
		NzBins:   nbins,
		Settings: cosmo.Settings{Tomography: mode},
	}
}

func TestCompute_AutoOnlyPlacement(t *testing.T) {
	k := newFakeKernel()
	ell := []float64{100, 200}

	table, err := Compute(context.Background(), k, spec(cosmo.TomoAutoOnly, 4), ell, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, table.NumEll())
	assert.Equal(t, 4, table.NumPairs())
	for l, ellVal := range ell {
		for i := 0; i < 4; i++ {
			assert.Equal(t, encode(ellVal, i, i), table.At(l, i), "row %d bin %d", l, i)
		}
	}

	require.Len(t, k.models, 1)
	assert.Equal(t, 1, k.models[0].closes, "model released exactly once")
}

func TestCompute_AllPairsPlacement(t *testing.T) {
	k := newFakeKernel()
	ell := []float64{50}

	table, err := Compute(context.Background(), k, spec(cosmo.TomoAll, 2), ell, Options{})
	require.NoError(t, err)

	require.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 1}}, table.Pairs)
	assert.Equal(t, encode(50, 0, 0), table.At(0, 0))
	assert.Equal(t, encode(50, 0, 1), table.At(0, 1))
	assert.Equal(t, encode(50, 1, 1), table.At(0, 2))
}

func TestCompute_CrossOnlySingleBin(t *testing.T) {
	k := newFakeKernel()

	table, err := Compute(context.Background(), k, spec(cosmo.TomoCrossOnly, 1), []float64{10}, Options{})
	require.ErrorIs(t, err, ErrEmptyComputation)
	assert.Nil(t, table)

	// The model was already built when sizing failed; it must still be
	// released exactly once.
	require.Len(t, k.models, 1)
	assert.Equal(t, 1, k.models[0].closes)
}

func TestCompute_ConstructionFailure(t *testing.T) {
	k := newFakeKernel()
	k.constructErr = errors.New("kernel: omega_m out of range")

	table, err := Compute(context.Background(), k, spec(cosmo.TomoAll, 2), []float64{10}, Options{})
	require.Error(t, err)
	assert.Nil(t, table)

	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.ErrorContains(t, err, "omega_m out of range")
	assert.Empty(t, k.models)
}

func TestCompute_KernelFailureAbortsWholeComputation(t *testing.T) {
	k := newFakeKernel()
	k.failI, k.failJ = 1, 2

	table, err := Compute(context.Background(), k, spec(cosmo.TomoAll, 3), []float64{10, 20, 30}, Options{})
	require.Error(t, err)
	assert.Nil(t, table, "no partial output on kernel failure")

	var compErr *ComputeError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, 1, compErr.I)
	assert.Equal(t, 2, compErr.J)
	assert.Equal(t, 10.0, compErr.Ell, "aborted at the first multipole")

	require.Len(t, k.models, 1)
	assert.Equal(t, 1, k.models[0].closes)
}

func TestCompute_Idempotent(t *testing.T) {
	ell := []float64{10, 100, 1000}

	a, err := Compute(context.Background(), newFakeKernel(), spec(cosmo.TomoAll, 3), ell, Options{})
	require.NoError(t, err)
	b, err := Compute(context.Background(), newFakeKernel(), spec(cosmo.TomoAll, 3), ell, Options{})
	require.NoError(t, err)

	if diff := cmp.Diff(a.Data, b.Data); diff != "" {
		t.Errorf("repeated computation differs (-first +second):\n%s", diff)
	}
}

func TestCompute_ParallelMatchesSequential(t *testing.T) {
	ell := make([]float64, 40)
	for i := range ell {
		ell[i] = float64(10 * (i + 1))
	}

	seq, err := Compute(context.Background(), newFakeKernel(), spec(cosmo.TomoAll, 4), ell, Options{})
	require.NoError(t, err)
	par, err := Compute(context.Background(), newFakeKernel(), spec(cosmo.TomoAll, 4), ell, Options{Workers: 4})
	require.NoError(t, err)

	if diff := cmp.Diff(seq.Data, par.Data); diff != "" {
		t.Errorf("parallel differs from sequential (-seq +par):\n%s", diff)
	}
}

func TestCompute_ParallelFailureAborts(t *testing.T) {
	k := newFakeKernel()
	k.failEll = 200

	ell := make([]float64, 30)
	for i := range ell {
		ell[i] = float64(10 * (i + 1))
	}

	table, err := Compute(context.Background(), k, spec(cosmo.TomoAll, 2), ell, Options{Workers: 4})
	require.Error(t, err)
	assert.Nil(t, table)

	var compErr *ComputeError
	require.ErrorAs(t, err, &compErr)

	require.Len(t, k.models, 1)
	assert.Equal(t, 1, k.models[0].closes)
}

func TestCompute_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table, err := Compute(ctx, newFakeKernel(), spec(cosmo.TomoAll, 2), []float64{10}, Options{})
	require.Error(t, err)
	assert.Nil(t, table)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompute_ParallelCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	k := newFakeKernel()
	ell := []float64{10, 20, 30}

	// A canceled computation leaves rows unfilled; it must never surface
	// as a successful (zero-filled) table.
	table, err := Compute(ctx, k, spec(cosmo.TomoAll, 3), ell, Options{Workers: 4})
	require.Error(t, err)
	assert.Nil(t, table)
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, k.models, 1)
	assert.Equal(t, 1, k.models[0].closes, "model released exactly once")
}
