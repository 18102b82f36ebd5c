package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulatedDefaults(t *testing.T) {
	info := Simulated()
	require.Greater(t, info.FreeBytes, int64(0))
	require.Greater(t, info.TotalBytes, info.FreeBytes)
}

func TestPlanBudgetAmpleMemoryGivesSingleKernel(t *testing.T) {
	info := Simulated()
	budget, err := PlanBudget(info, 1024, 8192)
	require.NoError(t, err)
	require.Equal(t, 1, budget.K)
	require.False(t, budget.O)
}

func TestPlanBudgetInsufficientMemory(t *testing.T) {
	info := Info{FreeBytes: 1024, TotalBytes: 1024}
	_, err := PlanBudget(info, 1024, 8192)
	require.Error(t, err)
	var resErr *ResourceError
	require.ErrorAs(t, err, &resErr)
	require.Equal(t, int64(1024), resErr.Free)
}

func TestPlanBudgetTightMemoryForcesMultipleKernels(t *testing.T) {
	fixed := uint64(1024 + 4*(1024+1) + bookSize)
	m := uint64(MinRequiredBytes) + 100 // free - fixed - SafetyMarginBytes, by construction below
	info := Info{
		FreeBytes:  int64(fixed + m + SafetyMarginBytes),
		TotalBytes: 8 << 30,
	}
	totalBits := m*3 + 500

	budget, err := PlanBudget(info, 1024, totalBits)
	require.NoError(t, err)
	require.Greater(t, budget.K, 1)
}

func TestPlanBudgetZeroFreeBytesIsInsufficient(t *testing.T) {
	_, err := PlanBudget(Info{}, 10, 80)
	require.Error(t, err)
}
