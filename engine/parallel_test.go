package engine

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
)

func TestParallelFullScanMatchesSerialResult(t *testing.T) {
	value := int32(0x7c7c7c7c)
	defer runtime.KeepAlive(&value)

	opts := memtype.ScanOptions{
		DataType:    memtype.I32,
		MatchType:   memtype.EqualTo,
		Step:        1,
		BlockSize:   1 << 16,
		RegionLevel: memtype.LevelAll,
	}
	user := memtype.NewIntUserValue(int64(value), int64(value))

	serial, serialStats, err := FullScan(os.Getpid(), opts, user, nil, nil)
	assert.NoError(t, err)

	parallel, parallelStats, err := ParallelFullScan(os.Getpid(), opts, user, nil, nil, 4)
	assert.NoError(t, err)

	assert.Equal(t, serial.MatchCount(), parallel.MatchCount())
	assert.Equal(t, serialStats.Matches, parallelStats.Matches)
}

func TestEffectiveWorkersCapsAtRegionCount(t *testing.T) {
	assert.Equal(t, 3, effectiveWorkers(8, 3))
	assert.Equal(t, 2, effectiveWorkers(2, 8))
	assert.Equal(t, runtime.NumCPU(), effectiveWorkers(0, runtime.NumCPU()+10))
}

func TestParallelFullScanSingleWorkerFallsBackToSerial(t *testing.T) {
	opts := memtype.ScanOptions{
		DataType:    memtype.I32,
		MatchType:   memtype.EqualTo,
		Step:        1,
		BlockSize:   1 << 16,
		RegionLevel: memtype.LevelAll,
	}
	user := memtype.NewIntUserValue(1, 1)

	_, stats, err := ParallelFullScan(os.Getpid(), opts, user, nil, nil, 1)
	assert.NoError(t, err)
	assert.Greater(t, stats.RegionsVisited, 0)
}
