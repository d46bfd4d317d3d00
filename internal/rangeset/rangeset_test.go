package rangeset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tniessen/btoep/internal/rangeset"
)

func Test_Insert_MergesTouchingAndOverlappingRanges(t *testing.T) {
	t.Parallel()

	s := rangeset.New()

	s.Insert(512, 640)
	requireRanges(t, s, []rangeset.Range{{512, 640}})

	s.Insert(1024, 1152)
	requireRanges(t, s, []rangeset.Range{{512, 640}, {1024, 1152}})

	// Fills the gap exactly: the three ranges coalesce into one.
	s.Insert(640, 1024)
	requireRanges(t, s, []rangeset.Range{{512, 1152}})

	// Superset swallows the existing range entirely.
	s.Insert(256, 1280)
	requireRanges(t, s, []rangeset.Range{{256, 1280}})
}

func Test_Insert_DoesNotMergeRangesSeparatedByAtLeastOneByte(t *testing.T) {
	t.Parallel()

	s := rangeset.New()
	s.Insert(0, 10)
	s.Insert(11, 20) // gap of exactly one byte at offset 10

	requireRanges(t, s, []rangeset.Range{{0, 10}, {11, 20}})
}

func Test_Insert_MergesRangesThatTouchExactly(t *testing.T) {
	t.Parallel()

	s := rangeset.New()
	s.Insert(0, 10)
	s.Insert(10, 20) // touching, no gap at all

	requireRanges(t, s, []rangeset.Range{{0, 20}})
}

func Test_Insert_PanicsOnDegenerateRange(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for start >= end")
		}
	}()

	rangeset.New().Insert(5, 5)
}

func Test_Query_FindsContainingRangeOrNone(t *testing.T) {
	t.Parallel()

	s := rangeset.New()
	s.Insert(129, 257) // inclusive [129,256]
	s.Insert(258, 386) // inclusive [258,385]

	cases := []struct {
		offset uint64
		want   rangeset.Range
		ok     bool
	}{
		{0, rangeset.Range{}, false},
		{128, rangeset.Range{}, false},
		{129, rangeset.Range{129, 257}, true},
		{256, rangeset.Range{129, 257}, true},
		{257, rangeset.Range{}, false},
		{258, rangeset.Range{258, 386}, true},
		{400, rangeset.Range{}, false},
	}

	for _, c := range cases {
		got, ok := s.Query(c.offset)
		if ok != c.ok || got != c.want {
			t.Fatalf("Query(%d) = (%v, %v), want (%v, %v)", c.offset, got, ok, c.want, c.ok)
		}
	}
}

func Test_FindNextData_AndFindNextMissing_MatchSpecScenario(t *testing.T) {
	t.Parallel()

	s := rangeset.New()
	s.Insert(129, 257)
	s.Insert(258, 386)

	nextData, ok := s.FindNextData(0)
	require.True(t, ok)
	require.EqualValues(t, 129, nextData)

	nextData, ok = s.FindNextData(257)
	require.True(t, ok)
	require.EqualValues(t, 258, nextData)

	_, ok = s.FindNextData(386)
	require.False(t, ok)

	require.EqualValues(t, 257, s.FindNextMissing(129))
}

func Test_IterComplement_ReturnsMaximalMissingRangesClippedToUpperBound(t *testing.T) {
	t.Parallel()

	s := rangeset.New()
	s.Insert(129, 257)
	s.Insert(258, 386)

	got := s.IterComplement(524288)
	want := []rangeset.Range{{0, 129}, {257, 258}, {386, 524288}}
	require.Equal(t, want, got)
}

func Test_Iter_FiltersWithoutReMerging(t *testing.T) {
	t.Parallel()

	s := rangeset.New()
	s.Insert(0, 300)   // long
	s.Insert(301, 302) // short: len 1, filtered out below
	s.Insert(400, 700) // long

	got := s.Iter(10)
	want := []rangeset.Range{{0, 300}, {400, 700}}
	require.Equal(t, want, got)
}

func Test_Clone_IsIndependentOfOriginal(t *testing.T) {
	t.Parallel()

	s := rangeset.New()
	s.Insert(0, 10)

	clone := s.Clone()
	clone.Insert(20, 30)

	require.Equal(t, 1, s.Len())
	require.Equal(t, 2, clone.Len())
}

func requireRanges(t *testing.T, s *rangeset.Set, want []rangeset.Range) {
	t.Helper()

	got := s.Iter(0)
	require.Equal(t, want, got)
}

// oracleModel is a deliberately naive reference implementation: a dense
// boolean array over a bounded universe. Insert sets every bit in range;
// every Set query is cross-checked against the equivalent oracle scan.
type oracleModel struct {
	present []bool
}

func newOracleModel(size int) *oracleModel {
	return &oracleModel{present: make([]bool, size)}
}

func (m *oracleModel) insert(start, end uint64) {
	for o := start; o < end; o++ {
		m.present[o] = true
	}
}

func (m *oracleModel) query(offset uint64) bool {
	return offset < uint64(len(m.present)) && m.present[offset]
}

func Test_Insert_AgreesWithBooleanOracleModel_UnderRandomSequences(t *testing.T) {
	t.Parallel()

	const universe = 2000

	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		s := rangeset.New()
		oracle := newOracleModel(universe)

		for step := 0; step < 40; step++ {
			start := uint64(rng.Intn(universe - 1))
			end := start + 1 + uint64(rng.Intn(universe-int(start)-1))

			s.Insert(start, end)
			oracle.insert(start, end)

			for probe := 0; probe < 30; probe++ {
				offset := uint64(rng.Intn(universe))

				r, ok := s.Query(offset)
				present := oracle.query(offset)

				require.Equalf(t, present, ok, "trial %d step %d offset %d", trial, step, offset)

				if ok {
					require.LessOrEqualf(t, r.Start, offset, "trial %d step %d", trial, step)
					require.Greaterf(t, r.End, offset, "trial %d step %d", trial, step)
				}
			}
		}
	}
}
