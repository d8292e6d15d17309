package tablebase

import (
	"testing"

	"github.com/corvidchess/chessplay/internal/board"
)

func TestNoopProber(t *testing.T) {
	prober := NoopProber{}

	if prober.Available() {
		t.Error("NoopProber should not be available")
	}

	if prober.MaxPieces() != 0 {
		t.Errorf("NoopProber MaxPieces should be 0, got %d", prober.MaxPieces())
	}

	pos := board.NewPosition()
	result := prober.Probe(pos)
	if result.Found {
		t.Error("NoopProber should not find anything")
	}

	rootResult := prober.ProbeRoot(pos)
	if rootResult.Found {
		t.Error("NoopProber ProbeRoot should not find anything")
	}
}

func TestCountPieces(t *testing.T) {
	pos := board.NewPosition()
	count := CountPieces(pos)

	// Starting position has 32 pieces
	if count != 32 {
		t.Errorf("Starting position should have 32 pieces, got %d", count)
	}
}

func TestEncodeDecodeProbeResult(t *testing.T) {
	cases := []ProbeResult{
		{Found: false},
		{Found: true, WDL: WDLWin, DTZ: 42},
		{Found: true, WDL: WDLLoss, DTZ: -17},
		{Found: true, WDL: WDLDraw, DTZ: 0},
	}

	for _, r := range cases {
		got, ok := decodeProbeResult(encodeProbeResult(r))
		if !ok {
			t.Fatalf("decodeProbeResult failed for %+v", r)
		}
		if got != r {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, r)
		}
	}
}

func TestCachedProberMemoizesInMemory(t *testing.T) {
	counting := &countingProber{}
	cp := NewCachedProber(counting, 16)

	pos := board.NewPosition()
	first := cp.Probe(pos)
	second := cp.Probe(pos)

	if counting.calls != 1 {
		t.Errorf("expected inner prober to be called once, got %d", counting.calls)
	}
	if first != second {
		t.Errorf("cached results differ: %+v vs %+v", first, second)
	}
	if cp.HitRate() <= 0 {
		t.Errorf("expected a nonzero hit rate after a repeated probe, got %f", cp.HitRate())
	}
}

type countingProber struct {
	calls int
}

func (c *countingProber) Probe(pos *board.Position) ProbeResult {
	c.calls++
	return ProbeResult{Found: true, WDL: WDLDraw}
}

func (c *countingProber) ProbeRoot(pos *board.Position) RootResult { return RootResult{} }
func (c *countingProber) MaxPieces() int                           { return 7 }
func (c *countingProber) Available() bool                          { return true }

func TestWDLToScore(t *testing.T) {
	tests := []struct {
		wdl      WDL
		ply      int
		positive bool // Should score be positive (winning)?
	}{
		{WDLWin, 0, true},
		{WDLWin, 10, true},
		{WDLCursedWin, 0, true},
		{WDLDraw, 0, false},
		{WDLBlessedLoss, 0, false},
		{WDLLoss, 0, false},
	}

	for _, tc := range tests {
		score := WDLToScore(tc.wdl, tc.ply)
		isPositive := score > 0

		if tc.positive && !isPositive {
			t.Errorf("WDL %d at ply %d should give positive score, got %d", tc.wdl, tc.ply, score)
		}
		if !tc.positive && tc.wdl != WDLDraw && isPositive {
			t.Errorf("WDL %d at ply %d should give non-positive score, got %d", tc.wdl, tc.ply, score)
		}
	}
}
