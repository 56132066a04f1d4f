package components

import (
	"testing"

	"github.com/decker502/invaders/pkg/utils"
)

func newTestBarrier(hits int) *Barrier {
	return &Barrier{
		ID: 1,
		Blocks: []BarrierBlock{
			{X: 0, Y: 0, W: 10, H: 10, HitsRemaining: hits},
			{X: 10, Y: 0, W: 10, H: 10, HitsRemaining: hits},
		},
	}
}

func TestBarrierHitBlockNeedsExactlyKHits(t *testing.T) {
	for k := 1; k <= 3; k++ {
		b := newTestBarrier(k)
		for i := 1; i < k; i++ {
			if b.HitBlock(0) {
				t.Fatalf("hits=%d: block destroyed after only %d hits", k, i)
			}
		}
		if !b.HitBlock(0) {
			t.Errorf("hits=%d: block should be destroyed on hit %d", k, k)
		}
		if len(b.Blocks) != 1 {
			t.Errorf("hits=%d: expected 1 block left, got %d", k, len(b.Blocks))
		}
	}
}

func TestBarrierHitBlockOutOfRange(t *testing.T) {
	b := newTestBarrier(1)
	if b.HitBlock(-1) || b.HitBlock(5) {
		t.Error("out-of-range index should be a no-op")
	}
	if len(b.Blocks) != 2 {
		t.Errorf("expected 2 blocks, got %d", len(b.Blocks))
	}
}

func TestBarrierFirstOverlap(t *testing.T) {
	b := newTestBarrier(1)

	tests := []struct {
		name string
		r    utils.Rect
		want int
	}{
		{"命中第一块", utils.Rect{X: 2, Y: 2, W: 2, H: 2}, 0},
		{"命中第二块", utils.Rect{X: 15, Y: 2, W: 2, H: 2}, 1},
		{"跨两块取第一块", utils.Rect{X: 8, Y: 2, W: 4, H: 2}, 0},
		{"未命中", utils.Rect{X: 50, Y: 50, W: 2, H: 2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.FirstOverlap(tt.r); got != tt.want {
				t.Errorf("FirstOverlap: expected %d, got %d", tt.want, got)
			}
		})
	}
}
