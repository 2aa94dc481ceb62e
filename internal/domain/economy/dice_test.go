package economy

import "testing"

func TestIntBetweenInclusiveBounds(t *testing.T) {
	r := NewRoller(1)

	seen := map[int]bool{}
	for range 1000 {
		v := r.IntBetween(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("draw %d out of [3,5]", v)
		}
		seen[v] = true
	}
	for want := 3; want <= 5; want++ {
		if !seen[want] {
			t.Errorf("never drew %d in 1000 rolls", want)
		}
	}
}

func TestIntBetweenSingleValue(t *testing.T) {
	r := NewRoller(1)
	if v := r.IntBetween(7, 7); v != 7 {
		t.Fatalf("expected 7, got %d", v)
	}
}

func TestMagnitudePositiveAndBounded(t *testing.T) {
	r := NewRoller(42)

	for _, factor := range []int{1, 5, 10} {
		for range 1000 {
			v := r.Magnitude(factor)
			if v <= 0 {
				t.Fatalf("magnitude must be positive, got %v", v)
			}
			if v > float64(factor) {
				t.Fatalf("magnitude %v exceeds factor %d", v, factor)
			}
		}
	}
}

func TestMagnitudeScalesWithFactor(t *testing.T) {
	r := NewRoller(7)

	mean := func(factor int) float64 {
		var sum float64
		const n = 20000
		for range n {
			sum += r.Magnitude(factor)
		}
		return sum / n
	}

	// Uniform over (0, factor] has mean factor/2; allow generous slack.
	m1, m10 := mean(1), mean(10)
	if m1 < 0.4 || m1 > 0.6 {
		t.Errorf("mean for factor 1 = %v, want ~0.5", m1)
	}
	if m10 < 4.5 || m10 > 5.5 {
		t.Errorf("mean for factor 10 = %v, want ~5", m10)
	}
}

func TestMagnitudeZeroFactorClamped(t *testing.T) {
	r := NewRoller(3)
	if v := r.Magnitude(0); v <= 0 || v > 1 {
		t.Fatalf("clamped factor should draw from (0,1], got %v", v)
	}
}

func TestRollerDeterministicForSeed(t *testing.T) {
	a, b := NewRoller(99), NewRoller(99)
	for range 50 {
		if a.IntBetween(0, 1000) != b.IntBetween(0, 1000) {
			t.Fatal("same seed must produce the same sequence")
		}
	}
}
