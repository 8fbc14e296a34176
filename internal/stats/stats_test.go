package stats

import "testing"

func TestWPM(t *testing.T) {
	cases := []struct {
		typed   int
		elapsed float64
		want    int
	}{
		{250, 60, 50},
		{50, 60, 10},
		{25, 30, 10},
		{10, 0, 0},
		{10, -1, 0},
		{0, 60, 0},
	}
	for _, tc := range cases {
		if got := WPM(tc.typed, tc.elapsed); got != tc.want {
			t.Fatalf("WPM(%d, %v) = %d, want %d", tc.typed, tc.elapsed, got, tc.want)
		}
	}
}

func TestAccuracy(t *testing.T) {
	cases := []struct {
		correct int
		typed   int
		want    int
	}{
		{0, 0, 100},
		{5, 5, 100},
		{1, 2, 50},
		{2, 3, 67},
		{0, 4, 0},
	}
	for _, tc := range cases {
		if got := Accuracy(tc.correct, tc.typed); got != tc.want {
			t.Fatalf("Accuracy(%d, %d) = %d, want %d", tc.correct, tc.typed, got, tc.want)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	line := Sparkline([]float64{3, 3, 3})
	if len([]rune(line)) != 3 {
		t.Fatalf("unexpected sparkline %q", line)
	}
}

func TestResample(t *testing.T) {
	values := []float64{1, 1, 3, 3, 5, 5}
	out := Resample(values, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(out))
	}
	if out[0] != 1 || out[1] != 3 || out[2] != 5 {
		t.Fatalf("unexpected buckets: %v", out)
	}

	short := Resample([]float64{1, 2}, 10)
	if len(short) != 2 {
		t.Fatalf("short series should be unchanged, got %v", short)
	}
}
