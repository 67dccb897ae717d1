package perf

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFrameworkMetrics_SameBucketIdentical(t *testing.T) {
	start := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

	for _, fw := range Frameworks {
		a := FrameworkMetrics(fw, start)
		b := FrameworkMetrics(fw, start.Add(59*time.Second+999*time.Millisecond))
		if a != b {
			t.Errorf("%s: metrics differ within one minute: %+v vs %+v", fw, a, b)
		}
	}
}

func TestFrameworkMetrics_NextBucketChanges(t *testing.T) {
	start := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

	changed := 0
	for i := 0; i < 10; i++ {
		a := FrameworkMetrics(NextJS, start.Add(time.Duration(i)*time.Minute))
		b := FrameworkMetrics(NextJS, start.Add(time.Duration(i+1)*time.Minute))
		if a != b {
			changed++
		}
	}
	if changed == 0 {
		t.Error("metrics never changed across minute buckets")
	}
}

func TestFrameworkMetrics_FrameworksDiffer(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

	next := FrameworkMetrics(NextJS, now)
	angular := FrameworkMetrics(Angular, now)
	if next.TTFB == angular.TTFB && next.FCP == angular.FCP {
		t.Error("different frameworks should get different offsets")
	}
	if next.Framework != NextJS || angular.Framework != Angular {
		t.Errorf("framework field not set: %s, %s", next.Framework, angular.Framework)
	}
}

func TestFrameworkMetrics_Ranges(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		for _, fw := range Frameworks {
			m := FrameworkMetrics(fw, start.Add(time.Duration(i)*time.Minute))
			checks := []struct {
				name      string
				v, lo, hi float64
			}{
				{"ttfb", m.TTFB, 60, 240},
				{"fcp", m.FCP, 700, 1700},
				{"lcp", m.LCP, 1100, 2700},
				{"seoScore", m.SEOScore, 92, 100},
				{"bundleSize", m.BundleSize, 140, 400},
				{"hydrationTime", m.HydrationTime, 40, 180},
				{"serverCpuUsage", m.ServerCPUUsage, 8, 43},
			}
			for _, c := range checks {
				if c.v < c.lo || c.v > c.hi {
					t.Fatalf("%s %s = %v, want within [%v, %v]", fw, c.name, c.v, c.lo, c.hi)
				}
			}
		}
	}
}

func TestSeeded_Range(t *testing.T) {
	for s := -1000.0; s < 1000; s += 0.37 {
		v := seeded(s)
		if v < 0 || v >= 1 {
			t.Fatalf("seeded(%v) = %v, want [0,1)", s, v)
		}
	}
}

func TestMinuteBucket(t *testing.T) {
	epochMinute := time.UnixMilli(60_000 * 42)
	if got := MinuteBucket(epochMinute); got != 42 {
		t.Errorf("MinuteBucket() = %d, want 42", got)
	}
	if got := MinuteBucket(epochMinute.Add(-time.Millisecond)); got != 41 {
		t.Errorf("MinuteBucket() = %d, want 41", got)
	}
}

func TestParseFramework(t *testing.T) {
	tests := []struct {
		raw  string
		want Framework
	}{
		{"nextjs", NextJS},
		{"Angular", Angular},
		{" nuxt ", Nuxt},
		{"", NextJS},
		{"svelte", NextJS},
	}

	for _, tt := range tests {
		if got := ParseFramework(tt.raw, NextJS); got != tt.want {
			t.Errorf("ParseFramework(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestMetrics_JSONFields(t *testing.T) {
	out, err := json.Marshal(FrameworkMetrics(Nuxt, time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"framework":"nuxt"`, `"ttfb"`, `"fcp"`, `"lcp"`, `"seoScore"`, `"bundleSize"`, `"hydrationTime"`, `"serverCpuUsage"`} {
		if !strings.Contains(string(out), field) {
			t.Errorf("json %s missing %s", out, field)
		}
	}
}
