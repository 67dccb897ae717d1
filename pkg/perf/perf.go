// Package perf generates reproducible pseudo performance metrics for the
// compared front-end frameworks. Values depend only on the framework and
// the wall-clock minute; they are demo data, not measurements.
package perf

import (
	"math"
	"strings"
	"time"
)

// Framework names a compared front-end framework.
type Framework string

const (
	NextJS  Framework = "nextjs"
	Angular Framework = "angular"
	Nuxt    Framework = "nuxt"
)

// Frameworks lists the known frameworks in display order.
var Frameworks = []Framework{NextJS, Angular, Nuxt}

// Bucket is the width of a metrics bucket.
const Bucket = time.Minute

// Metrics is one framework's metric snapshot.
type Metrics struct {
	Framework      Framework `json:"framework"`
	TTFB           float64   `json:"ttfb"`
	FCP            float64   `json:"fcp"`
	LCP            float64   `json:"lcp"`
	SEOScore       float64   `json:"seoScore"`
	BundleSize     float64   `json:"bundleSize"`
	HydrationTime  float64   `json:"hydrationTime"`
	ServerCPUUsage float64   `json:"serverCpuUsage"`
}

// ParseFramework maps raw to a known framework, returning fallback for
// anything else.
func ParseFramework(raw string, fallback Framework) Framework {
	switch fw := Framework(strings.ToLower(strings.TrimSpace(raw))); fw {
	case NextJS, Angular, Nuxt:
		return fw
	default:
		return fallback
	}
}

// offset is the per-framework seed offset.
func (f Framework) offset() float64 {
	switch f {
	case NextJS:
		return 17
	case Angular:
		return 29
	default:
		return 41
	}
}

// seeded is a deterministic pseudo-random value in [0, 1).
func seeded(seed float64) float64 {
	x := math.Sin(seed) * 10_000
	return x - math.Floor(x)
}

// MinuteBucket returns the bucket index of t.
func MinuteBucket(t time.Time) int64 {
	return int64(math.Floor(float64(t.UnixMilli()) / float64(Bucket.Milliseconds())))
}

// FrameworkMetrics returns the metrics of framework for the minute of now.
func FrameworkMetrics(framework Framework, now time.Time) Metrics {
	bucket := float64(MinuteBucket(now))
	base := framework.offset()

	r := func(i float64) float64 { return seeded(bucket + base*i) }

	return Metrics{
		Framework:      framework,
		TTFB:           60 + r(1)*180,
		FCP:            700 + r(2)*1000,
		LCP:            1100 + r(3)*1600,
		SEOScore:       math.Min(100, math.Max(0, 92+r(4)*8)),
		BundleSize:     140 + r(5)*260,
		HydrationTime:  40 + r(6)*140,
		ServerCPUUsage: 8 + r(7)*35,
	}
}
