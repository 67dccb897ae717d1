package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/Sternrassler/placeholder-proxy/pkg/perf"
	"github.com/spf13/cobra"
)

func newMetricsCmd() *cobra.Command {
	var (
		framework string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print the current pseudo-metrics of each framework",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			frameworks := perf.Frameworks
			if framework != "" {
				frameworks = []perf.Framework{perf.ParseFramework(framework, perf.NextJS)}
			}
			return printMetrics(cmd, frameworks, time.Now(), asJSON)
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "", "Only print this framework (nextjs, angular, nuxt)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func printMetrics(cmd *cobra.Command, frameworks []perf.Framework, now time.Time, asJSON bool) error {
	all := make([]perf.Metrics, 0, len(frameworks))
	for _, fw := range frameworks {
		all = append(all, perf.FrameworkMetrics(fw, now))
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAMEWORK\tTTFB\tFCP\tLCP\tSEO\tBUNDLE KB\tHYDRATION\tCPU %")
	for _, m := range all {
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0f\t%.1f\t%.0f\t%.0f\t%.1f\n",
			m.Framework, m.TTFB, m.FCP, m.LCP, m.SEOScore, m.BundleSize, m.HydrationTime, m.ServerCPUUsage)
	}
	return tw.Flush()
}
