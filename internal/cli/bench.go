package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/riposte-dev/riposte/internal/bench"
	"github.com/riposte-dev/riposte/internal/output"
	"github.com/riposte-dev/riposte/rest"
)

var benchCmd = &cobra.Command{
	Use:   "bench URL",
	Short: "Measure GET latency percentiles for a URL",
	Long: `Bench issues a number of sequential GET requests against the URL and
reports the latency distribution (min, mean, p50, p90, p99, max) from an
HDR histogram, along with the success count. Warmup iterations are issued
first and discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawURL := args[0]
		flags := cmd.Flags()
		n, _ := flags.GetInt("requests")
		warmup, _ := flags.GetInt("warmup")
		headers, _ := flags.GetStringArray("header")
		timeout, _ := flags.GetDuration("timeout")
		noColor, _ := flags.GetBool("no-color")

		if n <= 0 {
			return fmt.Errorf("request count must be positive, got %d", n)
		}
		if !noColor && !output.IsTerminal(os.Stdout) {
			noColor = true
		}

		var optFns []rest.RequestOption
		for _, h := range headers {
			name, value, ok := strings.Cut(h, ":")
			if !ok {
				return fmt.Errorf("invalid header %q, expected 'Name: value'", h)
			}
			optFns = append(optFns, rest.Header(strings.TrimSpace(name), strings.TrimSpace(value)))
		}
		if flags.Changed("timeout") {
			optFns = append(optFns, rest.Timeout(timeout))
		}
		opts, err := rest.NewOptions(optFns...)
		if err != nil {
			return err
		}
		client, err := rest.New()
		if err != nil {
			return err
		}

		for i := 0; i < warmup; i++ {
			if _, err := client.Get(cmd.Context(), rawURL, opts); err != nil {
				return fmt.Errorf("warmup request %d: %w", i+1, err)
			}
		}

		recorder := bench.NewRecorder()
		var transportErrors int
		for i := 0; i < n; i++ {
			start := time.Now()
			resp, err := client.Get(cmd.Context(), rawURL, opts)
			elapsed := time.Since(start)
			if err != nil {
				transportErrors++
				recorder.Record(elapsed, false)
				continue
			}
			recorder.Record(elapsed, resp.IsSuccessful())
		}

		printBenchSummary(cmd, rawURL, recorder.Summarize(), transportErrors, noColor)
		return nil
	},
}

func printBenchSummary(cmd *cobra.Command, rawURL string, s bench.Summary, transportErrors int, noColor bool) {
	scheme := output.DefaultColorScheme()
	if noColor {
		scheme = output.NoColorScheme()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", scheme.Label.Sprint("Benchmark:"), scheme.URL.Sprint(rawURL))
	fmt.Fprintf(w, "  requests:  %d (%s ok, %s failed", s.Count,
		scheme.StatusOK.Sprintf("%d", s.Success), scheme.StatusError.Sprintf("%d", s.Failures))
	if transportErrors > 0 {
		fmt.Fprintf(w, ", %d transport errors", transportErrors)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "  min:       %s\n", s.Min)
	fmt.Fprintf(w, "  mean:      %s\n", s.Mean)
	fmt.Fprintf(w, "  p50:       %s\n", s.P50)
	fmt.Fprintf(w, "  p90:       %s\n", s.P90)
	fmt.Fprintf(w, "  p99:       %s\n", s.P99)
	fmt.Fprintf(w, "  max:       %s\n", s.Max)
}

func init() {
	benchCmd.Flags().IntP("requests", "n", 50, "number of measured requests")
	benchCmd.Flags().Int("warmup", 0, "warmup requests issued before measuring")
	benchCmd.Flags().StringArrayP("header", "H", nil, "request header as 'Name: value' (repeatable)")
	benchCmd.Flags().DurationP("timeout", "t", 30*time.Second, "per-request timeout")
	benchCmd.Flags().Bool("no-color", false, "disable colored output")
}
