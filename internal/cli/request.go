package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/riposte-dev/riposte/internal/output"
	"github.com/riposte-dev/riposte/pkg/jsonpath"
	"github.com/riposte-dev/riposte/rest"
)

// addRequestFlags registers the flags shared by every verb command.
// Body-carrying verbs additionally get -d/--data.
func addRequestFlags(cmd *cobra.Command, withBody bool) {
	cmd.Flags().StringArrayP("header", "H", nil, "request header as 'Name: value' (repeatable)")
	cmd.Flags().StringArrayP("query", "q", nil, "query parameter as name=value (repeatable)")
	if withBody {
		cmd.Flags().StringP("data", "d", "", "request body")
	}
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "request timeout")
	cmd.Flags().BoolP("verbose", "v", false, "show the timing breakdown")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().String("extract", "", "print only the value at this JSONPath")
	cmd.Flags().Bool("fail", false, "exit non-zero on a non-2xx response")
}

// runRequest executes one request described entirely by command flags.
// The URL argument is passed to the client as an absolute path, so no
// base URL is configured.
func runRequest(cmd *cobra.Command, method, rawURL string) error {
	flags := cmd.Flags()
	headers, _ := flags.GetStringArray("header")
	queries, _ := flags.GetStringArray("query")
	timeout, _ := flags.GetDuration("timeout")
	verbose, _ := flags.GetBool("verbose")
	noColor, _ := flags.GetBool("no-color")
	extract, _ := flags.GetString("extract")
	failOnStatus, _ := flags.GetBool("fail")

	if !noColor && !output.IsTerminal(os.Stdout) {
		noColor = true
	}

	var optFns []rest.RequestOption
	headerPairs := make([][2]string, 0, len(headers))
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("invalid header %q, expected 'Name: value'", h)
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		optFns = append(optFns, rest.Header(name, value))
		headerPairs = append(headerPairs, [2]string{name, value})
	}
	for _, q := range queries {
		name, value, ok := strings.Cut(q, "=")
		if !ok {
			return fmt.Errorf("invalid query parameter %q, expected name=value", q)
		}
		optFns = append(optFns, rest.QueryParam(name, value))
	}

	var body string
	if flags.Lookup("data") != nil {
		body, _ = flags.GetString("data")
		if body != "" {
			optFns = append(optFns, rest.Body(body))
		}
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

	formatter := output.NewFormatter(verbose, noColor)
	if extract == "" {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRequest(output.RequestInfo{
			Method:  method,
			URL:     rawURL,
			Headers: headerPairs,
			Body:    body,
		}))
	}

	resp, err := client.Do(cmd.Context(), method, rawURL, opts)
	if err != nil {
		return err
	}

	if extract != "" {
		value, err := jsonpath.Extract(resp.Body(), extract)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResponse(resp))
	}

	if failOnStatus && !resp.IsSuccessful() {
		return fmt.Errorf("request failed with status %d", resp.StatusCode())
	}
	return nil
}
