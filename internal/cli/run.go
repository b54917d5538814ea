package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/riposte-dev/riposte/internal/config"
	"github.com/riposte-dev/riposte/internal/output"
	"github.com/riposte-dev/riposte/pkg/jsonpath"
	"github.com/riposte-dev/riposte/rest"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Execute requests defined in a YAML workspace file",
	Long: `Run loads a workspace file defining environments and named requests,
then executes one request (-r) or every request in name order. Request
URLs are resolved against the selected environment's base URL, and each
request's extract expressions are evaluated against the response body.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		envName, _ := flags.GetString("env")
		requestName, _ := flags.GetString("request")
		verbose, _ := flags.GetBool("verbose")
		noColor, _ := flags.GetBool("no-color")

		if !noColor && !output.IsTerminal(os.Stdout) {
			noColor = true
		}

		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}

		client, err := buildWorkspaceClient(cfg, envName)
		if err != nil {
			return err
		}

		var names []string
		if requestName != "" {
			if _, ok := cfg.Requests[requestName]; !ok {
				return fmt.Errorf("unknown request %q", requestName)
			}
			names = []string{requestName}
		} else {
			for name := range cfg.Requests {
				names = append(names, name)
			}
			sort.Strings(names)
		}

		formatter := output.NewFormatter(verbose, noColor)
		for _, name := range names {
			if err := runWorkspaceRequest(cmd, client, formatter, name, cfg.Requests[name]); err != nil {
				return fmt.Errorf("request %q: %w", name, err)
			}
		}
		return nil
	},
}

func buildWorkspaceClient(cfg *config.Config, envName string) (*rest.Client, error) {
	var clientOpts []rest.Option
	if envName != "" {
		env, ok := cfg.Environments[envName]
		if !ok {
			return nil, fmt.Errorf("unknown environment %q", envName)
		}
		clientOpts = append(clientOpts, rest.WithBaseURL(env.BaseURL))
		if len(env.Headers) > 0 {
			clientOpts = append(clientOpts, rest.WithDefaultHeaders(env.Headers))
		}
		if env.Timeout != "" {
			// Already validated by config.Load.
			d, err := time.ParseDuration(env.Timeout)
			if err != nil {
				return nil, fmt.Errorf("environment %q: %w", envName, err)
			}
			clientOpts = append(clientOpts, rest.WithRequestTimeout(d))
		}
	}
	return rest.New(clientOpts...)
}

func runWorkspaceRequest(cmd *cobra.Command, client *rest.Client, formatter *output.Formatter, name string, req config.Request) error {
	var optFns []rest.RequestOption
	if len(req.Headers) > 0 {
		optFns = append(optFns, rest.Headers(req.Headers))
	}
	params := make([]string, 0, len(req.QueryParams))
	for param := range req.QueryParams {
		params = append(params, param)
	}
	sort.Strings(params)
	for _, param := range params {
		optFns = append(optFns, rest.QueryParam(param, req.QueryParams[param]))
	}
	if req.Body != "" {
		optFns = append(optFns, rest.Body(req.Body))
	}

	opts, err := rest.NewOptions(optFns...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "=== %s: %s %s\n", name, req.Method, req.URL)

	resp, err := client.Do(cmd.Context(), req.Method, req.URL, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(w, formatter.FormatResponse(resp))

	if len(req.Extract) > 0 {
		values, err := jsonpath.ExtractAll(resp.Body(), req.Extract)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "  %s = %s\n", key, values[key])
		}
	}
	return nil
}

func init() {
	runCmd.Flags().StringP("env", "e", "", "environment to resolve request URLs against")
	runCmd.Flags().StringP("request", "r", "", "run a single named request")
	runCmd.Flags().BoolP("verbose", "v", false, "show the timing breakdown")
	runCmd.Flags().Bool("no-color", false, "disable colored output")
}
