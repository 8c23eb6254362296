package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
	"github.com/hashgraph-online/conversational-agent-sub001/core/resolve"
)

var (
	flagSession string
	flagTool    string
	flagPrefs   []string
	flagJSON    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [message]",
	Short: "Resolve entity references inside a message",
	Long: `Runs a message through the detection and conversion pipeline,
rewriting entity references into the formats requested with --prefer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := buildRegistry(cfg)
		if err != nil {
			return err
		}

		rctx := resolve.FromMessage(strings.Join(args, " "), flagSession).
			WithNetwork(cfg.NetworkType())

		if flagTool != "" || len(flagPrefs) > 0 {
			meta := &resolve.ToolMetadata{
				Name:              flagTool,
				FormatPreferences: map[entity.Format]entity.Format{},
			}
			for _, pref := range flagPrefs {
				source, target, err := parsePreference(pref)
				if err != nil {
					return err
				}
				meta.FormatPreferences[source] = target
			}
			rctx = rctx.WithToolContext(meta)
		}

		resolved, err := buildPipeline(registry).Process(cmd.Context(), rctx.UserMessage, rctx)
		if err != nil {
			return err
		}

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(resolved)
		}
		fmt.Println(resolved.Message)
		for _, conv := range resolved.Conversions {
			fmt.Fprintf(os.Stderr, "  %s -> %s\n", conv.Original, conv.Converted)
		}
		return nil
	},
}

// parsePreference parses a "source=target" preference flag.
func parsePreference(s string) (entity.Format, entity.Format, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid preference %q, expected source=target", s)
	}
	source, ok := entity.ParseFormat(parts[0])
	if !ok {
		return "", "", fmt.Errorf("unknown format %q", parts[0])
	}
	target, ok := entity.ParseFormat(parts[1])
	if !ok {
		return "", "", fmt.Errorf("unknown format %q", parts[1])
	}
	return source, target, nil
}

func init() {
	resolveCmd.Flags().StringVar(&flagSession, "session", "", "session id (generated when empty)")
	resolveCmd.Flags().StringVar(&flagTool, "tool", "", "calling tool name")
	resolveCmd.Flags().StringSliceVar(&flagPrefs, "prefer", nil, "format preference, e.g. topic_id=hrl (repeatable)")
	resolveCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the resolved message as JSON")
	rootCmd.AddCommand(resolveCmd)
}
