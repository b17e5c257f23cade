package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prosodylabs/turnpoint/pkg/endpoint"
	"github.com/prosodylabs/turnpoint/pkg/live"
)

func newReplayCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a JSONL segment stream through a session",
		Long: `Replay reads one JSON segment per line ({"text", "confidence", "start",
"end", "silence_after"}, timing in seconds) and prints every endpointing
decision and finalized query. Use "-" to read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("open input %q: %w", input, err)
				}
				defer f.Close()
				in = f
			}
			return replay(cfg, in, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&input, "input", "-", "JSONL segment file, or - for stdin")
	return cmd
}

// replay drives one session from a line-delimited segment stream.
func replay(cfg endpoint.Config, in io.Reader, out io.Writer) error {
	session := live.NewSession(cfg, endpoint.NewHybridStrategy(endpoint.NewLinguisticStrategy(cfg.Strategy)), live.Callbacks{
		OnDecision: func(res endpoint.EndpointingResult) {
			fmt.Fprintf(out, "%-8s %-10s conf=%.2f  %q\n",
				res.Decision, res.Completeness, res.Confidence, res.Features.Text)
		},
		OnEndpoint: func(q endpoint.AccumulatedQuery, _ endpoint.EndpointingResult) {
			fmt.Fprintf(out, ">>> %s: %q (segments=%d, duration=%v)\n",
				q.Status, q.Text, q.SegmentCount(), q.TotalDuration)
		},
		OnTimeout: func(q endpoint.AccumulatedQuery) {
			fmt.Fprintf(out, ">>> %s: %q (duration=%v)\n", q.Status, q.Text, q.TotalDuration)
		},
	}, newLogger())

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		seg, err := live.DecodeSegment([]byte(raw))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		session.ProcessSegment(seg)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read segments: %w", err)
	}

	if final := session.Flush(); final != nil {
		fmt.Fprintf(out, ">>> flushed at end of stream: %q\n", final.Text)
	}
	return nil
}
