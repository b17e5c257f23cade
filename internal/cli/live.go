package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/prosodylabs/turnpoint/pkg/endpoint"
	"github.com/prosodylabs/turnpoint/pkg/live"
)

func newLiveCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Drive a session from a WebSocket STT segment feed",
		Long: `Live connects to a WebSocket endpoint that emits one JSON segment per
message and runs endpointing in real time. The recognizer owns retries and
reconnection; turnpoint only consumes well-formed segments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				return errors.New("--url is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runLive(ctx, cfg, url, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "WebSocket URL of the segment feed (ws:// or wss://)")
	return cmd
}

// runLive consumes the feed until the context is cancelled or the feed
// closes, then flushes whatever is still buffered.
func runLive(ctx context.Context, cfg endpoint.Config, url string, out io.Writer) error {
	logger := newLogger()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %q: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	session := live.NewSession(cfg, endpoint.NewHybridStrategy(endpoint.NewLinguisticStrategy(cfg.Strategy)), live.Callbacks{
		OnDecision: func(res endpoint.EndpointingResult) {
			logger.Debug("decision",
				"decision", res.Decision.String(),
				"completeness", res.Completeness.String(),
				"confidence", res.Confidence,
			)
		},
		OnEndpoint: func(q endpoint.AccumulatedQuery, res endpoint.EndpointingResult) {
			fmt.Fprintf(out, ">>> %s: %q (conf=%.2f)\n", q.Status, q.Text, res.Confidence)
		},
		OnTimeout: func(q endpoint.AccumulatedQuery) {
			fmt.Fprintf(out, ">>> %s: %q\n", q.Status, q.Text)
		},
	}, logger)

	// Unblock ReadMessage on cancellation.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				break
			}
			return fmt.Errorf("read feed: %w", err)
		}
		seg, err := live.DecodeSegment(data)
		if err != nil {
			logger.Warn("malformed segment dropped", "error", err)
			continue
		}
		session.ProcessSegment(seg)
	}

	if final := session.Flush(); final != nil {
		fmt.Fprintf(out, ">>> flushed on shutdown: %q\n", final.Text)
	}
	return nil
}
