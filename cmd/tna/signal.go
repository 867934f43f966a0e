package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"qdpi-hq/tna/pkg/cli"
	"qdpi-hq/tna/pkg/signal"
)

var signalFlags struct {
	status string
	errors int
	size   string
	class  string
	follow bool
}

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Validate ECC signal props or drive the indicator",
	Long: `Validate the props of the ECC signal display and print them with their
defaults filled in. Size and class default to the display section of the
config file.

With --follow, status lines are read from stdin and fed to the indicator
state machine. Each line is a status, optionally followed by an error
count ("corrected 3"). Every state transition is printed. Moving to
"corrected" animates for display.animation_duration (default 1s); any
other status change ends the animation at once. At end of input the
command waits for a running animation to finish.

Examples:
  tna signal --status corrected --errors 2 --size lg
  printf 'clean\ncorrected 3\nerror\n' | tna signal --follow`,
	Args: cobra.NoArgs,
	RunE: runSignal,
}

func init() {
	rootCmd.AddCommand(signalCmd)

	signalCmd.Flags().StringVar(&signalFlags.status, "status", string(signal.StatusClean), "status (clean, corrected, error)")
	signalCmd.Flags().IntVar(&signalFlags.errors, "errors", 0, "number of corrected errors")
	signalCmd.Flags().StringVar(&signalFlags.size, "size", "", "size (sm, md, lg); default display.size")
	signalCmd.Flags().StringVar(&signalFlags.class, "class", "", "styling class passed to the host; default display.class_name")
	signalCmd.Flags().BoolVar(&signalFlags.follow, "follow", false, "read status lines from stdin and print state transitions")
}

type signalReport struct {
	Status              signal.Status `json:"status"`
	ErrorCount          int           `json:"errorCount"`
	Size                signal.Size   `json:"size"`
	ClassName           string        `json:"className"`
	EffectiveErrorCount int           `json:"effectiveErrorCount"`
}

func (r signalReport) String() string {
	s := fmt.Sprintf("Status: %s\nSize: %s", r.Status, r.Size)
	if r.Status == signal.StatusCorrected {
		s += fmt.Sprintf("\nErrors corrected: %d", r.EffectiveErrorCount)
	}
	if r.ClassName != "" {
		s += fmt.Sprintf("\nClass: %s", r.ClassName)
	}
	return s
}

type transition struct {
	Status     signal.Status `json:"status"`
	ErrorCount int           `json:"errorCount"`
	State      string        `json:"state"`
}

func (t transition) String() string {
	if t.Status == signal.StatusCorrected {
		return fmt.Sprintf("%s (%d) -> %s", t.Status, t.ErrorCount, t.State)
	}
	return fmt.Sprintf("%s -> %s", t.Status, t.State)
}

func runSignal(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false, nil)
	if err != nil {
		return err
	}
	defer a.close()

	props, err := signal.PropsFromConfig(&a.cfg.Display)
	if err != nil {
		return cli.NewConfigError("display.size", err)
	}
	if cmd.Flags().Changed("size") {
		if props.Size, err = signal.ParseSize(signalFlags.size); err != nil {
			return cli.NewCommandError("signal", err)
		}
	}
	if cmd.Flags().Changed("class") {
		props.ClassName = signalFlags.class
	}

	if signalFlags.follow {
		ctx, cancel := cli.SetupSignalHandler(cmd.Context())
		defer cancel()
		return followSignal(ctx, cmd, a, props)
	}

	if props.Status, err = signal.ParseStatus(signalFlags.status); err != nil {
		return cli.NewCommandError("signal", err)
	}
	props.ErrorCount = signalFlags.errors
	if err := props.Validate(); err != nil {
		return cli.NewCommandError("signal", err)
	}

	report := signalReport{
		Status:              props.Status,
		ErrorCount:          props.ErrorCount,
		Size:                props.Size,
		ClassName:           props.ClassName,
		EffectiveErrorCount: props.EffectiveErrorCount(),
	}
	if err := a.print(report); err != nil {
		return cli.NewCommandError("signal", err)
	}
	return nil
}

// followSignal feeds status lines from stdin to an Indicator and prints
// each transition.
func followSignal(ctx context.Context, cmd *cobra.Command, a *app, props signal.Props) error {
	logger := a.tel.Logger()

	var (
		mu       sync.Mutex
		current  = props
		shown    = signal.Idle
		idle     = make(chan struct{}, 1)
		printErr error
	)

	ind := signal.NewIndicator(signal.IndicatorConfig{
		Duration: a.cfg.Display.AnimationDuration,
		OnStateChange: func(state signal.State) {
			mu.Lock()
			t := transition{
				Status:     current.Status,
				ErrorCount: current.EffectiveErrorCount(),
				State:      state.String(),
			}
			if err := a.print(t); err != nil && printErr == nil {
				printErr = err
			}
			shown = state
			mu.Unlock()

			if state == signal.Idle {
				select {
				case idle <- struct{}{}:
				default:
				}
			}
		},
	})
	defer ind.Stop()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		next, err := parseStatusLine(text, props)
		if err != nil {
			return cli.NewCommandError("signal", fmt.Errorf("line %d: %w", line, err))
		}

		mu.Lock()
		current = next
		mu.Unlock()

		state, err := ind.Apply(next)
		if err != nil {
			return cli.NewCommandError("signal", fmt.Errorf("line %d: %w", line, err))
		}
		logger.Debug("indicator status applied", "status", string(next.Status), "state", state.String())
	}
	if err := scanner.Err(); err != nil {
		return cli.NewCommandError("signal", fmt.Errorf("read stdin: %w", err))
	}

	// Wait until the end of a running animation has been printed.
	for {
		mu.Lock()
		done, err := shown == signal.Idle, printErr
		mu.Unlock()
		if err != nil {
			return cli.NewCommandError("signal", err)
		}
		if done {
			return nil
		}
		select {
		case <-idle:
		case <-ctx.Done():
			return nil
		}
	}
}

// parseStatusLine reads "STATUS [ERRORS]" on top of base.
func parseStatusLine(text string, base signal.Props) (signal.Props, error) {
	fields := strings.Fields(text)
	if len(fields) > 2 {
		return signal.Props{}, fmt.Errorf("expected STATUS [ERRORS], got %q", text)
	}

	status, err := signal.ParseStatus(fields[0])
	if err != nil {
		return signal.Props{}, err
	}
	p := base
	p.Status = status
	p.ErrorCount = 0
	if len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return signal.Props{}, fmt.Errorf("invalid error count %q: %w", fields[1], err)
		}
		p.ErrorCount = n
	}
	return p, p.Validate()
}
