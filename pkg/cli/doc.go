/*
Package cli provides command-line helpers for the tna command.

Output Formatting:

Command results are rendered as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Text output uses the value's String method when it has one.

Errors and Exit Codes:

ExitCode maps typed errors from the accounting packages to distinct exit
codes, so scripts can tell bad input (2) from bad configuration (3) and an
unreadable vocabulary (4).

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
