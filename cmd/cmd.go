// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// generateCommand runs one generation cycle from the command line
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen", "g"},
		Usage:     "Generate a music brief from an idea",
		ArgsUsage: "<idea>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "stream",
				Aliases: []string{"s"},
				Usage:   "Use the streaming endpoint and print text as it arrives",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the brief as indented JSON instead of cards",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the brief JSON to the clipboard",
			},
			&cli.BoolFlag{
				Name:  "save-json",
				Usage: "Save the brief as JSON",
			},
			&cli.BoolFlag{
				Name:  "save-pdf",
				Usage: "Render the brief as PDF through the API and save it",
			},
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "Save the brief as Markdown",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the saved PDF with the system viewer",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Directory for saved files (default: output.dir from config)",
			},
		},
		Action: r.Generate,
	}
}

// pdfCommand renders a saved brief JSON file as PDF
func pdfCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pdf",
		Usage: "Render a brief JSON file as PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Brief JSON file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "PDF file path (default: output.dir/output.pdf_filename)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the PDF with the system viewer",
			},
		},
		Action: r.PDF,
	}
}

func examplesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "examples",
		Usage:  "List example ideas",
		Action: r.Examples,
	}
}

// batchCommand generates briefs for every idea in a file
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Generate a brief for each idea in a file (one per line)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "File with one idea per line; blank lines and # comments are skipped",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format: json, markdown, txt, csv",
				Value: "json",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second",
				Value: 0.5,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: briefs_{timestamp})",
			},
			&cli.BoolFlag{
				Name:  "stream",
				Usage: "Use the streaming endpoint",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the batch summary as JSON",
			},
		},
		Action: r.Batch,
	}
}

// historyCommand manages locally saved briefs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse briefs saved in the local history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved briefs, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of briefs to list",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "idea",
						Usage: "Only list briefs whose idea contains this text",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:      "show",
				Usage:     "Show a saved brief by ID or number",
				ArgsUsage: "<id|number>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the brief as indented JSON",
					},
					&cli.BoolFlag{
						Name:  "markdown",
						Usage: "Print the brief as Markdown",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:      "delete",
				Usage:     "Delete a saved brief by ID or number",
				ArgsUsage: "<id|number>",
				Action:    r.HistoryDelete,
			},
		},
	}
}

// setupCommand creates the config file and the history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the history database",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent history migration",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive brief generation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive brief generator",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-stream",
				Usage: "Start with streaming turned off",
			},
		},
		Action: r.TUI,
	}
}
