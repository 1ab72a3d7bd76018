package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"certlink/internal/config"
	"certlink/internal/logging"
	"certlink/internal/pipeline"
	"certlink/internal/report"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var xlsx bool

	cmd := &cobra.Command{
		Use:   "process <attendance.csv> <enrollment.csv>",
		Short: "Run the full reconciliation and write the certificate files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				expanded, err := config.ExpandPath(outputDir)
				if err != nil {
					return err
				}
				cfg.Paths.OutputDir = expanded
			}
			if xlsx {
				cfg.Output.Workbook = true
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, closeLogs, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			defer func() {
				_ = closeLogs()
			}()

			summary, err := pipeline.New(cfg, logger).Run(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides configuration)")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "Additionally write an Excel workbook")
	return cmd
}

func printSummary(out io.Writer, summary *pipeline.Summary) {
	colorize := shouldColorize(out)

	printSection(out, "Resumo da presença", colorize)
	fmt.Fprintf(out, "Linhas processadas: %d\n", summary.RosterRows)
	fmt.Fprintf(out, "Aprovados: %d (%.0f%%)\n", summary.Approved, summary.ApprovalRate()*100)
	fmt.Fprintf(out, "Reprovados: %d\n", summary.Rejected)
	if summary.Anomalies > 0 {
		fmt.Fprintf(out, "Linhas anômalas: %d\n", summary.Anomalies)
	}
	fmt.Fprintf(out, "Inscrições carregadas: %d\n", summary.Enrollments)
	fmt.Fprintln(out)

	if summary.Rejected > 0 {
		printSection(out, "Alunos reprovados", colorize)
		fmt.Fprintln(out, report.RejectedTable(summary.RejectedRecords))
		fmt.Fprintln(out)
	}

	printSection(out, "Certificados por curso", colorize)
	fmt.Fprintln(out, report.StatsTable(summary.Result.Stats))
	fmt.Fprintln(out)

	if summary.Borderline > 0 {
		printSection(out, "Pareamentos para revisão manual", colorize)
		fmt.Fprintln(out, report.BorderlineTable(summary.Result.Borderline))
		fmt.Fprintln(out)
	}
	if summary.Unmatched > 0 {
		printSection(out, "Aprovados sem inscrição correspondente", colorize)
		fmt.Fprintln(out, report.UnmatchedTable(summary.Result.Unmatched))
		fmt.Fprintln(out)
	}

	printSection(out, "Arquivos gerados", colorize)
	for _, path := range artifactPaths(summary) {
		fmt.Fprintln(out, path)
	}
}

func artifactPaths(summary *pipeline.Summary) []string {
	var paths []string
	add := func(path string) {
		if path != "" {
			paths = append(paths, path)
		}
	}
	add(summary.Artifacts.Certificates)
	for _, path := range summary.Artifacts.PerCategory {
		add(path)
	}
	add(summary.Artifacts.Rejected)
	add(summary.Artifacts.Borderline)
	add(summary.Artifacts.Unmatched)
	add(summary.Artifacts.Anomalies)
	add(summary.Artifacts.Workbook)
	return paths
}
