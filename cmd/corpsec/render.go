package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gartstein/corpsec/internal/compliance/config"
	"github.com/gartstein/corpsec/internal/compliance/documents"
	"github.com/spf13/cobra"
)

var renderFlags = struct {
	meetingID string
	format    string
	outDir    string
}{}

func renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "render <notice|agm|minutes|annual-return>",
		Short:     "Render a statutory document to a file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"notice", "agm", "minutes", "annual-return"},
		RunE:      renderRun,
	}
	cmd.Flags().StringVarP(&renderFlags.meetingID, "meeting", "m", "", "meeting id for notices and minutes")
	cmd.Flags().StringVarP(&renderFlags.format, "format", "f", string(documents.DefaultFormat), "file format: docx or pdf")
	cmd.Flags().StringVarP(&renderFlags.outDir, "out", "o", ".", "output directory")
	return cmd
}

func renderRun(cmd *cobra.Command, args []string) error {
	cfg := config.FromContext(cmd.Context())
	logger := initLogger()
	defer syncLogger(logger)

	doc, err := documents.ParseDocument(args[0])
	if err != nil {
		return err
	}
	format, err := documents.ParseFormat(renderFlags.format)
	if err != nil {
		return err
	}
	tag, err := cfg.LanguageTag()
	if err != nil {
		return err
	}

	companyStore, closeStore, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	attachment, err := documents.NewRenderer(documents.WithLanguage(tag)).Generate(companyStore.State(), documents.Request{
		Document:  doc,
		MeetingID: renderFlags.meetingID,
		Format:    format,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(renderFlags.outDir, attachment.FileName)
	if err := os.WriteFile(path, attachment.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
