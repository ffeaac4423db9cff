package cli

import (
	"errors"
	"fmt"
	"os"

	"codequiz-service/internal/app"
	"codequiz-service/internal/domain"
	"codequiz-service/internal/infra/sqlite"
	"codequiz-service/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewCertificateCmd renders the certificate PNG for the last terminal attempt.
func NewCertificateCmd(configPath *string) *cobra.Command {
	var (
		clientID string
		name     string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "certificate",
		Short: "Generate a completion certificate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			store, err := sqlite.Open(cfg.SQLite.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			rasterizer, err := render.NewPNGRasterizer()
			if err != nil {
				return err
			}
			service := app.NewCertificateService(store, rasterizer, certificateOptions(cfg), log)

			issued, err := service.Issue(cmd.Context(), app.SlotFor(clientID), name)
			switch {
			case errors.Is(err, domain.ErrResultsNotFound):
				return fmt.Errorf("no results yet: run `codequiz play <category>` first")
			case errors.Is(err, domain.ErrRenderFailed):
				return fmt.Errorf("could not generate certificate, please try again")
			case err != nil:
				return err
			}

			if outPath == "" {
				outPath = issued.FileName
			}
			if err := os.WriteFile(outPath, issued.Image, 0o644); err != nil {
				return fmt.Errorf("write certificate: %w", err)
			}
			log.Debug("certificate written", zap.String("path", outPath))
			fmt.Fprintf(cmd.OutOrStdout(), "Certificate saved to %s\n%s\n", outPath, issued.ShareText)
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "results slot suffix")
	cmd.Flags().StringVar(&name, "name", "", "name printed on the certificate")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (defaults to the download name)")
	return cmd
}
