package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/archive"
)

// sink --out-dir gana; con --archive se usa el bucket si está configurado.
func (c *cli) sink(outDir string, toArchive bool) (ports.DocumentSink, error) {
	if outDir != "" {
		return archive.NewFileSink(outDir), nil
	}
	if toArchive && c.cfg.Archive.UseMinio() {
		return archive.NewMinioSink(archive.MinioConfig{
			Endpoint:      c.cfg.Archive.MinioEndpoint,
			AccessKey:     c.cfg.Archive.MinioAccessKey,
			SecretKey:     c.cfg.Archive.MinioSecretKey,
			Bucket:        c.cfg.Archive.MinioBucket,
			UseSSL:        c.cfg.Archive.MinioUseSSL,
			PresignExpiry: c.cfg.Archive.PresignExpiry,
		})
	}
	return archive.NewFileSink(c.cfg.Archive.Dir), nil
}

func (c *cli) downloadCmd() *cobra.Command {
	var kindFlag, id, outDir string
	var toArchive bool
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Descarga un documento decodificado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, ok := entity.ParseKind(kindFlag)
			if !ok {
				return fmt.Errorf("%w: categoría %q desconocida", domain.ErrValidation, kindFlag)
			}
			sess, err := c.session()
			if err != nil {
				return err
			}
			sink, err := c.sink(outDir, toArchive)
			if err != nil {
				return err
			}
			loc, err := c.documents.Archive(cmd.Context(), sess.Token, sess.Role, kind, id, sink)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, loc)
			return nil
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "", "Categoría del documento")
	cmd.Flags().StringVar(&id, "id", "", "ID del documento")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directorio destino (por defecto DOWNLOAD_DIR)")
	cmd.Flags().BoolVar(&toArchive, "archive", false, "Guardar en el bucket MinIO configurado")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (c *cli) renderCmd() *cobra.Command {
	var file, format, outDir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Genera la hoja resumen PDF o el XML de una declaración",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := c.readDeclaration(file)
			if err != nil {
				return err
			}
			out, err := c.render.Render(cmd.Context(), in, format)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = "."
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, out.Name)
			if err := os.WriteFile(path, out.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s\nhuella: %s\n", path, out.Fingerprint)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Declaración en JSON o XML")
	cmd.Flags().StringVar(&format, "format", "pdf", "pdf | xml")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directorio destino")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
