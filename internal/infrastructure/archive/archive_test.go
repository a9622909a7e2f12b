package archive_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customs-receipts/internal/infrastructure/archive"
)

func TestFileSink_EscribeSinSobrescribir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	s := archive.NewFileSink(dir)

	p1, err := s.Put(context.Background(), "C-1_main_receipt.pdf", "application/pdf", []byte("uno"))
	require.NoError(t, err)
	p2, err := s.Put(context.Background(), "C-1_main_receipt.pdf", "application/pdf", []byte("dos"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
	assert.Equal(t, "C-1_main_receipt_1.pdf", filepath.Base(p2))

	b, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, "uno", string(b))
}

func TestFileSink_NoEscapaDelDirectorio(t *testing.T) {
	dir := t.TempDir()
	s := archive.NewFileSink(dir)

	p, err := s.Put(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(p))
}

func TestFileSink_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := archive.NewFileSink(t.TempDir()).Put(ctx, "a.pdf", "application/pdf", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMinioSink_ObjectName(t *testing.T) {
	s, err := archive.NewMinioSink(archive.MinioConfig{
		Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "receipts", Prefix: "/documents/",
	})
	require.NoError(t, err)

	assert.Equal(t, "documents/C-1.pdf", s.ObjectName("C-1.pdf"))
	assert.Equal(t, "documents/x.pdf", s.ObjectName("../../x.pdf"))
}

func TestMinioSink_PresignedURL(t *testing.T) {
	s, err := archive.NewMinioSink(archive.MinioConfig{
		Endpoint: "minio.example.com", AccessKey: "k", SecretKey: "s", Bucket: "receipts",
		UseSSL: true, PresignExpiry: time.Hour,
	})
	require.NoError(t, err)

	u, err := s.PresignedURL(context.Background(), "documents/C-1.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://minio.example.com/receipts/documents/C-1.pdf?"))
	assert.Contains(t, u, "X-Amz-Signature=")
}
