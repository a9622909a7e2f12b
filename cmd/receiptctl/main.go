// receiptctl: cliente de línea de comandos del tablero de recibos aduaneros.
// La sesión (token + user id) se guarda en un archivo JSON local.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/customs-receipts/internal/application/auth"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/backend"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/declxml"
	infrapdf "github.com/jhoicas/customs-receipts/internal/infrastructure/pdf"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/session"
	"github.com/jhoicas/customs-receipts/pkg/config"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

// cli dependencias compartidas por los comandos. Se arma en PersistentPreRunE.
type cli struct {
	out io.Writer

	// flags globales
	sessionFile string
	backendURL  string
	debug       bool

	cfg        *config.Config
	log        *logger.Logger
	store      *session.FileStore
	auth       *auth.AuthUseCase
	clerk      *usecase.ClerkUseCase
	accountant *usecase.AccountantUseCase
	owner      *usecase.OwnerUseCase
	documents  *usecase.DocumentUseCase
	render     *usecase.RenderUseCase
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "receiptctl",
		Short:         "Formularios y visores de recibos aduaneros desde la terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVar(&c.sessionFile, "session", "", "Archivo de sesión (por defecto SESSION_FILE)")
	root.PersistentFlags().StringVar(&c.backendURL, "backend", "", "URL base del backend (por defecto BACKEND_BASE_URL)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "Logs de depuración en stderr")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.submitCmd(),
		c.uploadCmd(),
		c.listCmd(),
		c.downloadCmd(),
		c.renderCmd(),
	)
	return root
}

func (c *cli) setup() error {
	// .env opcional, igual que en el servidor
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.backendURL != "" {
		cfg.Backend.BaseURL = c.backendURL
	}
	if c.sessionFile != "" {
		cfg.Session.File = c.sessionFile
	}
	level := cfg.App.LogLevel
	if c.debug {
		level = "debug"
	}
	c.cfg = cfg
	c.log = logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})

	gateway := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, c.log)
	policy := usecase.UploadPolicy{MaxBytes: cfg.Upload.MaxBytes, AllowedTypes: cfg.Upload.AllowedTypes}

	c.store = session.NewFileStore(cfg.Session.File)
	c.auth = auth.NewAuthUseCase(gateway, c.store, cfg.JWT.Secret)
	c.clerk = usecase.NewClerkUseCase(gateway, policy, c.log)
	c.accountant = usecase.NewAccountantUseCase(gateway, policy, c.log)
	c.owner = usecase.NewOwnerUseCase(gateway, c.log)
	c.documents = usecase.NewDocumentUseCase(gateway, c.log)
	c.render = usecase.NewRenderUseCase(infrapdf.NewMarotoDeclarationPDF(), declxml.NewCodec())
	return nil
}

// session sesión activa o domain.ErrMissingToken.
func (c *cli) session() (entity.Session, error) {
	sess, err := c.auth.Current()
	if err != nil {
		return entity.Session{}, fmt.Errorf("%w (ejecuta 'receiptctl login')", err)
	}
	return sess, nil
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
