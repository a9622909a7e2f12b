package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
)

func (c *cli) loginCmd() *cobra.Command {
	var in dto.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y guarda el token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				in.Password = os.Getenv("RECEIPTCTL_PASSWORD")
			}
			_, sess, err := c.auth.Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Sesión iniciada: usuario %s, rol %s\n", sess.UserID, sess.Role)
			fmt.Fprintf(c.out, "Guardada en %s\n", c.store.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "Email del usuario")
	cmd.Flags().StringVar(&in.Password, "password", "", "Contraseña (o RECEIPTCTL_PASSWORD)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Borra la sesión local",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Sesión cerrada")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra la sesión guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := c.session()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Usuario:  %s\n", sess.UserID)
			fmt.Fprintf(c.out, "Rol:      %s\n", sess.Role)
			fmt.Fprintf(c.out, "Guardada: %s\n", sess.SavedAt.Local().Format(time.DateTime))
			// informativo: la sesión no caduca del lado del cliente
			if claims, err := c.auth.Claims(sess.Token); err == nil && claims.ExpiresAt != nil {
				state := "vigente"
				if claims.Expired(time.Now()) {
					state = "vencido"
				}
				fmt.Fprintf(c.out, "Token:    %s (vence %s)\n", state, claims.ExpiresAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}
