package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для всех операций с учетной записью
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление учетной записью",
	Long:  `Регистрация, вход, выход, подтверждение почты.`,
}

func init() {
	AuthCmd.AddCommand(SignupCmd, LoginCmd, LogoutCmd, ConfirmCmd, ResendCmd)
}
