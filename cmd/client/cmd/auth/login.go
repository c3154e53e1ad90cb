// cmd/client/cmd/auth/login.go
package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

var loginUsername string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в PhotoShare",
	Long: `Аутентификация на сервере PhotoShare.

После входа пара токенов сохраняется в локальной сессии
и используется всеми остальными командами.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Вход ===")
		fmt.Println()

		if loginUsername == "" {
			fmt.Print("Имя пользователя или email: ")
			_, _ = fmt.Scanln(&loginUsername)
		}

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		fmt.Println("Аутентификация...")
		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		if err := app.SignIn(ctx, loginUsername, string(password)); err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println()
		fmt.Println("✅ Вход выполнен успешно!")

		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "имя пользователя или email")
}
