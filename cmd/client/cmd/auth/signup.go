// cmd/client/cmd/auth/signup.go
package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
	"photoshare/internal/domain/user"
)

var (
	signupUsername string
	signupEmail    string
)

var SignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Зарегистрировать учетную запись",
	Long: `Регистрация на сервере PhotoShare.

После регистрации на указанную почту приходит письмо с подтверждением.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Регистрация ===")
		fmt.Println()

		if signupUsername == "" {
			fmt.Print("Имя пользователя: ")
			_, _ = fmt.Scanln(&signupUsername)
		}
		if signupEmail == "" {
			fmt.Print("Email: ")
			_, _ = fmt.Scanln(&signupEmail)
		}

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		fmt.Print("Повторите пароль: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("пароли не совпадают")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		err = app.SignUp(ctx, user.SignupRequest{
			Username:        signupUsername,
			Email:           signupEmail,
			Password:        string(password),
			ConfirmPassword: string(confirm),
		})
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		fmt.Println("✅ Учетная запись создана!")
		fmt.Println("Проверьте почту и подтвердите адрес, затем выполните вход.")

		return nil
	},
}

func init() {
	SignupCmd.Flags().StringVarP(&signupUsername, "username", "u", "", "имя пользователя")
	SignupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "адрес электронной почты")
}
