// cmd/client/cmd/auth/confirm.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
	"photoshare/internal/domain/user"
)

var ConfirmCmd = &cobra.Command{
	Use:   "confirm <токен>",
	Short: "Подтвердить адрес почты",
	Long:  `Завершение подтверждения почты по токену из письма.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		if err := app.ConfirmEmail(ctx, args[0]); err != nil {
			return fmt.Errorf("ошибка подтверждения почты: %w", err)
		}

		fmt.Println("✅ Почта подтверждена, можно входить")
		return nil
	},
}

var ResendCmd = &cobra.Command{
	Use:   "resend <email>",
	Short: "Повторно отправить письмо подтверждения",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		err := app.RequestEmailConfirm(ctx, args[0])
		if errors.Is(err, user.ErrConfirmPending) {
			// Перегруженный 401 от сервера: подтверждение уже в пути
			fmt.Println("Письмо уже отправлено, проверьте почту")
			return nil
		}
		if err != nil {
			return fmt.Errorf("ошибка запроса подтверждения: %w", err)
		}

		fmt.Println("✅ Письмо отправлено, проверьте почту")
		return nil
	},
}
