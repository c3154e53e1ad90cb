// cmd/client/cmd/auth/logout.go
package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из PhotoShare",
	Long: `Завершение сессии на сервере.

Локальная сессия очищается только после подтверждения сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		if err := app.Logout(ctx); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}

		fmt.Println("✅ Выход выполнен, сессия очищена")
		return nil
	},
}
