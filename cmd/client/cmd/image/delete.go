// cmd/client/cmd/image/delete.go
package image

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить изображение",
	Long: `Удаление изображения по id.

Изображение исчезает из галереи только после подтверждения сервера.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("некорректный id: %s", args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		gallery, err := app.Gallery(ctx)
		if err != nil {
			return fmt.Errorf("ошибка получения галереи: %w", err)
		}

		if err := gallery.Delete(ctx, id); err != nil {
			return fmt.Errorf("ошибка удаления изображения: %w", err)
		}

		fmt.Printf("✅ Изображение %d удалено\n", id)
		return nil
	},
}
