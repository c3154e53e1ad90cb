// cmd/client/cmd/image/update.go
package image

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

var updateDescription string

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить описание изображения",
	Args:  cobra.ExactArgs(1),
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

		img, err := app.UpdateImage(ctx, id, updateDescription)
		if err != nil {
			return fmt.Errorf("ошибка изменения изображения: %w", err)
		}

		fmt.Printf("✅ Описание обновлено: %s\n", img.Description)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "новое описание")
	_ = updateCmd.MarkFlagRequired("description")
}
