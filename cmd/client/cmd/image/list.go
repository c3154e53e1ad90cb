// cmd/client/cmd/image/list.go
package image

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Галерея текущего пользователя",
	Long: `Просмотр собственных изображений в порядке, который вернул сервер.

Пагинацией управляет сервер, клиент ничего не пересортировывает.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		gallery, err := app.Gallery(ctx)
		if err != nil {
			return fmt.Errorf("ошибка получения галереи: %w", err)
		}

		// Глобальный --json действует, пока формат не задан явно
		format := listFormat
		if !cmd.Flags().Changed("format") {
			if jsonOut, err := cmd.Flags().GetBool("json"); err == nil && jsonOut {
				format = "json"
			}
		}

		switch format {
		case "json":
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(gallery.Items())
		default:
			return gallery.Render(cmd.OutOrStdout())
		}
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json)")
}
