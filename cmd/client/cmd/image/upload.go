// cmd/client/cmd/image/upload.go
package image

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

var (
	uploadDescription string
	uploadTags        string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <файл>",
	Short: "Загрузить изображение",
	Long: `Загрузка файла изображения с описанием и тегами.

Теги перечисляются через запятую: --tags sunset,sea`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		img, err := app.UploadImage(ctx, args[0], uploadDescription, uploadTags)
		if err != nil {
			return fmt.Errorf("ошибка загрузки изображения: %w", err)
		}

		fmt.Printf("✅ Изображение загружено: id=%d\n", img.ID)
		fmt.Printf("Ссылка: %s\n", img.Link)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadDescription, "description", "d", "", "описание изображения")
	uploadCmd.Flags().StringVarP(&uploadTags, "tags", "t", "", "теги через запятую")
}
