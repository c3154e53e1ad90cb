// cmd/client/cmd/comment/comment.go
package comment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

// CommentCmd добавляет комментарий к изображению.
var CommentCmd = &cobra.Command{
	Use:   "comment <id изображения> <текст>",
	Short: "Добавить комментарий к изображению",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("некорректный id: %s", args[0])
		}

		text := strings.Join(args[1:], " ")

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		c, err := app.AddComment(ctx, id, text)
		if err != nil {
			return fmt.Errorf("ошибка добавления комментария: %w", err)
		}

		fmt.Printf("✅ Комментарий добавлен: %s\n", c.Comment)
		return nil
	},
}
