// cmd/client/cmd/rating/rating.go
package rating

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
)

// RatingCmd - родительская команда для оценок изображений
var RatingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Оценки изображений",
}

var setCmd = &cobra.Command{
	Use:   "set <id изображения> <оценка 1-5>",
	Short: "Оценить изображение",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("некорректный id: %s", args[0])
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil || value < 1 || value > 5 {
			return fmt.Errorf("оценка должна быть числом от 1 до 5")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		if err := app.SetRating(ctx, id, value); err != nil {
			return fmt.Errorf("ошибка выставления оценки: %w", err)
		}

		fmt.Printf("✅ Оценка %.0f поставлена изображению %d\n", value, id)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id изображения>",
	Short: "Средняя оценка изображения",
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

		avg, err := app.AverageRating(ctx, id)
		if err != nil {
			return fmt.Errorf("ошибка получения оценки: %w", err)
		}

		fmt.Printf("Средняя оценка изображения %d: %.2f\n", id, avg)
		return nil
	},
}

func init() {
	RatingCmd.AddCommand(setCmd, getCmd)
}
