// cmd/client/cmd/image/search.go
package image

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
	"photoshare/internal/domain/image"
)

var searchCmd = &cobra.Command{
	Use:   "search [тег]",
	Short: "Поиск изображений по тегу",
	Long: `Поиск изображений по тегу и показ первого результата.

Без аргумента открывается строка ввода с таймером бездействия:
если тег не введен за отведенное время, поиск закрывается.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		search := app.NewSearch()
		search.Begin()
		defer search.Close()

		if len(args) > 0 {
			search.SetQuery(args[0])
		} else {
			fmt.Print("Тег: ")
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				search.SetQuery(scanner.Text())
			}
		}

		if search.State() != client.SearchActive {
			fmt.Println("Время ожидания истекло, поиск закрыт")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		result, err := search.Submit(ctx)
		if errors.Is(err, image.ErrNoResults) {
			fmt.Println("По этому тегу ничего не найдено")
			return nil
		}
		if err != nil {
			return fmt.Errorf("ошибка поиска: %w", err)
		}

		fmt.Println(color.CyanString("Первый результат:"))
		fmt.Printf("Описание: %s\n", result.Description)
		fmt.Printf("Создано:  %s\n", result.CreatedAt.Format("2006-01-02"))
		fmt.Printf("Ссылка:   %s\n", result.Link)
		return nil
	},
}
