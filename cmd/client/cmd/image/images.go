package image

import (
	"github.com/spf13/cobra"
)

// ImageCmd - родительская команда для работы с изображениями
var ImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Работа с изображениями",
	Long:  `Загрузка, просмотр галереи, поиск по тегам, изменение и удаление.`,
}

func init() {
	ImageCmd.AddCommand(uploadCmd, listCmd, deleteCmd, searchCmd, updateCmd)
}
