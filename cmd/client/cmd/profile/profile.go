// cmd/client/cmd/profile/profile.go
package profile

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
	"photoshare/internal/domain/user"
)

var cached bool

// ProfileCmd показывает профиль: свой или другого пользователя по имени.
var ProfileCmd = &cobra.Command{
	Use:   "profile [имя пользователя]",
	Short: "Показать профиль",
	Long: `Профиль текущего пользователя или другого по имени.

Снимок собственного профиля кэшируется в сессии;
флаг --cached показывает его без похода на сервер.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout())
		defer cancel()

		var profile *user.Profile
		var err error
		switch {
		case len(args) > 0:
			profile, err = app.ProfileOf(ctx, args[0])
		case cached:
			profile, err = app.CachedProfile()
		default:
			profile, err = app.Profile(ctx)
		}
		if err != nil {
			return fmt.Errorf("ошибка получения профиля: %w", err)
		}

		printProfile(profile)
		return nil
	},
}

func printProfile(p *user.Profile) {
	fmt.Println(color.CyanString("=== Профиль ==="))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Имя:\t%s\n", p.Username)
	fmt.Fprintf(w, "Email:\t%s\n", p.Email)
	fmt.Fprintf(w, "Аватар:\t%s\n", p.Avatar)
	fmt.Fprintf(w, "Изображений:\t%d\n", p.ImagesCount)
	fmt.Fprintf(w, "Комментариев:\t%d\n", p.CommentsCount)
	fmt.Fprintf(w, "Создан:\t%s\n", p.CreatedAt.Format("2006-01-02"))
	w.Flush()
}

func init() {
	ProfileCmd.Flags().BoolVar(&cached, "cached", false, "показать снимок из сессии без запроса")
}
