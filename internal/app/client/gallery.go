package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	gosync "sync"
	"text/tabwriter"

	"github.com/fatih/color"

	"photoshare/internal/domain/comment"
	"photoshare/internal/domain/image"
)

// Gallery - отображаемый список изображений пользователя. Порядок элементов
// повторяет порядок ответа сервера, клиент ничего не сортирует.
//
// Инвариант удаления: элемент исчезает из списка только после того, как
// сервер подтвердил DELETE. При ошибке элемент остается, и список не может
// разойтись с состоянием сервера.
type Gallery struct {
	mu    gosync.Mutex
	gw    *Gateway
	items []*GalleryItem
}

// GalleryItem - изображение вместе с комментариями, добавленными
// за время жизни страницы.
type GalleryItem struct {
	Image    image.Image
	Comments []comment.Comment
}

func NewGallery(gw *Gateway, images []image.Image) *Gallery {
	items := make([]*GalleryItem, 0, len(images))
	for _, img := range images {
		items = append(items, &GalleryItem{Image: img})
	}
	return &Gallery{gw: gw, items: items}
}

// Len возвращает число элементов списка.
func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

// Items возвращает копию списка в текущем порядке.
func (g *Gallery) Items() []*GalleryItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*GalleryItem, len(g.items))
	copy(out, g.items)
	return out
}

// Item находит элемент по id изображения.
func (g *Gallery) Item(id int) (*GalleryItem, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, it := range g.items {
		if it.Image.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Delete удаляет изображение: сначала сервер, потом список.
// Параллельные удаления работают каждый со своим элементом,
// порядок завершения список не ломает.
func (g *Gallery) Delete(ctx context.Context, id int) error {
	if _, ok := g.Item(id); !ok {
		return image.ErrNotFound
	}

	if err := g.gw.DeleteImage(ctx, id); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i, it := range g.items {
		if it.Image.ID == id {
			g.items = append(g.items[:i], g.items[i+1:]...)
			break
		}
	}
	return nil
}

// AddComment отправляет комментарий и добавляет ответ сервера
// к элементу списка. Пустой текст отклоняется без похода в сеть.
func (g *Gallery) AddComment(ctx context.Context, imageID int, text string) (*comment.Comment, error) {
	if isBlank(text) {
		return nil, comment.ErrEmpty
	}

	item, ok := g.Item(imageID)
	if !ok {
		return nil, image.ErrNotFound
	}

	c, err := g.gw.AddComment(ctx, imageID, text)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	item.Comments = append(item.Comments, *c)
	g.mu.Unlock()

	return c, nil
}

// Render выводит список: ровно одна запись на каждый элемент,
// в порядке списка.
func (g *Gallery) Render(w io.Writer) error {
	items := g.Items()

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "Изображения не найдены")
		return err
	}

	fmt.Fprintln(w, color.CyanString("Найдено изображений: %d", len(items)))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tОписание\tТеги\tСсылка\tСоздано\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t---\t\n")

	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			it.Image.ID,
			truncate(it.Image.Description, 30),
			tagNames(it.Image.Tags),
			it.Image.Link,
			it.Image.CreatedAt.Format("2006-01-02"),
		)
		for _, c := range it.Comments {
			fmt.Fprintf(tw, "\t> %s\t\t\t\t\n", truncate(c.Comment, 50))
		}
	}

	return tw.Flush()
}

// tagNames склеивает имена тегов в порядке сервера.
func tagNames(tags []image.Tag) string {
	if len(tags) == 0 {
		return "без тегов"
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// truncate режет по рунам, кириллица не дает резать по байтам.
func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
