package mainmenu

import (
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/roffe/empol/pkg/lesson"
)

// MainMenu adds one menu per lesson chapter after the static menus.
type MainMenu struct {
	menus    []*fyne.Menu
	catalog  *lesson.Catalog
	onSelect func(lesson.Key)
}

func New(menus []*fyne.Menu, catalog *lesson.Catalog, onSelect func(lesson.Key)) *MainMenu {
	return &MainMenu{
		menus:    menus,
		catalog:  catalog,
		onSelect: onSelect,
	}
}

// GetMenu builds the menu with the current part checked. Without
// navigation the chapter entries are shown disabled.
func (mw *MainMenu) GetMenu(current lesson.Key, navigation bool) *fyne.MainMenu {
	menus := append([]*fyne.Menu{}, mw.menus...)

	for chapter := 1; chapter <= mw.catalog.Chapters(); chapter++ {
		var items []*fyne.MenuItem
		for part := 1; part <= mw.catalog.Parts(chapter); part++ {
			key := lesson.Key{Chapter: chapter, Part: part}
			entry, err := mw.catalog.Lookup(key)
			if err != nil {
				continue
			}
			itm := fyne.NewMenuItem(fmt.Sprintf("%s %s", key, entry.Title), func() {
				mw.onSelect(key)
			})
			itm.Checked = key == current
			itm.Disabled = !navigation
			items = append(items, itm)
		}
		menus = append(menus, fyne.NewMenu(fmt.Sprintf("Chapter %d", chapter), items...))
	}
	return fyne.NewMainMenu(menus...)
}
