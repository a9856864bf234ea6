package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// assets resolves the kiosk's image files. Missing files come back as nil so
// callers can fall back to text or theme icons.
type assets struct {
	dir string
}

func (a assets) load(parts ...string) fyne.Resource {
	res, err := fyne.LoadResourceFromPath(filepath.Join(append([]string{a.dir}, parts...)...))
	if err != nil {
		return nil
	}
	return res
}

func (a assets) token(symbol string) fyne.Resource {
	return a.load("tokens", symbol+".png")
}

// logo is the token's large image, or a placeholder when it has none so the
// previous token's image never lingers.
func (a assets) logo(symbol string) fyne.Resource {
	if res := a.token(symbol); res != nil {
		return res
	}
	return theme.BrokenImageIcon()
}

func (a assets) thumb(symbol string) fyne.Resource {
	return a.load("thumbs", symbol+".png")
}

func (a assets) background() fyne.Resource {
	return a.load("backgrounds", "background.jpg")
}

func (a assets) settings() fyne.Resource {
	return a.load("settings.png")
}
