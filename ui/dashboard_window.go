package ui

import (
	"context"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"crypto_kiosk/api"
	"crypto_kiosk/config"
	"crypto_kiosk/system"
)

const (
	iconSize   = 220
	buttonSize = 80
)

var (
	colorText = color.White
	colorUp   = color.NRGBA{R: 0x00, G: 0xc8, B: 0x53, A: 0xff}
	colorDown = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
)

func changeColor(rising bool) color.Color {
	if rising {
		return colorUp
	}
	return colorDown
}

type dashboardWindow struct {
	win    fyne.Window
	cfg    *config.Config
	assets assets
	logger *zap.Logger

	logo          *canvas.Image
	name          *canvas.Text
	price         *canvas.Text
	changeCaption *canvas.Text
	change        *canvas.Text
	date          *canvas.Text
	clock         *canvas.Text

	settingsBtn *widget.Button
	loading     dialog.Dialog
	launcher    *launcher
}

// RunDashboard creates and shows the price dashboard. It blocks until the
// window is closed.
func RunDashboard(cfg *config.Config, logger *zap.Logger) {
	a := app.NewWithID("com.cryptokiosk.dashboard")
	win := a.NewWindow("Crypto Dashboard")
	win.Resize(fyne.NewSize(cfg.Display.Width, cfg.Display.Height))
	win.CenterOnScreen()

	pi := system.IsRaspberryPi(system.CPUInfoPath)
	if fullscreen(cfg.Display, pi) {
		win.SetFullScreen(true)
	}

	w := &dashboardWindow{
		win:      win,
		cfg:      cfg,
		assets:   assets{dir: cfg.AssetsDir},
		logger:   logger,
		launcher: newLauncher(cfg.NetworkArgv(pi), logger),
	}

	client := api.NewClient(cfg.APIURL, cfg.QuoteCurrency, cfg.RequestTimeout, logger)
	d := newDashboard(client, w, cfg.Tokens[0], cfg.WarmupRefresh, logger)

	win.SetContent(w.buildUI(d))

	// The network screen has no result channel; getting focus back means
	// it has been closed.
	a.Lifecycle().SetOnEnteredForeground(w.networkClosed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	win.Show()

	go func() {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		d.run(ctx, ticker.C)
	}()
	go w.clockLoop(ctx)

	a.Run()
}

func fullscreen(d config.Display, pi bool) bool {
	if d.Fullscreen != nil {
		return *d.Fullscreen
	}
	return pi
}

func newText(size float32, bold bool) *canvas.Text {
	t := canvas.NewText("", colorText)
	t.TextSize = size
	t.TextStyle = fyne.TextStyle{Bold: bold}
	return t
}

// buildUI constructs the Fyne layout.
func (w *dashboardWindow) buildUI(d *dashboard) fyne.CanvasObject {
	// ── Token button row with the settings button at the left ──
	row := container.NewHBox()
	for _, tok := range w.cfg.Tokens {
		row.Add(w.tokenButton(tok, d))
	}

	settingsIcon := w.assets.settings()
	if settingsIcon == nil {
		settingsIcon = theme.SettingsIcon()
	}
	w.settingsBtn = widget.NewButtonWithIcon("", settingsIcon, w.openNetwork)
	w.settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, container.NewVBox(w.settingsBtn), nil, container.NewCenter(row))

	// ── Logo and quote ──
	w.logo = canvas.NewImageFromResource(w.assets.logo(w.cfg.Tokens[0].Symbol))
	w.logo.FillMode = canvas.ImageFillContain
	w.logo.SetMinSize(fyne.NewSize(iconSize, iconSize))

	w.name = newText(44, true)
	w.name.Text = w.cfg.Tokens[0].Label()
	w.price = newText(36, false)
	w.price.Text = "Price: $0"
	w.changeCaption = newText(28, false)
	w.changeCaption.Text = "24h Change: "
	w.change = newText(28, false)
	w.change.Text = "0%"

	info := container.NewVBox(
		w.name,
		w.price,
		container.NewHBox(w.changeCaption, w.change),
	)
	gap := canvas.NewRectangle(color.Transparent)
	gap.SetMinSize(fyne.NewSize(50, 0))
	body := container.NewCenter(container.NewHBox(w.logo, gap, container.NewCenter(info)))

	// ── Date and time footer ──
	w.date = newText(30, true)
	w.clock = newText(30, true)
	w.date.Text, w.clock.Text = clockText(time.Now())
	footer := container.NewHBox(w.date, layout.NewSpacer(), w.clock)

	w.loading = dialog.NewCustomWithoutButtons("Loading...",
		container.NewVBox(widget.NewLabel("Please Wait"), widget.NewProgressBarInfinite()), w.win)

	content := container.NewPadded(container.NewBorder(header, footer, nil, nil, body))
	return container.NewStack(w.backdrop(), content)
}

func (w *dashboardWindow) backdrop() fyne.CanvasObject {
	if res := w.assets.background(); res != nil {
		img := canvas.NewImageFromResource(res)
		img.FillMode = canvas.ImageFillStretch
		return img
	}
	return canvas.NewRectangle(color.Black)
}

func (w *dashboardWindow) tokenButton(tok config.Token, d *dashboard) *widget.Button {
	onTap := func() { d.selectToken(tok) }

	var btn *widget.Button
	if res := w.assets.thumb(tok.Symbol); res != nil {
		btn = widget.NewButtonWithIcon("", res, onTap)
	} else {
		btn = widget.NewButton(strings.ToUpper(tok.Symbol), onTap)
	}
	btn.Importance = widget.LowImportance
	return btn
}

// showQuote is called from the refresh goroutine.
func (w *dashboardWindow) showQuote(token config.Token, q api.Quote) {
	txt := renderQuote(token, q)
	logo := w.assets.logo(token.Symbol)

	fyne.Do(func() {
		w.name.Text = txt.Name
		w.name.Refresh()
		w.price.Text = txt.Price
		w.price.Refresh()
		w.change.Text = txt.Change
		w.change.Color = changeColor(txt.Rising)
		w.change.Refresh()
		if w.logo.Resource == nil || logo.Name() != w.logo.Resource.Name() {
			w.logo.Resource = logo
			w.logo.Refresh()
		}
	})
}

func (w *dashboardWindow) clockLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			date, clock := clockText(now)
			fyne.Do(func() {
				w.date.Text, w.clock.Text = date, clock
				w.date.Refresh()
				w.clock.Refresh()
			})
		}
	}
}

func (w *dashboardWindow) openNetwork() {
	w.settingsBtn.Disable()
	w.loading.Show()

	if err := w.launcher.launch(); err != nil {
		w.logger.Error("Error opening network screen", zap.Error(err))
		w.networkClosed()
	}
}

func (w *dashboardWindow) networkClosed() {
	if w.loading != nil {
		w.loading.Hide()
	}
	if w.settingsBtn != nil {
		w.settingsBtn.Enable()
	}
}
