package ui

import (
	"context"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"crypto_kiosk/config"
	"crypto_kiosk/wifi"
)

type networkWindow struct {
	win    fyne.Window
	assets assets

	status   *canvas.Text
	list     *widget.List
	networks []wifi.Network
	password *widget.Entry
	keyboard *keyboard

	mgr *networkManager
}

// RunNetwork shows the WiFi screen driving radio on iface. It blocks until
// the screen is closed.
func RunNetwork(cfg *config.Config, radio wifi.WiFi, iface string, logger *zap.Logger) {
	a := app.NewWithID("com.cryptokiosk.wifimanager")
	win := a.NewWindow("WiFi Manager")
	win.Resize(fyne.NewSize(cfg.Display.Width, cfg.Display.Height))
	win.SetFullScreen(true)

	supplicant := wifi.Supplicant{
		Path:          cfg.WiFi.SupplicantPath,
		CtrlInterface: cfg.WiFi.CtrlInterface,
		Country:       cfg.WiFi.Country,
	}

	w := &networkWindow{win: win, assets: assets{dir: cfg.AssetsDir}}
	w.mgr = &networkManager{
		radio: radio,
		persist: func(ctx context.Context, c wifi.Credential) error {
			return wifi.Persist(ctx, supplicant, radio, c)
		},
		addr:   func() string { return wifi.IPv4(iface) },
		after:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		view:   w,
		logger: logger.Named("network"),
	}

	win.SetContent(w.buildUI(a))
	win.Show()

	go w.mgr.start()

	a.Run()
}

func (w *networkWindow) buildUI(a fyne.App) fyne.CanvasObject {
	w.status = canvas.NewText("SCANNING NETWORKS", color.White)
	w.status.TextSize = 18
	w.status.Alignment = fyne.TextAlignCenter

	w.list = widget.NewList(
		func() int { return len(w.networks) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(networkLabel(w.networks[id]))
		},
	)
	w.list.OnSelected = func(id widget.ListItemID) {
		if id >= len(w.networks) {
			return
		}
		ssid := w.networks[id].SSID
		go w.mgr.selectNetwork(ssid)
		w.win.Canvas().Focus(w.password)
	}

	w.password = widget.NewEntry()
	w.password.SetPlaceHolder("Enter WiFi password")
	w.password.OnSubmitted = func(string) { w.submit() }

	w.keyboard = newKeyboard(w.password, w.submit)

	closeBtn := widget.NewButton("CLOSE", a.Quit)
	connectBtn := widget.NewButton("CONNECT", w.submit)
	connectBtn.Importance = widget.SuccessImportance
	buttons := container.NewGridWithColumns(2, closeBtn, connectBtn)

	controls := container.NewVBox(w.password, buttons, w.keyboard.content())
	content := container.NewPadded(container.NewBorder(w.status, controls, nil, nil, w.list))

	var backdrop fyne.CanvasObject = canvas.NewRectangle(color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})
	if res := w.assets.background(); res != nil {
		img := canvas.NewImageFromResource(res)
		img.FillMode = canvas.ImageFillStretch
		backdrop = img
	}
	return container.NewStack(backdrop, content)
}

func networkLabel(n wifi.Network) string {
	if n.Security == wifi.Open {
		return n.SSID + " (open)"
	}
	return n.SSID
}

// submit reads the password on the UI goroutine and hands it to the manager.
func (w *networkWindow) submit() {
	password := w.password.Text
	go w.mgr.submit(password)
}

func (w *networkWindow) showScanning() {
	fyne.Do(func() {
		w.status.Text = "SCANNING NETWORKS"
		w.status.Color = color.White
		w.status.Refresh()
	})
}

func (w *networkWindow) showNetworks(nets []wifi.Network, selected string) {
	fyne.Do(func() {
		w.networks = nets
		w.list.UnselectAll()
		w.list.Refresh()
		for i, n := range nets {
			if n.SSID == selected {
				w.list.Select(i)
				break
			}
		}
	})
}

func (w *networkWindow) showStatus(s wifi.Status) {
	text, ok := statusText(s)
	fyne.Do(func() {
		w.status.Text = text
		w.status.Color = changeColor(ok)
		w.status.Refresh()
	})
}

func (w *networkWindow) alert(msg string) {
	fyne.Do(func() {
		dialog.ShowInformation("WiFi Manager", msg, w.win)
	})
}
