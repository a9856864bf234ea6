package ui

import (
	"strings"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	keySpace   = "Space"
	keyDel     = "Del"
	keyClear   = "Clear"
	keyEnter   = "Enter"
	keyCaps    = "CapsL"
	keySpecial = "Special"
	keyNormal  = "Normal"
)

var normalKeys = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l", "*"},
	{"z", "x", "c", "v", "b", "n", "m", ",", ".", "+"},
	{"-", "_", "=", "$", "€", "/", "%", "#", "(", ")"},
	{"@", keyCaps, keySpace, keyDel, keyClear, keySpecial, keyEnter},
}

var specialKeys = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"á", "é", "í", "ó", "ú", "ü", "ñ", "à", "è", "ì"},
	{"â", "ê", "î", "ô", "û", "ç", "ä", "ë", "ï", "ö"},
	{"-", "_", "=", "$", "€", "/", "%", "#", "(", ")"},
	{"@", keyCaps, keySpace, keyDel, keyClear, keyNormal, keyEnter},
}

// keyboard is the on-screen keyboard typing into a single entry.
type keyboard struct {
	target  *widget.Entry
	onEnter func()

	caps    bool
	special bool
	grid    *fyne.Container
}

func newKeyboard(target *widget.Entry, onEnter func()) *keyboard {
	k := &keyboard{target: target, onEnter: onEnter}
	k.grid = container.NewGridWithColumns(10)
	k.load()
	return k
}

func (k *keyboard) content() fyne.CanvasObject {
	return k.grid
}

func (k *keyboard) rows() [][]string {
	if k.special {
		return specialKeys
	}
	return normalKeys
}

// load rebuilds the key buttons for the current layout and case.
func (k *keyboard) load() {
	var keys []fyne.CanvasObject
	for _, row := range k.rows() {
		for _, key := range row {
			key := key
			keys = append(keys, widget.NewButton(k.label(key), func() { k.press(key) }))
		}
	}
	k.grid.Objects = keys
	k.grid.Refresh()
}

func isLetter(key string) bool {
	r := []rune(key)
	return len(r) == 1 && unicode.IsLetter(r[0])
}

func (k *keyboard) label(key string) string {
	if k.caps && isLetter(key) {
		return strings.ToUpper(key)
	}
	return key
}

func (k *keyboard) press(key string) {
	switch key {
	case keySpace:
		k.insert(" ")
	case keyDel:
		if r := []rune(k.target.Text); len(r) > 0 {
			k.target.SetText(string(r[:len(r)-1]))
		}
	case keyClear:
		k.target.SetText("")
	case keyEnter:
		if k.onEnter != nil {
			k.onEnter()
		}
	case keyCaps:
		k.caps = !k.caps
		k.load()
	case keySpecial, keyNormal:
		k.special = !k.special
		k.load()
	default:
		k.insert(k.label(key))
	}
}

func (k *keyboard) insert(s string) {
	k.target.SetText(k.target.Text + s)
}
