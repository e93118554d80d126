package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/sudoku/internal/model"
)

// Keypad enters digits into the selected cell on devices without a
// keyboard. On desktop it stays hidden and the keyboard is used instead.
type Keypad struct {
	buttons   []*widget.Button
	container *fyne.Container
}

// NewKeypad creates buttons for 1..9 and a clear button, all calling onDigit
func NewKeypad(onDigit func(value int)) *Keypad {
	k := &Keypad{}
	objects := make([]fyne.CanvasObject, 0, model.MaxValue+1)
	for v := 1; v <= model.MaxValue; v++ {
		value := v
		btn := widget.NewButton(strconv.Itoa(value), func() { onDigit(value) })
		k.buttons = append(k.buttons, btn)
		objects = append(objects, btn)
	}
	clearBtn := widget.NewButton(IconClear, func() { onDigit(0) })
	clearBtn.Importance = widget.LowImportance
	k.buttons = append(k.buttons, clearBtn)
	objects = append(objects, clearBtn)

	k.container = container.NewAdaptiveGrid(KeypadColumns, objects...)
	if !isMobileDevice() {
		k.container.Hide()
	}
	return k
}

// Container returns the keypad layout
func (k *Keypad) Container() *fyne.Container {
	return k.container
}

// SetEnabled enables or disables every key
func (k *Keypad) SetEnabled(enabled bool) {
	for _, b := range k.buttons {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func isMobileDevice() bool {
	if fyne.CurrentApp() == nil {
		return false
	}
	return fyne.CurrentDevice().IsMobile()
}
