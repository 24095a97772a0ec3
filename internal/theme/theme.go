package theme

import (
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"
)

// Theme defines the color palette for the editor window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // behind the canvas
	Foreground color.RGBA

	// Toolbar & Tabs
	ToolbarBackground color.RGBA
	TabBackground     color.RGBA // inactive tab
	TabActive         color.RGBA
	TabText           color.RGBA
	TabTextActive     color.RGBA

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonActive          color.RGBA // the tool in use
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	Selection    color.RGBA
	SelectionAlt color.RGBA
}

// Default returns the hardcoded light theme used when nothing else loads.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		TabBackground:         color.RGBA{220, 220, 220, 255},
		TabActive:             color.RGBA{200, 200, 200, 255},
		TabText:               color.RGBA{0, 0, 0, 255},
		TabTextActive:         color.RGBA{0, 0, 0, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonActive:          color.RGBA{143, 184, 232, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		StatusBackground:      color.RGBA{230, 230, 230, 255},
		StatusText:            color.RGBA{32, 32, 32, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		Selection:             color.RGBA{0, 0, 0, 255},
		SelectionAlt:          color.RGBA{255, 255, 255, 255},
	}
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// Set assigns a color field by case-insensitive name. Unknown keys are
// ignored so older binaries can read newer theme files.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != rgbaType {
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// Write emits the theme in the "Key: #RRGGBB" form Parse reads.
func (t *Theme) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Name: %s\n", t.Name); err != nil {
		return err
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type != rgbaType {
			continue
		}
		col := val.Field(i).Interface().(color.RGBA)
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Name, FormatColor(col)); err != nil {
			return err
		}
	}
	return nil
}
