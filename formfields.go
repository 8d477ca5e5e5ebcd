// Package formfields renders HTML form controls bound to a data source and
// wraps them in label+control+error groups. The root package holds thin
// entry points over pkg/form; see that package for the full API.
package formfields

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/htmltag"
)

// Form aliases form.Form for callers importing only the root package.
type Form = form.Form

// Option aliases form.Option.
type Option = form.Option

// Choice is one option of a dropdown, list or datalist control.
type Choice = htmltag.Option

// ErrUnknownControl is returned by RenderGroup for unsupported kinds.
var ErrUnknownControl = errors.New("formfields: unknown control")

// Control kinds accepted by RenderGroup.
const (
	ControlInput        = "input"
	ControlPassword     = "password"
	ControlUpload       = "upload"
	ControlTextarea     = "textarea"
	ControlHidden       = "hidden"
	ControlCheckbox     = "checkbox"
	ControlRadio        = "radio"
	ControlDropdown     = "dropdown"
	ControlMultiselect  = "multiselect"
	ControlDatalist     = "datalist"
	ControlCheckboxList = "checkboxlist"
	ControlRadioList    = "radiolist"
)

// Controls lists the kinds RenderGroup understands.
func Controls() []string {
	return []string{
		ControlInput, ControlPassword, ControlUpload, ControlTextarea,
		ControlHidden, ControlCheckbox, ControlRadio, ControlDropdown,
		ControlMultiselect, ControlDatalist, ControlCheckboxList, ControlRadioList,
	}
}

// New constructs a Form; see form.New.
func New(options ...Option) *Form {
	return form.New(options...)
}

// Attrs builds an attribute dictionary from key/value pairs.
func Attrs(pairs ...any) *attrs.Dict {
	return attrs.Of(pairs...)
}

// RenderGroup renders field as the named control kind wrapped in its group.
// Hidden inputs are returned bare. Checkbox and radio controls use the first
// choice as their target value ("1" without choices).
func RenderGroup(f *Form, src any, field, control string, choices []Choice, a, group *attrs.Dict) (string, error) {
	if f == nil {
		return "", errors.New("formfields: form is required")
	}
	switch strings.ToLower(strings.TrimSpace(control)) {
	case ControlInput, "":
		return f.InputGroup(src, field, a, group), nil
	case ControlPassword:
		return f.PasswordGroup(src, field, a, group), nil
	case ControlUpload:
		return f.UploadGroup(src, field, a, group), nil
	case ControlTextarea:
		return f.TextareaGroup(src, field, a, group), nil
	case ControlHidden:
		return f.Hidden(src, field, a), nil
	case ControlCheckbox:
		return f.CheckboxGroup(src, field, targetValue(choices), a, group), nil
	case ControlRadio:
		return f.RadioGroup(src, field, targetValue(choices), a, group), nil
	case ControlDropdown:
		return f.DropdownGroup(src, field, choices, a, group), nil
	case ControlMultiselect:
		return f.MultiselectGroup(src, field, choices, a, group), nil
	case ControlDatalist:
		return f.DatalistGroup(src, field, choices, a, group), nil
	case ControlCheckboxList:
		return f.CheckboxListGroup(src, field, choices, a, group), nil
	case ControlRadioList:
		return f.RadioListGroup(src, field, choices, a, group), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownControl, control)
	}
}

func targetValue(choices []Choice) string {
	if len(choices) == 0 {
		return "1"
	}
	return choices[0].Value
}
