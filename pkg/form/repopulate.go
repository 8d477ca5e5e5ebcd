package form

// SetValue returns the submitted value for name, or def when the field was
// not submitted. Multi-valued submissions yield their first value.
func (f *Form) SetValue(name, def string) string {
	values := f.resolver.Values(f.submitted, name, nil)
	if len(values) == 0 {
		return def
	}
	return values[0]
}

// SetSelect returns ` selected="selected"` when value was submitted for name.
// When name was not submitted at all, def decides.
func (f *Form) SetSelect(name, value string, def bool) string {
	return f.repopulate(name, value, def, ` selected="selected"`)
}

// SetCheckbox returns ` checked="checked"` when value was submitted for name.
// When name was not submitted at all, def decides.
func (f *Form) SetCheckbox(name, value string, def bool) string {
	return f.repopulate(name, value, def, ` checked="checked"`)
}

// SetRadio behaves like SetCheckbox.
func (f *Form) SetRadio(name, value string, def bool) string {
	return f.SetCheckbox(name, value, def)
}

func (f *Form) repopulate(name, value string, def bool, marker string) string {
	submitted := f.resolver.Values(f.submitted, name, nil)
	if submitted == nil {
		if def {
			return marker
		}
		return ""
	}
	for _, candidate := range submitted {
		if candidate == value {
			return marker
		}
	}
	return ""
}
