package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Request is a single field render collected from the user.
type Request struct {
	Field   string
	Control string
	Value   string
	Label   string
	Error   string
}

// Collect asks which field to render, with which control, and for optional
// overrides. fields are the keys available in the loaded record; when empty
// the field name is typed in. controls lists the supported control kinds and
// must not be empty. seed supplies defaults for the answers.
func Collect(ctx context.Context, driver Driver, fields, controls []string, seed Request) (Request, error) {
	if driver == nil {
		return Request{}, errors.New("prompt: driver is required")
	}
	if len(controls) == 0 {
		return Request{}, errors.New("prompt: no controls to choose from")
	}

	req := seed
	var err error

	if len(fields) > 0 {
		sorted := append([]string(nil), fields...)
		sort.Strings(sorted)
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      "Field",
			Options:      sorted,
			DefaultIndex: indexOf(sorted, seed.Field),
		})
		if err != nil {
			return Request{}, err
		}
		if idx < 0 {
			return Request{}, fmt.Errorf("prompt: unknown field selection")
		}
		req.Field = sorted[idx]
	} else {
		req.Field, err = driver.Input(ctx, InputConfig{
			Message:   "Field name",
			Default:   seed.Field,
			Validator: required("field name"),
		})
		if err != nil {
			return Request{}, err
		}
	}
	req.Field = strings.TrimSpace(req.Field)

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Control",
		Options:      controls,
		DefaultIndex: max(indexOf(controls, seed.Control), 0),
	})
	if err != nil {
		return Request{}, err
	}
	if idx < 0 {
		return Request{}, fmt.Errorf("prompt: unknown control selection")
	}
	req.Control = controls[idx]

	override, err := driver.Confirm(ctx, ConfirmConfig{Message: "Override label, value or error?"})
	if err != nil {
		return Request{}, err
	}
	if !override {
		return req, nil
	}

	if req.Label, err = driver.Input(ctx, InputConfig{Message: "Label", Default: seed.Label}); err != nil {
		return Request{}, err
	}
	if req.Value, err = driver.Input(ctx, InputConfig{Message: "Value", Default: seed.Value}); err != nil {
		return Request{}, err
	}
	if req.Error, err = driver.Input(ctx, InputConfig{Message: "Error message", Default: seed.Error}); err != nil {
		return Request{}, err
	}
	return req, nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
