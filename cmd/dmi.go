package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rm-hull/dmi-tools/internal/dmi"
)

func Strip(w io.Writer, host *dmi.Host, path string) error {
	return report(w, host.StripMetadata(path))
}

func Create(w io.Writer, host *dmi.Host, path, width, height, data string) error {
	return report(w, host.CreatePNG(path, width, height, data))
}

func Resize(w io.Writer, host *dmi.Host, path, width, height, filter string) error {
	return report(w, host.ResizePNG(path, width, height, filter))
}

func States(w io.Writer, host *dmi.Host, path string) error {
	result := host.IconStates(path)
	if result == "" {
		return errors.New("no icon states could be read")
	}
	_, err := fmt.Fprintln(w, result)
	return err
}

// report turns a non-empty host result (the error text) back into an error so
// the process exits non-zero.
func report(w io.Writer, result string) error {
	if result != "" {
		return errors.New(result)
	}
	_, err := fmt.Fprintln(w, "ok")
	return err
}
