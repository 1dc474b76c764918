package dmi

import (
	"encoding/json"
	"strings"

	"github.com/rm-hull/dmi-tools/internal/png"
)

const (
	endSentinel = "# END DMI"
	statePrefix = `state = "`
)

// ReadStates returns the icon state names declared in the zTXt chunks of the
// DMI at path, in chunk order then line order. Duplicates are kept.
func ReadStates(path string) ([]string, error) {
	img, err := png.DecodeHeader(path)
	if err != nil {
		return nil, classify("read states", path, err, KindDecode)
	}

	states := []string{}
	for _, chunk := range img.TextChunks {
		text, err := chunk.Text()
		if err != nil {
			return nil, classify("read states", path, err, KindDecode)
		}
		states = append(states, scanStates(text)...)
	}
	return states, nil
}

// scanStates stops at the first line containing the end sentinel.
func scanStates(text string) []string {
	var states []string
	for line := range strings.Lines(text) {
		if strings.Contains(line, endSentinel) {
			break
		}
		if name, ok := stateName(strings.TrimSpace(line)); ok {
			states = append(states, name)
		}
	}
	return states
}

func stateName(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, statePrefix)
	if !ok {
		return "", false
	}
	return strings.CutSuffix(rest, `"`)
}

// StatesJSON is ReadStates serialised as a JSON array of strings.
func StatesJSON(path string) (string, error) {
	states, err := ReadStates(path)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(states)
	if err != nil {
		return "", &Error{Kind: KindSerialization, Op: "read states", Path: path, Err: err}
	}
	return string(b), nil
}
