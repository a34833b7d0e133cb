package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedVariant is returned when a persisted record carries none or
// more than one of the known tags.
var ErrUnrecognizedVariant = errors.New("unrecognized layout item variant")

// DecodeError reports which record of a layout failed to decode.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode layout record %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// legacyAppTag is the key written by the original macOS layout.json.
const legacyAppTag = "app"

type wireRecord struct {
	Application *Application `json:"application,omitempty"`
	Folder      *wireFolder  `json:"folder,omitempty"`
}

type wireFolder struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Apps []Application `json:"apps"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	switch it.kind {
	case KindApplication:
		app := it.app
		return json.Marshal(wireRecord{Application: &app})
	case KindFolder:
		apps := it.folder.Apps
		if apps == nil {
			apps = []Application{}
		}
		return json.Marshal(wireRecord{Folder: &wireFolder{ID: it.folder.ID, Name: it.folder.Name, Apps: apps}})
	default:
		return nil, ErrUnrecognizedVariant
	}
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	tags := 0
	var appRaw json.RawMessage
	for _, k := range []string{string(KindApplication), legacyAppTag} {
		if v, ok := raw[k]; ok && !isNull(v) {
			tags++
			appRaw = v
		}
	}
	folderRaw, hasFolder := raw[string(KindFolder)]
	if hasFolder && !isNull(folderRaw) {
		tags++
	} else {
		hasFolder = false
	}
	if tags != 1 {
		return ErrUnrecognizedVariant
	}

	if hasFolder {
		var f wireFolder
		if err := json.Unmarshal(folderRaw, &f); err != nil {
			return fmt.Errorf("folder: %w", err)
		}
		if strings.TrimSpace(f.ID) == "" {
			return errors.New("folder: missing id")
		}
		for _, a := range f.Apps {
			if strings.TrimSpace(a.ID) == "" {
				return fmt.Errorf("folder %s: app with missing id", f.ID)
			}
		}
		if f.Apps == nil {
			f.Apps = []Application{}
		}
		*it = Item{kind: KindFolder, folder: Folder{ID: f.ID, Name: f.Name, Apps: f.Apps}}
		return nil
	}

	var app Application
	if err := json.Unmarshal(appRaw, &app); err != nil {
		return fmt.Errorf("application: %w", err)
	}
	if strings.TrimSpace(app.ID) == "" {
		return errors.New("application: missing id")
	}
	*it = Item{kind: KindApplication, app: app}
	return nil
}

// EncodeLayout writes items as an ordered array of tagged records.
func EncodeLayout(items []Item, pretty bool) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	if pretty {
		return json.MarshalIndent(items, "", "  ")
	}
	return json.Marshal(items)
}

// DecodeLayout parses an ordered array of tagged records. A record that fails
// to decode yields a *DecodeError; nothing is partially returned.
func DecodeLayout(b []byte) ([]Item, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(raws))
	for i, r := range raws {
		var it Item
		if err := it.UnmarshalJSON(r); err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		items = append(items, it)
	}
	return items, nil
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
