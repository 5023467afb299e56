package wallpaper

import "fmt"

// ItemKind tells the host what an Item stands for.
type ItemKind int

const (
	// KindWallpaper is a real search result carrying an ApplyRequest.
	KindWallpaper ItemKind = iota
	// KindPrompt asks the user to keep typing.
	KindPrompt
	// KindNoResults reports an empty result set.
	KindNoResults
	// KindNetworkError reports a failure to reach the catalog.
	KindNetworkError
	// KindError reports any other failure.
	KindError
)

var itemKindNames = map[ItemKind]string{
	KindWallpaper:    "wallpaper",
	KindPrompt:       "prompt",
	KindNoResults:    "no_results",
	KindNetworkError: "network_error",
	KindError:        "error",
}

// String provides a human-readable representation for the ItemKind.
func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *ItemKind) UnmarshalText(b []byte) error {
	for kind, name := range itemKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown item kind %q", string(b))
}

// ApplyRequest is attached to a result and handed back when the user selects it.
type ApplyRequest struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Item is one entry of the result list shown by the launcher.
type Item struct {
	Kind        ItemKind      `json:"kind"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Action      *ApplyRequest `json:"action,omitempty"` // nil means "close the window"
	Err         error         `json:"-"`                // cause for error items or a degraded thumbnail
}

// IsPlaceholder reports whether the item stands in for results instead of being one.
func (i Item) IsPlaceholder() bool {
	return i.Kind != KindWallpaper
}
