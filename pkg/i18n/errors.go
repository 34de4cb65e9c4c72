package i18n

import (
	"errors"
	"fmt"
)

var (
	// ErrMessageNotFound is returned by Render when a message has neither a
	// catalogue template nor a fallback text.
	ErrMessageNotFound = errors.New("message not found")

	ErrNilAdapter = errors.New("adapter is nil")
	ErrNilParser  = errors.New("parser is nil")

	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToReadFile  = errors.New("failed to read message file")
	ErrFailedToParseFile = errors.New("failed to parse message file")
	ErrNoMessageFiles    = errors.New("no message files found")
	ErrLoadingCancelled  = errors.New("loading messages cancelled")
)

// ErrLanguageNotSupported indicates that the catalogue has no entries for a
// language.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
