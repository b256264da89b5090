package system

import (
	"errors"
	"sync"

	"golang.design/x/clipboard"
)

var ErrNoClipboard = errors.New("system: clipboard unavailable")

// Clipboard exchanges share codes with other programs.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

type systemClipboard struct{}

// NewClipboard returns the OS clipboard, or an in-process one when the
// platform offers none (headless Linux without X11, for example).
func NewClipboard() Clipboard {
	if err := clipboard.Init(); err != nil {
		return &MemoryClipboard{}
	}
	return systemClipboard{}
}

func (systemClipboard) ReadText() (string, error) {
	b := clipboard.Read(clipboard.FmtText)
	if b == nil {
		return "", ErrNoClipboard
	}
	return string(b), nil
}

func (systemClipboard) WriteText(s string) error {
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// MemoryClipboard keeps text inside the process.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (m *MemoryClipboard) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return "", ErrNoClipboard
	}
	return m.text, nil
}

func (m *MemoryClipboard) WriteText(s string) error {
	m.mu.Lock()
	m.text = s
	m.mu.Unlock()
	return nil
}
