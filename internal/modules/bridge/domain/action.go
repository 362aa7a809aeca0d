package domain

import "sync"

type Action string

const (
	ActionPing        Action = "ping"
	ActionTogglePanel Action = "togglePanel"
	ActionList        Action = "list"
	ActionAdd         Action = "add"
	ActionEdit        Action = "edit"
	ActionRemove      Action = "remove"
	ActionSave        Action = "save"
	ActionNavigate    Action = "navigate"
	ActionCapture     Action = "capture"
	ActionSync        Action = "sync"
)

// Panel is the bridge-owned visibility flag flipped by togglePanel. The
// registry never sees it.
type Panel struct {
	mu      sync.Mutex
	visible bool
}

func (p *Panel) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = !p.visible
	return p.visible
}

func (p *Panel) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}
