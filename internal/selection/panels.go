package selection

// Toggle is an element that can be shown or hidden.
type Toggle interface {
	Show()
	Hide()
}

type costEntry struct {
	control Toggle
	panel   Toggle
}

// CostPanels maps "show cost" control ids to the control and its detail
// panel. It is filled once when a page is built.
type CostPanels struct {
	entries map[string]costEntry
}

// NewCostPanels returns an empty registry.
func NewCostPanels() *CostPanels {
	return &CostPanels{entries: make(map[string]costEntry)}
}

// PanelID returns the identifier of the detail panel paired with a
// "show cost" control.
func PanelID(itemID string) string {
	return "pre" + itemID
}

// Register pairs the control itemID with its detail panel. Registering the
// same id again replaces the previous pair.
func (p *CostPanels) Register(itemID string, control, panel Toggle) {
	p.entries[itemID] = costEntry{control: control, panel: panel}
}

// Has reports whether itemID has been registered.
func (p *CostPanels) Has(itemID string) bool {
	_, ok := p.entries[itemID]
	return ok
}

// Len returns the number of registered controls.
func (p *CostPanels) Len() int {
	return len(p.entries)
}

// Reveal shows the panel of itemID and hides the control. It reports
// whether itemID was known; unknown ids are a no-op.
func (p *CostPanels) Reveal(itemID string) bool {
	entry, ok := p.entries[itemID]
	if !ok {
		return false
	}

	if entry.panel != nil {
		entry.panel.Show()
	}

	if entry.control != nil {
		entry.control.Hide()
	}

	return true
}
