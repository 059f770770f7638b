package lifecycle

import (
	"github.com/pundit-agent/internal/models"
)

// Selection semantics: one selection set exists per active view. Switching
// views resets it, bulk actions clear it, and individual archive/delete
// operations prune their ID so no dangling member survives.

// SetActiveView switches the selection context between Inbox and Archive,
// resetting any existing selection
func (c *Controller) SetActiveView(scope Scope) {
	c.mu.Lock()
	if c.selectionView != scope {
		c.selectionView = scope
		c.selection = make(map[string]struct{})
		c.focusedID = ""
	}
	c.mu.Unlock()
}

// ActiveView returns the collection the selection currently operates on
func (c *Controller) ActiveView() Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectionView
}

// ToggleSelect flips membership of an article in the selection set. IDs not
// present in the active view's collection are ignored.
func (c *Controller) ToggleSelect(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inActiveViewLocked(id) {
		return
	}
	if _, ok := c.selection[id]; ok {
		delete(c.selection, id)
	} else {
		c.selection[id] = struct{}{}
	}
}

// SelectAll toggles between an empty selection and full membership of the
// active view's collection
func (c *Controller) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.activeListLocked()
	if len(c.selection) == len(list) && len(list) > 0 {
		c.selection = make(map[string]struct{})
		return
	}
	c.selection = make(map[string]struct{}, len(list))
	for _, a := range list {
		c.selection[a.ID] = struct{}{}
	}
}

// ClearSelection empties the selection set
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selection = make(map[string]struct{})
	c.mu.Unlock()
}

// Selected returns the selected IDs in the order they appear in the active
// view's collection
func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []string
	for _, a := range c.activeListLocked() {
		if _, ok := c.selection[a.ID]; ok {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func (c *Controller) activeListLocked() []*models.Article {
	if c.selectionView == ScopeArchive {
		return c.archive
	}
	return c.inbox
}

func (c *Controller) inActiveViewLocked(id string) bool {
	for _, a := range c.activeListLocked() {
		if a.ID == id {
			return true
		}
	}
	return false
}
