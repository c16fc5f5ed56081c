package handlers

import (
	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/dispatcher/handler"
)

// Definitions returns the standard handler definitions, least-derived
// first, followed by the capability handlers.
func Definitions() []*handler.Definition {
	return []*handler.Definition{
		objectDefinition(),
		statusIconDefinition(),
		adjustmentDefinition(),
		widgetDefinition(),
		labelDefinition(),
		entryDefinition(),
		containerDefinition(),
		binDefinition(),
		windowDefinition(),
		scrolledWindowDefinition(),
		buttonDefinition(),
		boxDefinition(),
		vboxDefinition(),
		hboxDefinition(),
		treeViewDefinition(),
		sortableDefinition(),
	}
}

// Register adds the standard handlers to reg.
func Register(reg *dispatcher.Registry) error {
	for _, def := range Definitions() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}
