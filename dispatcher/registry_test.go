package dispatcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

func newPanelHandler() *panelHandler { return &panelHandler{tr: &trace{}} }

func TestRegisterMissingSetterMethod(t *testing.T) {
	reg := dispatcher.NewRegistry()

	err := reg.Register(handler.Define(panelType, newPanelHandler).Set("color", "weight").Definition())
	require.ErrorIs(t, err, dispatcher.ErrMissingSetterMethod)

	var re *dispatcher.RegistrationError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "weight", re.Action)
	assert.Same(t, panelType, re.Type)
	assert.Contains(t, err.Error(), "SetWeight")

	// Nothing was recorded, so a corrected definition still registers.
	_, ok := reg.Lookup(panelType)
	assert.False(t, ok)
	assert.Zero(t, reg.Len())
	require.NoError(t, reg.Register(handler.Define(panelType, newPanelHandler).Set("color").Definition()))
}

func TestRegisterExplicitSetterMethod(t *testing.T) {
	reg := dispatcher.NewRegistry()
	require.NoError(t, reg.Register(
		handler.Define(panelType, newPanelHandler).SetVia("paint", "SetColor").Definition(),
	))
	e := dispatcher.New(reg.MustSeal())

	obj, err := e.Create(panelType, map[string]any{"paint": "teal"})
	require.NoError(t, err)
	assert.Equal(t, "teal", obj.(*panel).color)

	err = dispatcher.NewRegistry().Register(
		handler.Define(panelType, newPanelHandler).SetVia("paint", "Paint").Definition(),
	)
	assert.ErrorIs(t, err, dispatcher.ErrMissingSetterMethod)
}

func TestRegisterSetterShape(t *testing.T) {
	for _, method := range []string{"Resize", "Count", "Notes"} {
		err := dispatcher.NewRegistry().Register(
			handler.Define(panelType, newPanelHandler).SetVia("x", method).Definition(),
		)
		assert.ErrorIs(t, err, dispatcher.ErrInvalidHandler, method)
	}
}

func TestRegisterInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  *handler.Definition
	}{
		{"nil definition", nil},
		{"no type", &handler.Definition{New: func() handler.Handler { return newPanelHandler() }}},
		{"no factory", &handler.Definition{Type: panelType}},
		{"factory returns nil", handler.Define(panelType, func() *panelHandler { return nil }).Definition()},
		{"empty setter action", handler.Define(panelType, newPanelHandler).Set("").Definition()},
		{"duplicate setter", handler.Define(panelType, newPanelHandler).Set("color", "color").Definition()},
		{"setter and callback", handler.Define(panelType, newPanelHandler).
			Set("color").
			Callback("color", (*panelHandler).OnActionFail).
			Definition()},
		{"nil callback", handler.Define(panelType, newPanelHandler).Callback("fail", nil).Definition()},
		{"empty callback action", handler.Define(panelType, newPanelHandler).
			Callback("", (*panelHandler).OnActionFail).
			Definition()},
		{"self conflict", handler.Define(panelType, newPanelHandler).Conflict("show", "show").Definition()},
		{"empty conflict", handler.Define(panelType, newPanelHandler).Conflict("show", "").Definition()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := dispatcher.NewRegistry()
			err := reg.Register(tt.def)
			assert.ErrorIs(t, err, dispatcher.ErrInvalidHandler)
			assert.Zero(t, reg.Len())
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := dispatcher.NewRegistry()
	require.NoError(t, reg.Register(panelDef(&trace{})))

	err := reg.Register(panelDef(&trace{}))
	require.ErrorIs(t, err, dispatcher.ErrDuplicateRegistration)
	assert.Equal(t, 1, reg.Len())
}

func TestMustRegisterPanics(t *testing.T) {
	reg := dispatcher.NewRegistry()
	assert.Panics(t, func() {
		reg.MustRegister(panelDef(&trace{}), panelDef(&trace{}))
	})
}

func TestSealFreezesRegistry(t *testing.T) {
	reg := dispatcher.NewRegistry()
	require.NoError(t, reg.Register(panelDef(&trace{})))
	assert.False(t, reg.Sealed())

	first, err := reg.Seal()
	require.NoError(t, err)
	second, err := reg.Seal()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.True(t, reg.Sealed())

	err = reg.Register(fancyDef(&trace{}))
	require.ErrorIs(t, err, dispatcher.ErrRegistryFrozen)

	_, ok := first.Lookup(fancyPanelType)
	assert.False(t, ok)
	def, ok := reg.Lookup(panelType)
	require.True(t, ok)
	assert.Same(t, panelType, def.Type)
}

func TestTableActions(t *testing.T) {
	e := newTestEngine(t, &trace{})

	byName := make(map[string]dispatcher.ActionInfo)
	var names []string
	for _, info := range e.Table().Actions(fancyPanelType) {
		byName[info.Name] = info
		names = append(names, info.Name)
	}

	assert.IsIncreasing(t, names)
	assert.Equal(t, dispatcher.ActionInfo{Name: "color", Handler: panelType, Kind: dispatcher.SetterAction, Method: "SetColor"}, byName["color"])
	assert.Equal(t, dispatcher.CallbackAction, byName["glow"].Kind)
	assert.Same(t, fancyPanelType, byName["glow"].Handler)
	// Declared by Widget and Object; the most-derived handler wins.
	assert.Same(t, toolkit.WidgetType, byName["tag"].Handler)

	assert.Nil(t, e.Table().Actions(toolkit.LabelType))
	_, ok := e.Table().Plan(toolkit.LabelType)
	assert.False(t, ok)
}

func TestAncestors(t *testing.T) {
	chain := dispatcher.Ancestors(fancyPanelType)
	assert.Equal(t, []*toolkit.Type{fancyPanelType, panelType, toolkit.WidgetType, toolkit.ObjectType, toolkit.Root}, chain)
	assert.Equal(t, chain, dispatcher.Ancestors(fancyPanelType))
}
