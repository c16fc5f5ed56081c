package actkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/actkit"
	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

func TestDefaultIsShared(t *testing.T) {
	a, err := actkit.Default()
	require.NoError(t, err)
	b, err := actkit.Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestNewSetAdd(t *testing.T) {
	box, err := actkit.New(actkit.HBoxType, actkit.Actions{"spacing": 2})
	require.NoError(t, err)

	ok, err := actkit.New(actkit.ButtonType, actkit.Actions{"label": "OK"})
	require.NoError(t, err)

	_, err = actkit.Add(box, actkit.Actions{"children": []actkit.Widget{ok}})
	require.NoError(t, err)
	assert.Equal(t, []toolkit.Object{ok}, box.(*toolkit.HBox).Children())

	_, err = actkit.Set(ok, actkit.Actions{"label": "Done", "sensitive": false})
	require.NoError(t, err)
	assert.Equal(t, "Done", ok.(*toolkit.Button).Label())

	_, err = actkit.Set(ok, actkit.Actions{"colour": "red"})
	var de *dispatcher.DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"colour"}, de.Actions)
}

func TestNewEngineIsIndependent(t *testing.T) {
	e, err := actkit.NewEngine(actkit.WithEngineOptions(dispatcher.WithConfig(dispatcher.DefaultConfig().WithMetrics())))
	require.NoError(t, err)
	def, err := actkit.Default()
	require.NoError(t, err)
	assert.NotSame(t, def, e)

	_, err = e.Create(actkit.LabelType, actkit.Actions{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), e.Metrics().Snapshot().TotalDispatches)
}

func TestLookup(t *testing.T) {
	typ, ok := actkit.Lookup("Window")
	require.True(t, ok)
	assert.Same(t, actkit.WindowType, typ)
}

// gauge is a widget family defined outside the standard handlers.
type gauge struct {
	toolkit.Widget
	level int
	unit  string
}

var gaugeType *toolkit.Type

func init() {
	gaugeType = toolkit.NewType("Gauge", toolkit.WidgetType, func() toolkit.Object { return newGauge() })
}

func newGauge() *gauge {
	g := &gauge{unit: "%"}
	g.InitWidget(gaugeType, g)
	return g
}

func (g *gauge) SetLevel(level int) { g.level = level }

type gaugeHandler struct {
	actkit.Base
}

func (h *gaugeHandler) OnActionUnit(ctx *actkit.Context, arg any) error {
	unit, err := action.String(arg)
	if err != nil {
		return err
	}
	if unit == "" {
		return actkit.ErrDecline
	}
	ctx.Widget.(*gauge).unit = unit
	return nil
}

func TestCustomHandler(t *testing.T) {
	def := actkit.Define(gaugeType, func() *gaugeHandler { return &gaugeHandler{} }).
		Set("level").
		Callback("unit", (*gaugeHandler).OnActionUnit).
		Definition()

	e, err := actkit.NewEngine(actkit.WithDefinitions(def))
	require.NoError(t, err)

	obj, err := e.Create(gaugeType, actkit.Actions{"level": 40, "unit": "rpm", "tooltip_text": "speed"})
	require.NoError(t, err)
	g := obj.(*gauge)
	assert.Equal(t, 40, g.level)
	assert.Equal(t, "rpm", g.unit)
	assert.Equal(t, "speed", g.TooltipText())
	assert.True(t, g.Visible())

	_, err = e.Configure(g, actkit.Actions{"unit": ""})
	assert.ErrorIs(t, err, dispatcher.ErrUnknownActions)

	_, err = actkit.New(gaugeType, actkit.Actions{})
	assert.ErrorIs(t, err, dispatcher.ErrUnsupportedType)

	_, err = actkit.NewEngine(actkit.WithDefinitions(def, def))
	assert.ErrorIs(t, err, dispatcher.ErrDuplicateRegistration)
}
