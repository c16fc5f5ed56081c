package handler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

type labelHandler struct {
	handler.Base
	seen []any
}

func (h *labelHandler) OnActionMarkup(ctx *handler.Context, arg any) error {
	h.seen = append(h.seen, arg)
	return nil
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "create", handler.Create.String())
	assert.Equal(t, "configure", handler.Configure.String())
	assert.Equal(t, "compose", handler.Compose.String())
	assert.Equal(t, "unknown", handler.Method(42).String())
}

func TestBaseDefaults(t *testing.T) {
	var b handler.Base
	ctx := &handler.Context{Method: handler.Create, Type: toolkit.LabelType, Target: toolkit.LabelType}

	obj, err := b.Create(ctx)
	require.NoError(t, err)
	assert.Same(t, toolkit.LabelType, obj.Type())

	assert.NoError(t, b.Before(ctx))
	assert.NoError(t, b.After(ctx))
	assert.True(t, ctx.IsCreate())
	assert.False(t, ctx.IsConfigure())
	assert.False(t, ctx.IsCompose())
}

func TestBaseCreateAbstractRoot(t *testing.T) {
	var b handler.Base
	obj, err := b.Create(&handler.Context{Type: toolkit.Root})
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestSetterMethodName(t *testing.T) {
	assert.Equal(t, "SetTitle", handler.SetterSpec{Action: "title"}.MethodName())
	assert.Equal(t, "SetDefaultWidth", handler.SetterSpec{Action: "default_width"}.MethodName())
	assert.Equal(t, "SetBorderWidth", handler.SetterSpec{Action: "border", Method: "SetBorderWidth"}.MethodName())
	assert.Equal(t, "HeadersVisible", handler.CamelCase("headers-visible"))
}

func TestDefineBuildsDefinition(t *testing.T) {
	def := handler.Define(toolkit.LabelType, func() *labelHandler { return &labelHandler{} }).
		Set("text", "selectable").
		SetVia("caption", "SetText").
		Callback("markup", (*labelHandler).OnActionMarkup).
		Conflict("text", "markup").
		Definition()

	assert.Same(t, toolkit.LabelType, def.Type)
	require.Len(t, def.Setters, 3)
	assert.Equal(t, "SetText", def.Setters[2].MethodName())
	assert.ElementsMatch(t, []string{"text", "selectable", "caption", "markup"}, def.Actions())
	assert.Equal(t, [][2]string{{"text", "markup"}}, def.Conflicts)

	h := def.New()
	require.IsType(t, &labelHandler{}, h)
	assert.NotSame(t, h, def.New())

	cb := def.Callbacks["markup"]
	require.NotNil(t, cb)
	require.NoError(t, cb(h, &handler.Context{Actions: action.Map{}}, "<b>x</b>"))
	assert.Equal(t, []any{"<b>x</b>"}, h.(*labelHandler).seen)
}

func TestDefineNilCallbackRecorded(t *testing.T) {
	def := handler.Define(toolkit.LabelType, func() *labelHandler { return &labelHandler{} }).
		Callback("markup", nil).
		Definition()

	cb, ok := def.Callbacks["markup"]
	assert.True(t, ok)
	assert.Nil(t, cb)
}

func TestOutcomeOK(t *testing.T) {
	assert.True(t, (&handler.Outcome{}).OK())
	assert.False(t, (&handler.Outcome{Err: errors.New("boom")}).OK())
}
