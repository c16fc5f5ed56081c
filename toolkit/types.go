package toolkit

// Declared types. They are assigned during package initialization in
// lineage order so every parent exists before its children.
var (
	ObjectType         *Type
	WidgetType         *Type
	ContainerType      *Type
	BinType            *Type
	WindowType         *Type
	ButtonType         *Type
	BoxType            *Type
	VBoxType           *Type
	HBoxType           *Type
	TreeViewType       *Type
	LabelType          *Type
	EntryType          *Type
	StatusIconType     *Type
	TreeSelectionType  *Type
	ScrolledWindowType *Type
	AdjustmentType     *Type
)

// Declared capabilities.
var (
	// SortableCapability is provided by types implementing Sortable.
	SortableCapability *Type
)

func init() {
	ObjectType = NewType("Object", Root, func() Object { return NewObject() }, "notify")
	WidgetType = NewType("Widget", ObjectType,
		func() Object { return NewWidget() },
		"show", "hide", "destroy")
	ContainerType = NewType("Container", WidgetType, func() Object { return NewContainer() })
	BinType = NewType("Bin", ContainerType, func() Object { return NewBin() })

	WindowType = NewType("Window", BinType,
		func() Object { return NewWindow(WindowToplevel) },
		"delete-event", "configure-event")
	ButtonType = NewType("Button", BinType,
		func() Object { return NewButton() },
		"clicked")

	BoxType = NewType("Box", ContainerType, func() Object { return NewBox() })
	VBoxType = NewType("VBox", BoxType, func() Object { return NewVBox() })
	HBoxType = NewType("HBox", BoxType, func() Object { return NewHBox() })
	ScrolledWindowType = NewType("ScrolledWindow", BinType,
		func() Object { return NewScrolledWindow(nil, nil) })
	TreeViewType = NewType("TreeView", ContainerType, func() Object { return NewTreeView() })

	LabelType = NewType("Label", WidgetType, func() Object { return NewLabel("") })
	EntryType = NewType("Entry", WidgetType,
		func() Object { return NewEntry(0) },
		"changed", "activate")

	StatusIconType = NewType("StatusIcon", ObjectType,
		func() Object { return NewStatusIcon() },
		"activate", "popup-menu")
	TreeSelectionType = NewType("TreeSelection", ObjectType,
		func() Object { return newTreeSelection() },
		"changed")
	AdjustmentType = NewType("Adjustment", ObjectType,
		func() Object { return NewAdjustment(0, 0, 0, 0, 0, 0) },
		"changed", "value-changed")

	SortableCapability = NewCapability[Sortable]("TreeSortable")
}
