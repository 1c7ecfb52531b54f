package registry

func floatPtr(v float64) *float64 { return &v }

// DefaultCoreRegistry returns the built-in registry every document is
// validated against before any project-specific registry is merged in: a
// handful of alignment and weight classes, plus data-sort, data-priority,
// and data-pinned attributes.
func DefaultCoreRegistry() Registry {
	return Registry{
		Version: 1,
		Classes: []ClassDesc{
			{Name: "align-left", Group: "text", ExclusiveGroup: "align", Label: "Left"},
			{Name: "align-center", Group: "text", ExclusiveGroup: "align", Label: "Center"},
			{Name: "align-right", Group: "text", ExclusiveGroup: "align", Label: "Right"},
			{Name: "text-bold", Group: "text", Label: "Bold"},
			{Name: "text-italic", Group: "text", Label: "Italic"},
			{Name: "cell-highlight", Group: "fill", Label: "Highlight"},
		},
		DataAttributes: []AttrDesc{
			{
				Name:    "data-sort",
				Type:    AttrTypeEnum,
				Values:  []string{"asc", "desc", "none"},
				Default: "none",
				Label:   "Sort direction",
			},
			{
				Name:    "data-priority",
				Type:    AttrTypeNumber,
				Min:     floatPtr(0),
				Max:     floatPtr(10),
				Default: float64(0),
				Label:   "Priority",
			},
			{
				Name:        "data-pinned",
				Type:        AttrTypeBoolean,
				Default:     false,
				Label:       "Pinned",
				QuickToggle: true,
			},
		},
		Rules: DefaultRules(),
	}
}
