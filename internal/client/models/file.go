package models

var defaultFileFields = map[Kind][]string{
	KindApplication: {
		"funding_sources",
		"demographics",
		"fiscal_letter",
		"budget1",
		"budget2",
		"budget3",
		"project_budget_file",
	},
	KindReport: {
		"photo1",
		"photo2",
		"photo3",
		"photo4",
		"photo_release",
	},
}

// DefaultFileFields lists the file inputs a draft of kind k renders.
func DefaultFileFields(k Kind) []string {
	return append([]string(nil), defaultFileFields[k]...)
}
