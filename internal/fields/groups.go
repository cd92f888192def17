package fields

// GroupName identifies a repeatable entry group.
type GroupName string

// Entry groups of the CV.
const (
	GroupExperience     GroupName = "experience"
	GroupEducation      GroupName = "education"
	GroupProjects       GroupName = "projects"
	GroupInternProjects GroupName = "intern-projects"
)

// Layout selects how an entry of a group is laid out in the preview.
type Layout string

// Entry layouts.
const (
	LayoutExperience Layout = "experience"
	LayoutEducation  Layout = "education"
	LayoutProject    Layout = "project"
)

// SubField describes one named input of an entry.
//
// Key is the name used in persisted snapshots. It must stay stable so previously stored
// data keeps loading.
type SubField struct {
	Name        string
	Key         string
	Label       string
	Placeholder string
	Fallback    string
	Multiline   bool
}

// GroupSchema is the fixed sub-field schema of an entry group.
type GroupSchema struct {
	Name      GroupName
	Title     string
	Preview   string
	Section   string
	Layout    Layout
	SubFields []SubField
}

// SubField returns the descriptor with the given name.
func (g GroupSchema) SubField(name string) (SubField, bool) {
	for _, sf := range g.SubFields {
		if sf.Name == name {
			return sf, true
		}
	}
	return SubField{}, false
}

// SubFieldByKey returns the descriptor with the given persisted key.
func (g GroupSchema) SubFieldByKey(key string) (SubField, bool) {
	for _, sf := range g.SubFields {
		if sf.Key == key {
			return sf, true
		}
	}
	return SubField{}, false
}

// Names returns the sub-field names in schema order.
func (g GroupSchema) Names() []string {
	names := make([]string, len(g.SubFields))
	for i, sf := range g.SubFields {
		names[i] = sf.Name
	}
	return names
}
