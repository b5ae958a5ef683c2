package content

// Kind tags which field of an Item is set.
type Kind int

const (
	KindArea Kind = iota + 1
	KindSkill
	KindProject
	KindBeacon
	KindLedger
	KindTool
	KindProfile
)

func (k Kind) String() string {
	switch k {
	case KindArea:
		return "area"
	case KindSkill:
		return "skill"
	case KindProject:
		return "project"
	case KindBeacon:
		return "beacon"
	case KindLedger:
		return "ledger"
	case KindTool:
		return "tool"
	case KindProfile:
		return "profile"
	}
	return "unknown"
}

// Item is a resolved content id. Exactly the pointer matching Kind is non-nil.
type Item struct {
	Kind    Kind
	ID      string
	Area    *Area
	Skill   *SkillItem
	Project *Project
	Beacon  *Beacon
	Ledger  *Ledger
	Tool    *Tool
	Profile *Profile
}

// Title is the heading an info panel shows for the item.
func (i Item) Title() string {
	switch i.Kind {
	case KindArea:
		return i.Area.Name
	case KindSkill:
		return i.Skill.Title
	case KindProject:
		return i.Project.Name
	case KindBeacon:
		return "The Beacon"
	case KindLedger:
		return "The Ledger"
	case KindTool:
		return i.Tool.Name
	case KindProfile:
		return i.Profile.Name
	}
	return ""
}

// Library indexes a content document by id.
type Library struct {
	doc   Document
	index map[string]Item
}

// New indexes doc. When ids collide the earlier kind wins, in the order
// area, skill, project, observatory overlay, telescope tool, profile.
func New(doc Document) *Library {
	l := &Library{doc: doc, index: make(map[string]Item)}
	put := func(item Item) {
		if item.ID == "" {
			return
		}
		if _, taken := l.index[item.ID]; !taken {
			l.index[item.ID] = item
		}
	}
	for i := range l.doc.Areas {
		a := &l.doc.Areas[i]
		put(Item{Kind: KindArea, ID: a.ID, Area: a})
	}
	for i := range l.doc.Areas {
		for j := range l.doc.Areas[i].Items {
			s := &l.doc.Areas[i].Items[j]
			put(Item{Kind: KindSkill, ID: s.ID, Skill: s})
		}
	}
	for i := range l.doc.Projects {
		p := &l.doc.Projects[i]
		put(Item{Kind: KindProject, ID: p.ID, Project: p})
	}
	if obs := l.doc.Observatory; obs != nil {
		put(Item{Kind: KindBeacon, ID: BeaconID, Beacon: &obs.Beacon})
		put(Item{Kind: KindLedger, ID: LedgerID, Ledger: &obs.Ledger})
		for i := range obs.Telescope.Tools {
			t := &obs.Telescope.Tools[i]
			put(Item{Kind: KindTool, ID: t.ID, Tool: t})
		}
	}
	put(Item{Kind: KindProfile, ID: ProfileID, Profile: &l.doc.Profile})
	return l
}

// Lookup resolves id.
func (l *Library) Lookup(id string) (Item, error) {
	if l == nil {
		return Item{}, ErrNotFound
	}
	item, ok := l.index[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

// Has reports whether id resolves.
func (l *Library) Has(id string) bool {
	_, err := l.Lookup(id)
	return err == nil
}

// Tool returns the telescope tool with id.
func (l *Library) Tool(id string) (Tool, bool) {
	item, err := l.Lookup(id)
	if err != nil || item.Kind != KindTool {
		return Tool{}, false
	}
	return *item.Tool, true
}

// Profile returns the CV owner's profile.
func (l *Library) Profile() Profile {
	if l == nil {
		return Profile{}
	}
	return l.doc.Profile
}
