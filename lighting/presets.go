package lighting

import "fmt"

// Preset is one labeled real-world lighting reference value.
type Preset struct {
	Label string
	Value float64
}

// PresetTable is an immutable, ordered label -> value mapping. Order is the
// declaration order and is what the control panel shows.
type PresetTable struct {
	name    string
	presets []Preset
	index   map[string]int
}

// NewPresetTable builds a table from presets in the given order. Duplicate
// labels panic.
func NewPresetTable(name string, presets ...Preset) *PresetTable {
	t := &PresetTable{
		name:    name,
		presets: append([]Preset(nil), presets...),
		index:   make(map[string]int, len(presets)),
	}
	for i, p := range t.presets {
		if _, dup := t.index[p.Label]; dup {
			panic(fmt.Sprintf("lighting: duplicate %s preset %q", name, p.Label))
		}
		t.index[p.Label] = i
	}
	return t
}

// Name returns the table's name, e.g. "bulb power".
func (t *PresetTable) Name() string { return t.name }

func (t *PresetTable) Len() int { return len(t.presets) }

// Lookup returns the value for label. An unknown label is a programming
// error and panics.
func (t *PresetTable) Lookup(label string) float64 {
	i, ok := t.index[label]
	if !ok {
		panic(fmt.Sprintf("lighting: unknown %s preset %q", t.name, label))
	}
	return t.presets[i].Value
}

// Has reports whether label is in the table.
func (t *PresetTable) Has(label string) bool {
	_, ok := t.index[label]
	return ok
}

// Index returns the position of label, or -1.
func (t *PresetTable) Index(label string) int {
	if i, ok := t.index[label]; ok {
		return i
	}
	return -1
}

// Label returns the label at position i.
func (t *PresetTable) Label(i int) string {
	return t.presets[i].Label
}

// Labels returns all labels in declaration order.
func (t *PresetTable) Labels() []string {
	out := make([]string, len(t.presets))
	for i, p := range t.presets {
		out[i] = p.Label
	}
	return out
}

// BulbLuminousPowers maps bulb labels to luminous power in lumens.
var BulbLuminousPowers = NewPresetTable("bulb power",
	Preset{"110000 lm (1000W)", 110000},
	Preset{"3500 lm (300W)", 3500},
	Preset{"1700 lm (100W)", 1700},
	Preset{"800 lm (60W)", 800},
	Preset{"400 lm (40W)", 400},
	Preset{"180 lm (25W)", 180},
	Preset{"20 lm (4W)", 20},
	Preset{"Off", 0},
)

// HemiLuminousIrradiances maps ambient labels to illuminance in lux.
var HemiLuminousIrradiances = NewPresetTable("hemisphere irradiance",
	Preset{"0.0001 lx (Moonless Night)", 0.0001},
	Preset{"0.002 lx (Night Airglow)", 0.002},
	Preset{"0.5 lx (Full Moon)", 0.5},
	Preset{"3.4 lx (City Twilight)", 3.4},
	Preset{"50 lx (Living Room)", 50},
	Preset{"100 lx (Very Overcast)", 100},
	Preset{"350 lx (Office Room)", 350},
	Preset{"400 lx (Sunrise/Sunset)", 400},
	Preset{"1000 lx (Overcast)", 1000},
	Preset{"18000 lx (Daylight)", 18000},
	Preset{"50000 lx (Direct Sun)", 50000},
)

const (
	defaultBulbIndex = 5
	defaultHemiIndex = 6
)
