package lighting

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Params holds the user-tunable lighting values. One instance is created at
// startup and shared by the control panel (writer) and the Updater
// (reader). Both run on the frame thread, so no locking is needed.
type Params struct {
	shadows bool
	// exposure is the slider position in [0,1], not the tone-mapping value.
	exposure float32
	bulb     string
	hemi     string

	bulbTable *PresetTable
	hemiTable *PresetTable
}

// NewParams returns params bound to the given preset tables, with shadows
// on, exposure 0.5 and the default entries of each table selected.
func NewParams(bulbTable, hemiTable *PresetTable) *Params {
	return &Params{
		shadows:   true,
		exposure:  0.5,
		bulb:      bulbTable.Label(defaultBulbIndex),
		hemi:      hemiTable.Label(defaultHemiIndex),
		bulbTable: bulbTable,
		hemiTable: hemiTable,
	}
}

// DefaultParams uses BulbLuminousPowers and HemiLuminousIrradiances.
func DefaultParams() *Params {
	return NewParams(BulbLuminousPowers, HemiLuminousIrradiances)
}

func (p *Params) ShadowsEnabled() bool { return p.shadows }

func (p *Params) SetShadowsEnabled(on bool) { p.shadows = on }

func (p *Params) Exposure() float32 { return p.exposure }

// SetExposure clamps v to [0,1].
func (p *Params) SetExposure(v float32) {
	p.exposure = mgl32.Clamp(v, 0, 1)
}

func (p *Params) BulbPower() string { return p.bulb }

// SetBulbPower selects a bulb preset. Labels outside the table panic.
func (p *Params) SetBulbPower(label string) {
	if !p.bulbTable.Has(label) {
		panic(fmt.Sprintf("lighting: unknown bulb power %q", label))
	}
	p.bulb = label
}

func (p *Params) HemiIrradiance() string { return p.hemi }

// SetHemiIrradiance selects a hemisphere preset. Labels outside the table
// panic.
func (p *Params) SetHemiIrradiance(label string) {
	if !p.hemiTable.Has(label) {
		panic(fmt.Sprintf("lighting: unknown hemisphere irradiance %q", label))
	}
	p.hemi = label
}

func (p *Params) BulbTable() *PresetTable { return p.bulbTable }

func (p *Params) HemiTable() *PresetTable { return p.hemiTable }
