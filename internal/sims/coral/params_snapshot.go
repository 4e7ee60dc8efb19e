package coral

import (
	"math"

	"coral/internal/core"
)

// Parameters reports the configured values and the probabilities derived
// from them.
func (b *Board) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				core.IntParam("rows", "Rows", b.rows),
				core.IntParam("cols", "Cols", b.cols),
				core.Int64Param("seed", "Seed", b.cfg.Seed),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				core.IntParam("hue_diff", "Hue diff", b.cfg.HueDiff),
				core.FloatParam("p_brightness", "Brightness rate", b.cfg.PBrightness),
				core.FloatParam("down_bias", "Down bias", b.cfg.DownBias),
				core.FloatParam("right_bias", "Right bias", b.cfg.RightBias),
			},
		},
		{
			Name: "Derived",
			Params: []core.Parameter{
				core.FloatParam("p_brighter", "P(brighter)", b.rates.pBrighter),
				core.FloatParam("p_down", "P(down)", b.rates.pDown),
				core.FloatParam("p_right", "P(right)", b.rates.pRight),
			},
		},
		{
			Name: "Progress",
			Params: []core.Parameter{
				core.IntParam("step", "Step", b.stepNb),
				core.IntParam("settled", "Settled", b.settled),
				core.IntParam("seeded", "Seeded", b.seeded),
				core.IntParam("front", "Front row", b.front),
			},
		},
	}}
}

var coralControls = []core.ParameterControl{
	{Key: "hue_diff", Label: "Hue diff", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 60, HasMax: true},
	{Key: "p_brightness", Label: "Brightness", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true, Max: 100, HasMax: true},
	{Key: "down_bias", Label: "Down bias", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
	{Key: "right_bias", Label: "Right bias", Type: core.ParamTypeFloat, Step: 0.05, Min: -1, HasMin: true, Max: 1, HasMax: true},
}

// ParameterControls lists the parameters that can be tuned while running.
func (b *Board) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), coralControls...)
}

// SetIntParameter updates an integer parameter, clamped to its control bounds.
func (b *Board) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	v := int(math.Round(ctrl.Clamp(float64(value))))
	switch key {
	case "hue_diff":
		b.cfg.HueDiff = v
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a floating point parameter, clamped to its
// control bounds, and recomputes the derived probabilities.
func (b *Board) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	v := ctrl.Clamp(value)
	switch key {
	case "p_brightness":
		b.cfg.PBrightness = v
	case "down_bias":
		b.cfg.DownBias = v
	case "right_bias":
		b.cfg.RightBias = v
	default:
		return false
	}
	b.rates = b.cfg.rates()
	return true
}

func controlFor(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range coralControls {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}
