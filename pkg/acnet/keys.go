package acnet

// Keys lists the Result fields in evaluation order, using the same snake_case
// names as the JSON encoding. Worksheets and sweep exports address AC
// quantities by these keys.
var Keys = []string{
	"frequency_hz",
	"inductive_reactance",
	"capacitive_reactance",
	"net_reactance",
	"impedance",
	"phase_degrees",
	"power_factor",
	"current",
	"apparent_power",
	"real_power",
	"reactive_power",
}

// Get returns the Result field named by key, or false for an unknown key.
func (r Result) Get(key string) (float64, bool) {
	switch key {
	case "frequency_hz":
		return r.FrequencyHz, true
	case "inductive_reactance":
		return r.InductiveReactance, true
	case "capacitive_reactance":
		return r.CapacitiveReactance, true
	case "net_reactance":
		return r.NetReactance, true
	case "impedance":
		return r.Impedance, true
	case "phase_degrees":
		return r.PhaseDegrees, true
	case "power_factor":
		return r.PowerFactor, true
	case "current":
		return r.Current, true
	case "apparent_power":
		return r.ApparentPower, true
	case "real_power":
		return r.RealPower, true
	case "reactive_power":
		return r.ReactivePower, true
	}
	return 0, false
}

// ValidKey reports whether key names a Result field.
func ValidKey(key string) bool {
	_, ok := Result{}.Get(key)
	return ok
}
