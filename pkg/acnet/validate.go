package acnet

// Validate checks in for physically meaningless values. It returns nil when
// the input is acceptable, otherwise one message per violation. Zero
// resistance is legal (a purely reactive loop), as is a circuit with neither
// inductance nor capacitance.
func Validate(in Input) []string {
	var errs []string
	if in.Voltage < 0 {
		errs = append(errs, "voltage must not be negative")
	}
	if in.FrequencyHz <= 0 {
		errs = append(errs, "frequency must be greater than zero")
	}
	if in.Resistance < 0 {
		errs = append(errs, "resistance must not be negative")
	}
	if in.Inductance < 0 {
		errs = append(errs, "inductance must not be negative")
	}
	if in.Capacitance < 0 {
		errs = append(errs, "capacitance must not be negative")
	}
	return errs
}
