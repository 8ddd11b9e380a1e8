package kinematics

const (
	// ElementaryCharge is the charge magnitude of the electron in coulombs.
	ElementaryCharge = 1.602176634e-19

	// ElectronMass is the electron rest mass in kilograms.
	ElectronMass = 9.1093837015e-31

	// SpeedFloor is the smallest forward speed handed to the engine (m/s).
	SpeedFloor = 1e-12

	// GuardFactor sizes the band transverse samples are clamped into,
	// in multiples of the tube height on either side of the tube.
	GuardFactor = 4.0
)

// chargeToMass is q/m with the sign already inverted for display.
const chargeToMass = ElementaryCharge / ElectronMass
