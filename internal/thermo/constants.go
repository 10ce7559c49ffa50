package thermo

// Physical constants shared by the microphysics packages.
const (
	// R is the universal gas constant in J/mol/K.
	R = 8.314
	// Rv is the specific gas constant of water vapor in J/kg/K.
	Rv = 461.5
	// Mw is the molar mass of water in kg/mol.
	Mw = 0.018
	// RhoWater is the density of liquid water in kg/m^3.
	RhoWater = 1000.0
	// Lv is the latent heat of vaporization in J/kg.
	Lv = 2.5e6
	// Gravity is the gravitational acceleration in m/s^2.
	Gravity = 9.81
	// Cp is the specific heat of dry air at constant pressure in J/kg/K.
	Cp = 1004.0

	// T0 is the reference temperature of the es(T) curve in K.
	T0 = 273.15
	// Es0 is the saturation vapor pressure at T0 in Pa.
	Es0 = 610.94

	// Floor guards divisions by quantities that may be configured as zero.
	Floor = 1e-12
)
