package body

import "fmt"

// Star is an astrometric catalog record. Angles are radians at the
// J2000.0 epoch.
type Star struct {
	ID            string
	HR            *uint16 // Harvard Revised (Bright Star) number
	Name          string
	CommonName    string
	Bayer         string
	BayerFull     string
	Constellation string
	Notes         []Note

	RA    float64
	Dec   float64
	PMRA  float64 // dRA/dt in rad/yr, not cos δ·dRA/dt
	PMDec float64 // rad/yr

	Parallax       float64 // arcseconds
	RadialVelocity float64 // km/s, positive receding

	VisualMagnitude float64
	BV              *float64 // B−V color index
}

// Note is a free-form catalog remark.
type Note struct {
	Category string
	Remark   string
}

// StarID formats the identifier for a Harvard Revised number.
func StarID(hr uint16) string {
	return fmt.Sprintf("HR %d", hr)
}

func deriveStarID(s Star) string {
	if s.HR != nil {
		return StarID(*s.HR)
	}
	return s.Name
}
