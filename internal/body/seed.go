package body

import "math"

// brightStar is a compact catalog row. Coordinates are J2000 degrees,
// proper motion is mas/yr with the RA component multiplied by cos δ,
// parallax is mas.
type brightStar struct {
	hr            uint16
	name          string
	bayer         string
	constellation string
	raDeg, decDeg float64
	pmRACosDec    float64
	pmDec         float64
	parallax      float64
	rv            float64
	mag, bv       float64
}

// brightStars are the brightest stars of the Yale Bright Star Catalog,
// ordered roughly by magnitude.
var brightStars = []brightStar{
	{2491, "Sirius", "Alp CMa", "CMa", 101.287155, -16.716116, -546.01, -1223.07, 379.21, -5.5, -1.46, 0.00},
	{2326, "Canopus", "Alp Car", "Car", 95.987958, -52.695661, 19.93, 23.24, 10.55, 20.3, -0.72, 0.15},
	{5340, "Arcturus", "Alp Boo", "Boo", 213.915300, 19.182410, -1093.39, -2000.06, 88.83, -5.19, -0.04, 1.23},
	{7001, "Vega", "Alp Lyr", "Lyr", 279.234735, 38.783689, 200.94, 286.23, 130.23, -13.9, 0.03, 0.00},
	{1708, "Capella", "Alp Aur", "Aur", 79.172328, 45.997991, 75.25, -426.89, 76.20, 29.19, 0.08, 0.80},
	{1713, "Rigel", "Bet Ori", "Ori", 78.634467, -8.201638, 1.31, 0.50, 3.78, 17.8, 0.12, -0.03},
	{2943, "Procyon", "Alp CMi", "CMi", 114.825498, 5.224988, -714.59, -1036.80, 284.56, -3.2, 0.38, 0.42},
	{472, "Achernar", "Alp Eri", "Eri", 24.428523, -57.236753, 87.00, -38.24, 23.39, 16.0, 0.46, -0.16},
	{2061, "Betelgeuse", "Alp Ori", "Ori", 88.792939, 7.407064, 27.54, 11.30, 6.55, 21.91, 0.50, 1.85},
	{5267, "Hadar", "Bet Cen", "Cen", 210.955856, -60.373035, -33.27, -23.16, 8.32, 5.9, 0.61, -0.23},
	{7557, "Altair", "Alp Aql", "Aql", 297.695827, 8.868321, 536.23, 385.29, 194.95, -26.1, 0.77, 0.22},
	{4730, "Acrux", "Alp1Cru", "Cru", 186.649563, -63.099093, -35.83, -14.86, 10.13, -11.2, 1.33, -0.24},
	{1457, "Aldebaran", "Alp Tau", "Tau", 68.980163, 16.509302, 63.45, -188.94, 48.94, 54.26, 0.85, 1.54},
	{6134, "Antares", "Alp Sco", "Sco", 247.351915, -26.432003, -12.11, -23.30, 5.89, -3.4, 0.96, 1.83},
	{5056, "Spica", "Alp Vir", "Vir", 201.298247, -11.161319, -42.35, -30.67, 13.06, 1.0, 0.98, -0.23},
	{2990, "Pollux", "Bet Gem", "Gem", 116.328958, 28.026199, -626.55, -45.80, 96.54, 3.23, 1.14, 1.00},
	{8728, "Fomalhaut", "Alp PsA", "PsA", 344.412693, -29.622237, 328.95, -164.67, 129.81, 6.5, 1.16, 0.09},
	{7924, "Deneb", "Alp Cyg", "Cyg", 310.357980, 45.280339, 2.01, 1.85, 2.31, -4.5, 1.25, 0.09},
	{4853, "Mimosa", "Bet Cru", "Cru", 191.930263, -59.688764, -42.97, -16.18, 11.71, 15.6, 1.25, -0.23},
	{3982, "Regulus", "Alp Leo", "Leo", 152.092962, 11.967208, -248.73, 5.59, 41.13, 5.9, 1.35, -0.11},
	{2891, "Castor", "Alp Gem", "Gem", 113.649428, 31.888276, -191.45, -145.19, 64.12, 5.4, 1.98, 0.03},
	{424, "Polaris", "Alp UMi", "UMi", 37.954561, 89.264109, 44.48, -11.85, 7.54, -17.4, 2.02, 0.60},
}

const masToRad = math.Pi / (180 * 3600 * 1000)

// BrightStars returns the built-in bright-star set, usable when no
// ingested catalog is configured.
func BrightStars() []CelestialBody {
	bodies := make([]CelestialBody, 0, len(brightStars))
	for _, row := range brightStars {
		hr := row.hr
		bv := row.bv
		dec := row.decDeg * math.Pi / 180
		bodies = append(bodies, NewStar(Star{
			HR:              &hr,
			Name:            row.bayer,
			CommonName:      row.name,
			Bayer:           row.bayer,
			Constellation:   row.constellation,
			RA:              row.raDeg * math.Pi / 180,
			Dec:             dec,
			PMRA:            row.pmRACosDec * masToRad / math.Cos(dec),
			PMDec:           row.pmDec * masToRad,
			Parallax:        row.parallax / 1000,
			RadialVelocity:  row.rv,
			VisualMagnitude: row.mag,
			BV:              &bv,
		}))
	}
	return bodies
}
