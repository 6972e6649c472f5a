// Package energy reduces raw per-device records into chart datasets.
package energy

import (
	"office-dashboard/charttheme"
	"office-dashboard/shared"
)

// LaptopModes counts laptops per UI mode.
func LaptopModes(records []shared.LaptopUsage) charttheme.Dataset {
	counts := make(map[string]float64, 2)
	for _, r := range records {
		counts[r.Mode]++
	}
	return single("Laptop Mode Distribution",
		[]string{shared.LaptopModeLight, shared.LaptopModeDark},
		[]float64{counts[shared.LaptopModeLight], counts[shared.LaptopModeDark]})
}

// LightingStatus counts lighting zones per state.
func LightingStatus(records []shared.LightingZone) charttheme.Dataset {
	counts := make(map[string]float64, 2)
	for _, r := range records {
		counts[r.Status]++
	}
	return single("Lighting Status",
		[]string{"Lights ON", "Lights OFF"},
		[]float64{counts[shared.LightOn], counts[shared.LightOff]})
}

// HVACStatus counts HVAC zones per state.
func HVACStatus(records []shared.HVACZone) charttheme.Dataset {
	counts := make(map[string]float64, 3)
	for _, r := range records {
		counts[r.Status]++
	}
	return single("HVAC System Status",
		[]string{"HVAC ON", "HVAC ECO", "HVAC OFF"},
		[]float64{counts[shared.HVACOn], counts[shared.HVACEco], counts[shared.HVACOff]})
}

// AverageHoursOn is the mean laptop uptime, 0 when there are no records.
func AverageHoursOn(records []shared.LaptopUsage) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, r := range records {
		total += r.HoursOn
	}
	return total / float64(len(records))
}

// ActiveHVACZones counts zones whose HVAC is ON or in ECO mode.
func ActiveHVACZones(records []shared.HVACZone) int {
	active := 0
	for _, r := range records {
		if r.Status == shared.HVACOn || r.Status == shared.HVACEco {
			active++
		}
	}
	return active
}

func single(name string, labels []string, values []float64) charttheme.Dataset {
	return charttheme.Dataset{
		Labels: labels,
		Series: []charttheme.Series{{Name: name, Values: values}},
	}
}
