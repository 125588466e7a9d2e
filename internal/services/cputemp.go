package services

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"idleview/internal/models"
	"idleview/internal/settings"
)

const thermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

// ReadCPUTemp reads the CPU temperature from the Linux thermal zone and
// formats it per the configured temperature unit. On other platforms, or
// when the zone is unreadable, it returns an empty display rather than an
// error so the frontend can simply hide the readout.
func ReadCPUTemp(doc settings.Settings) models.CPUTemp {
	if runtime.GOOS != "linux" {
		return models.CPUTemp{}
	}

	contents, err := os.ReadFile(thermalZonePath)
	if err != nil {
		return models.CPUTemp{}
	}

	milliDegrees, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		return models.CPUTemp{}
	}

	celsius := float64(milliDegrees) / 1000
	if celsius <= 0 {
		return models.CPUTemp{}
	}

	display, unit := celsius, "°C"
	if doc.Units.TemperatureUnit == "fahrenheit" {
		display, unit = celsius*9/5+32, "°F"
	}

	return models.CPUTemp{
		Value:   celsius,
		Display: fmt.Sprintf("%d %s", int(math.Round(display)), unit),
	}
}
