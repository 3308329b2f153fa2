// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// sampleIdeas returns the first min(req.Count, 5) fixed ideas with the
// requested theme and skill level applied. Difficulty follows the skill
// level.
func sampleIdeas(req Request) []types.Idea {
	all := []types.Idea{
		{
			Title:              "Smart Plant Watering System",
			Description:        "Automated plant care system that waters plants based on soil moisture levels. Readings are shown on a small display so you can see when the plant was last watered.",
			ProblemStatement:   "Plants often die due to inconsistent watering schedules.",
			WorkingPrinciple:   "A soil moisture sensor is read by the microcontroller, which switches a small pump through a relay whenever moisture drops below a threshold.",
			EstimatedCost:      "₹800",
			Components:         []string{"Arduino Uno", "Soil Moisture Sensor", "Water Pump", "Relay Module"},
			InnovationElements: []string{"Automated scheduling", "Moisture history on display"},
			ScalabilityOptions: []string{"Multiple plant monitoring", "Weather integration"},
			Tags:               []string{"Agriculture", "Automation"},
		},
		{
			Title:              "Ultrasonic Parking Assistant",
			Description:        "A garage wall unit that measures the distance to an approaching car and shows a colour-coded warning on an LED strip.",
			ProblemStatement:   "Drivers misjudge distance in tight garages and bump walls or storage.",
			WorkingPrinciple:   "An HC-SR04 measures distance by timing an ultrasonic echo; the microcontroller maps the distance to green, amber and red LED segments.",
			EstimatedCost:      "₹900",
			Components:         []string{"Arduino Uno", "Ultrasonic Sensor HC-SR04", "LED Strip WS2812B"},
			InnovationElements: []string{"Progressive colour warning", "Auto-off when the car is parked"},
			ScalabilityOptions: []string{"Buzzer alert", "Multiple bay support"},
			Tags:               []string{"Automotive", "Safety"},
		},
		{
			Title:              "Motion-Activated Night Light",
			Description:        "A hallway light that turns on softly when someone walks past at night and fades out after a delay.",
			ProblemStatement:   "Switching on bright lights at night is disruptive, and walking in the dark is unsafe.",
			WorkingPrinciple:   "A PIR sensor detects body heat movement and the microcontroller fades an addressable LED strip up and down.",
			EstimatedCost:      "₹500",
			Components:         []string{"PIR Motion Sensor", "ESP32 DevKit", "LED Strip WS2812B"},
			InnovationElements: []string{"Gradual fade to avoid glare", "Adjustable warm colour"},
			ScalabilityOptions: []string{"Ambient light sensing", "Phone notifications over WiFi"},
			Tags:               []string{"Home Automation", "Lighting"},
		},
		{
			Title:              "Servo Pan-Tilt Desk Fan",
			Description:        "A small desk fan mounted on a servo that sweeps toward whoever is sitting in front of it.",
			ProblemStatement:   "Fixed fans only cool one spot, and oscillating fans waste airflow on empty space.",
			WorkingPrinciple:   "An ultrasonic sensor on a servo scans for the nearest person and the microcontroller holds the fan on that angle.",
			EstimatedCost:      "₹700",
			Components:         []string{"Arduino Uno", "Servo Motor SG90", "Ultrasonic Sensor HC-SR04"},
			InnovationElements: []string{"Presence tracking", "Sweep mode when nobody is detected"},
			ScalabilityOptions: []string{"Temperature based speed", "Second axis for tilt"},
			Tags:               []string{"Robotics", "Comfort"},
		},
		{
			Title:              "WiFi Room Occupancy Counter",
			Description:        "Counts people entering and leaving a room and publishes the current occupancy to a simple web page.",
			ProblemStatement:   "Shared rooms and labs have no easy way to see whether they are full before walking over.",
			WorkingPrinciple:   "Two sensors at the doorway detect the order in which they are tripped to decide direction; the ESP32 serves the running count over WiFi.",
			EstimatedCost:      "₹1,200",
			Components:         []string{"ESP32 DevKit", "PIR Motion Sensor", "Ultrasonic Sensor HC-SR04", "Breadboard 830 Points", "Jumper Wires (40pcs)"},
			InnovationElements: []string{"Direction detection", "Live web dashboard"},
			ScalabilityOptions: []string{"Multiple doors", "Occupancy history logging"},
			Tags:               []string{"IoT", "Smart Building"},
		},
	}

	n := req.Count
	if n > len(all) {
		n = len(all)
	}
	ideas := all[:n]
	for i := range ideas {
		ideas[i].Difficulty = req.SkillLevel
		ideas[i].Tags = append([]string{req.Theme}, ideas[i].Tags...)
	}
	return ideas
}

// synthesize builds the single idea returned when a model reply cannot be
// decoded. Its components are exactly the requested ones.
func synthesize(req Request) types.Idea {
	lead := "Arduino"
	if len(req.Components) > 0 {
		lead = req.Components[0]
	}
	components := append([]string{}, req.Components...)

	return types.Idea{
		Title:              fmt.Sprintf("%s Project with %s", req.Theme, lead),
		Description:        fmt.Sprintf("An innovative %s level project using %s.", strings.ToLower(req.SkillLevel), strings.Join(req.Components, ", ")),
		ProblemStatement:   "Address real-world challenges through technology.",
		WorkingPrinciple:   "Combine sensors, microcontrollers, and actuators for smart solutions.",
		Difficulty:         req.SkillLevel,
		EstimatedCost:      "₹500-1000",
		Components:         components,
		InnovationElements: []string{"Smart automation", "Real-time monitoring"},
		ScalabilityOptions: []string{"IoT connectivity", "Mobile app integration"},
		Tags:               []string{req.Theme, "Electronics", "DIY"},
	}
}
