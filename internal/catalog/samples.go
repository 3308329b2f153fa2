// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// SampleComponents returns the starter parts written by
// InitializeSampleComponents. Each call returns fresh values.
func SampleComponents() []types.Component {
	return []types.Component{
		{
			Name:         "Arduino Uno",
			Category:     "Microcontrollers",
			Description:  "Popular microcontroller board based on ATmega328P",
			Price:        450.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"microcontroller":   "ATmega328P",
				"operating_voltage": "5V",
				"digital_pins":      14,
				"analog_pins":       6,
			},
		},
		{
			Name:         "Servo Motor SG90",
			Category:     "Motors",
			Description:  "Micro servo motor for robotics projects",
			Price:        150.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"torque":  "1.8 kg-cm",
				"speed":   "0.1 sec/60°",
				"voltage": "4.8V-6V",
			},
		},
		{
			Name:         "Ultrasonic Sensor HC-SR04",
			Category:     "Sensors",
			Description:  "Distance measuring sensor using ultrasonic waves",
			Price:        120.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"range":    "2cm-400cm",
				"accuracy": "3mm",
				"voltage":  "5V",
			},
		},
		{
			Name:         "LED Strip WS2812B",
			Category:     "Display",
			Description:  "Addressable RGB LED strip",
			Price:        300.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"leds_per_meter":    60,
				"voltage":           "5V",
				"power_consumption": "18W/m",
			},
		},
		{
			Name:         "ESP32 DevKit",
			Category:     "Microcontrollers",
			Description:  "WiFi and Bluetooth enabled microcontroller",
			Price:        550.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"cpu":       "Dual-core 240MHz",
				"memory":    "520KB RAM",
				"wifi":      "802.11 b/g/n",
				"bluetooth": "v4.2 BR/EDR and BLE",
			},
		},
		{
			Name:         "PIR Motion Sensor",
			Category:     "Sensors",
			Description:  "Passive infrared sensor for motion detection",
			Price:        80.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"detection_range": "7m",
				"delay_time":      "5-200s",
				"voltage":         "5V-20V",
			},
		},
		{
			Name:         "Breadboard 830 Points",
			Category:     "Prototyping",
			Description:  "Half-size breadboard for circuit prototyping",
			Price:        100.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"tie_points": 830,
				"size":       "165 x 55mm",
				"color":      "White",
			},
		},
		{
			Name:         "Jumper Wires (40pcs)",
			Category:     "Cables",
			Description:  "Male to male jumper wires for connections",
			Price:        50.0,
			Availability: types.AvailabilityInStock,
			Specifications: map[string]any{
				"length":   "20cm",
				"quantity": 40,
				"type":     "Male to Male",
			},
		},
	}
}

// fallbackComponents returns the sample parts as served when the store
// cannot be read: stable ids comp_1..comp_N and the fallback source marker.
func fallbackComponents() []types.Component {
	samples := SampleComponents()
	for i := range samples {
		samples[i].ID = sampleID(i)
		samples[i].Source = types.ComponentSourceFallback
	}
	return samples
}

// sampleID is the stable id of the i-th sample part.
func sampleID(i int) string {
	return fmt.Sprintf("comp_%d", i+1)
}
