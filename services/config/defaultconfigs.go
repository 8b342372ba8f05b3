package config

// Embedded per-device configuration. Sections are published retained under
// config/<section>.

var embeddedConfigs = map[string][]byte{
	// Right-hand split half with the trackball module.
	"split-right": []byte(`{
		"pointer": {
			"cpi": 800,
			"invert_x": false,
			"invert_y": true,
			"swap_xy": false,
			"force_awake": false,
			"smart_mode": true,
			"poll_interval_ms": 8
		},
		"heartbeat": {"interval": 5}
	}`),

	// Host-side simulation profile used by the demo binary.
	"sim": []byte(`{
		"pointer": {
			"cpi": 1000,
			"smart_mode": false,
			"poll_interval_ms": 2
		},
		"heartbeat": {"interval": 2}
	}`),
}
