//go:build tinygo

package pmw3610

import "machine"

// machine.Pin adapters for MCU targets. Mode switches on the bidirectional
// line go through Configure; on the supported targets this is a single
// register write and well inside the protocol turn-around delays.

type machineOutput struct{ p machine.Pin }

func (m machineOutput) High() { m.p.High() }
func (m machineOutput) Low()  { m.p.Low() }

// OutputOf configures p as an output and returns it as an OutputPin.
func OutputOf(p machine.Pin) OutputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return machineOutput{p}
}

type machineInput struct{ p machine.Pin }

func (m machineInput) Get() bool { return m.p.Get() }

// InputOf configures p as a pulled-up input (the motion line idles high and
// pulls low when a report is pending) and returns it as an InputPin.
func InputOf(p machine.Pin) InputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return machineInput{p}
}

type machineBidi struct{ p machine.Pin }

func (m machineBidi) SetOutput() { m.p.Configure(machine.PinConfig{Mode: machine.PinOutput}) }
func (m machineBidi) SetInput()  { m.p.Configure(machine.PinConfig{Mode: machine.PinInput}) }
func (m machineBidi) High()      { m.p.High() }
func (m machineBidi) Low()       { m.p.Low() }
func (m machineBidi) Get() bool  { return m.p.Get() }

// BidiOf returns p as the switchable data line. Starts as input so the bus
// idles released.
func BidiOf(p machine.Pin) BidiPin {
	p.Configure(machine.PinConfig{Mode: machine.PinInput})
	return machineBidi{p}
}
