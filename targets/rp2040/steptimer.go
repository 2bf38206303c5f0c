//go:build rp2040

package main

import (
	"device/rp"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"

	"woebot/core"
)

// The step timers are PWM slices used as plain 16-bit counters: the slice
// counts from 0 to TOP and raises the shared PWM_IRQ_WRAP interrupt when it
// wraps. No pin is routed to the PWM function.
const (
	pwmBase   = 0x40050000
	pwmStride = 0x14

	pwmCSR = 0x00
	pwmDIV = 0x04
	pwmCTR = 0x08
	pwmTOP = 0x10

	pwmEN   = pwmBase + 0xA0
	pwmINTR = pwmBase + 0xA4
	pwmINTE = pwmBase + 0xA8
	pwmINTF = pwmBase + 0xAC
	pwmINTS = pwmBase + 0xB0

	pwmSlices = 8

	// 125 MHz system clock divided by 125
	stepClockDiv  = 125
	stepClockFreq = 1000000
)

var (
	pwmEnable = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmEN)))
	pwmRaw    = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTR)))
	pwmInten  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTE)))
	pwmForce  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTF)))
	pwmStatus = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTS)))

	stepTimers [pwmSlices]*SliceTimer
)

func pwmReg(slice uint8, off uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(pwmBase) + uintptr(slice)*pwmStride + off))
}

// SliceTimer implements core.StepTimer on one PWM slice.
type SliceTimer struct {
	slice  uint8
	bit    uint32
	reload uint16
	isr    func()
}

// NewSliceTimer claims PWM slice n for an axis, stopped.
func NewSliceTimer(n uint8, isr func()) *SliceTimer {
	t := &SliceTimer{slice: n, bit: 1 << n, isr: isr}

	pwmReg(n, pwmCSR).Set(0) // free running, phase correct off
	pwmReg(n, pwmDIV).Set(stepClockDiv << 4)
	pwmReg(n, pwmCTR).Set(0)
	pwmEnable.ClearBits(t.bit)
	pwmRaw.Set(t.bit)
	pwmInten.SetBits(t.bit)

	stepTimers[n] = t
	return t
}

// SetReload sets the wrap period. TOP is latched at the next wrap, so a
// running timer finishes its current period first.
func (t *SliceTimer) SetReload(reload uint16) {
	t.reload = reload
	if reload == 0 {
		pwmEnable.ClearBits(t.bit)
		return
	}
	pwmReg(t.slice, pwmTOP).Set(uint32(reload - 1))
	if !pwmEnable.HasBits(t.bit) {
		pwmReg(t.slice, pwmCTR).Set(0)
		pwmEnable.SetBits(t.bit)
	}
}

func (t *SliceTimer) Reload() uint16 {
	state := interrupt.Disable()
	r := t.reload
	interrupt.Restore(state)
	return r
}

// Trigger forces the slice's wrap interrupt.
func (t *SliceTimer) Trigger() {
	pwmForce.SetBits(t.bit)
}

func pwmWrapHandler(interrupt.Interrupt) {
	pending := pwmStatus.Get()
	for n := uint8(0); n < pwmSlices; n++ {
		bit := uint32(1) << n
		if pending&bit == 0 {
			continue
		}
		pwmRaw.Set(bit)
		pwmForce.ClearBits(bit)
		if t := stepTimers[n]; t != nil && t.isr != nil {
			t.isr()
		}
	}
}

// InitStepTimers enables the PWM wrap interrupt.
func InitStepTimers() {
	// release the PWM block from reset
	rp.RESETS.RESET.ClearBits(rp.RESETS_RESET_PWM)
	for !rp.RESETS.RESET_DONE.HasBits(rp.RESETS_RESET_PWM) {
	}

	irq := interrupt.New(rp.IRQ_PWM_IRQ_WRAP, pwmWrapHandler)
	irq.SetPriority(0x40)
	irq.Enable()
}

var _ core.StepTimer = (*SliceTimer)(nil)
