package shell

import (
	"errors"
	"io"
	"strconv"

	"woebot/core"
	"woebot/platform"
)

const legend = "Legend:\n" +
	"  sid: stepper id\n" +
	"  v: velocity (m/s), w: angular velocity (rotation/sec)\n" +
	"  a: acceleration (steps-per-sec^2 or meters-per-sec^2) d: distance (meters)\n" +
	"  sps: steps-per-sec, st: number-of-steps\n" +
	"\n" +
	"Command List:\n"

var (
	errNoPlatform = errors.New("no platform configured")
	errNoReset    = errors.New("reset not supported")
)

func (s *Shell) registerCommands() {
	r := s.registry

	help := func(w io.Writer, _ Args) error {
		io.WriteString(w, legend+r.Usage())
		return nil
	}
	r.Register("help", "(list of commands)", help)
	r.Register("h", "(list of commands)", help)
	r.Register("?", "(list of commands)", help)
	r.Register("cls", "(clear screen)", func(w io.Writer, _ Args) error {
		io.WriteString(w, "\033[2J")
		return nil
	})
	reset := func(io.Writer, Args) error {
		if s.cfg.Reset == nil {
			return errNoReset
		}
		s.cfg.Reset()
		return nil
	}
	r.Register("reset", "(system reset)", reset)
	r.Register("reboot", "(system reset)", reset)

	r.Register("sg", "(stepper go) sid, sps, a, st", s.stepperGo)
	r.Register("si", "(stepper idle) sid", s.stepperIdle)
	r.Register("ss", "(stepper stop) sid, hard_stop_flag", s.stepperStop)
	r.Register("sst", "(stepper status) sid", s.stepperStatus)
	r.Register("sw", "(stepper wait) sid", s.stepperWait)

	r.Register("pg", "(platform go) v, a, w, d", s.platformGo)
	r.Register("pi", "(platform idle)", s.platformIdle)
	r.Register("ps", "(platform stop) hard_stop_flag", s.platformStop)
	r.Register("pst", "(platform status)", s.platformStatus)

	r.Register("dbg", "(debug output) on_flag", func(_ io.Writer, args Args) error {
		on, err := args.Bool(0)
		if err != nil {
			return err
		}
		core.SetDebugEnabled(on)
		return nil
	})
	r.Register("tdump", "(dump stepper event ring)", func(io.Writer, Args) error {
		core.DumpTimingRing()
		return nil
	})
}

// axisArg reads argument i as a stepper id
func axisArg(args Args, i int) (core.AxisID, error) {
	n, err := args.Int(i)
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= core.MaxAxes {
		return 0, core.ErrInvalidAxis
	}
	return core.AxisID(n), nil
}

func (s *Shell) stepperGo(_ io.Writer, args Args) error {
	id, err := axisArg(args, 0)
	if err != nil {
		return err
	}
	sps, err := args.Float(1)
	if err != nil {
		return err
	}
	accel, err := args.Float(2)
	if err != nil {
		return err
	}
	steps, err := args.Int(3)
	if err != nil {
		return err
	}
	return s.cfg.Steppers.Go(id, float32(sps), float32(accel), steps)
}

func (s *Shell) stepperIdle(_ io.Writer, args Args) error {
	id, err := axisArg(args, 0)
	if err != nil {
		return err
	}
	return s.cfg.Steppers.Idle(id)
}

func (s *Shell) stepperStop(_ io.Writer, args Args) error {
	id, err := axisArg(args, 0)
	if err != nil {
		return err
	}
	hard, err := args.Bool(1)
	if err != nil {
		return err
	}
	return s.cfg.Steppers.Stop(id, hard)
}

func (s *Shell) stepperWait(w io.Writer, args Args) error {
	id, err := axisArg(args, 0)
	if err != nil {
		return err
	}
	io.WriteString(w, "stepper_waitfor: waiting for stepper "+strconv.Itoa(int(id))+"\n")
	return s.cfg.Steppers.WaitFor(id)
}

func (s *Shell) stepperStatus(w io.Writer, args Args) error {
	id, err := axisArg(args, 0)
	if err != nil {
		return err
	}
	st, err := s.cfg.Steppers.Status(id)
	if err != nil {
		return err
	}
	io.WriteString(w, "stepper_status: "+FormatStatus(st)+"\n")
	return nil
}

// FormatStatus renders an axis snapshot in the firmware's status format
func FormatStatus(st core.AxisStatus) string {
	mailbox := 0
	if st.MailboxFull {
		mailbox = 1
	}
	return "velocity " + strconv.Itoa(int(st.State.Velocity)) + " SPS" +
		", target velocity " + strconv.Itoa(int(st.Command.Velocity)) + " SPS" +
		", delay " + strconv.FormatUint(uint64(st.State.Period), 10) +
		", hwtimer " + strconv.Itoa(int(st.State.Reload)) +
		", accel " + strconv.Itoa(int(st.Command.Acceleration)) +
		", steps " + strconv.FormatUint(uint64(st.Command.Steps), 10) +
		", step_count " + strconv.FormatUint(uint64(st.State.Steps), 10) +
		", tick_count " + strconv.FormatUint(uint64(st.State.Ticks), 10) +
		", mailbox " + strconv.Itoa(mailbox)
}

func (s *Shell) platformGo(_ io.Writer, args Args) error {
	if s.cfg.Platform == nil {
		return errNoPlatform
	}
	var v [4]float64
	for i := range v {
		f, err := args.Float(i)
		if err != nil {
			return err
		}
		v[i] = f
	}
	return s.cfg.Platform.Go(v[0], v[1], v[2], v[3])
}

func (s *Shell) platformIdle(io.Writer, Args) error {
	if s.cfg.Platform == nil {
		return errNoPlatform
	}
	return s.cfg.Platform.Idle()
}

func (s *Shell) platformStop(_ io.Writer, args Args) error {
	if s.cfg.Platform == nil {
		return errNoPlatform
	}
	hard, err := args.Bool(0)
	if err != nil {
		return err
	}
	return s.cfg.Platform.Stop(hard)
}

func (s *Shell) platformStatus(w io.Writer, _ Args) error {
	if s.cfg.Platform == nil {
		return errNoPlatform
	}
	st, err := s.cfg.Platform.Status()
	if err != nil {
		return err
	}
	io.WriteString(w, "platform_status: "+st.State.String()+"\n")
	io.WriteString(w, "  right: "+FormatStatus(st.Right)+"\n")
	io.WriteString(w, "  left: "+FormatStatus(st.Left)+"\n")
	return nil
}

var _ Platform = (*platform.Platform)(nil)
