package console

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// AxisReport is the parsed reply of the sst command.
type AxisReport struct {
	Velocity  int // steps/s, signed
	Target    int
	Accel     int
	Steps     uint32 // commanded
	Remaining uint32
	Mailbox   bool
}

// ParseAxisReport decodes one "stepper_status:" line.
func ParseAxisReport(out string) (AxisReport, error) {
	var r AxisReport

	i := strings.Index(out, "stepper_status:")
	if i < 0 {
		return r, errors.Errorf("no stepper status in %q", out)
	}
	line := out[i+len("stepper_status:"):]
	if j := strings.IndexByte(line, '\n'); j >= 0 {
		line = line[:j]
	}

	fields := map[string]string{}
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSuffix(strings.TrimSpace(part), " SPS")
		k := strings.LastIndexByte(part, ' ')
		if k < 0 {
			continue
		}
		fields[part[:k]] = part[k+1:]
	}

	var err error
	geti := func(key string) int {
		if err != nil {
			return 0
		}
		v, e := strconv.Atoi(fields[key])
		if e != nil {
			err = errors.Wrapf(e, "field %s", key)
		}
		return v
	}
	r.Velocity = geti("velocity")
	r.Target = geti("target velocity")
	r.Accel = geti("accel")
	r.Steps = uint32(geti("steps"))
	r.Remaining = uint32(geti("step_count"))
	r.Mailbox = geti("mailbox") != 0
	return r, err
}

// AxisStatus queries axis id through the sst command.
func (c *Console) AxisStatus(id int, timeout time.Duration) (AxisReport, error) {
	out, err := c.Exec("sst "+strconv.Itoa(id), timeout)
	if err != nil {
		return AxisReport{}, err
	}
	return ParseAxisReport(out)
}
