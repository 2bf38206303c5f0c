package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Add space for negative sign
	if negative {
		digits++
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	if negative {
		buf[0] = '-'
	}

	return string(buf)
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

// ftoa formats v with four decimals, the way the serial console prints
// floats, without pulling in strconv's float tables.
func ftoa(v float32) string {
	neg := v < 0
	if neg {
		v = -v
	}
	if v > 4e9 {
		if neg {
			return "-inf"
		}
		return "inf"
	}
	scaled := uint64(float64(v)*10000 + 0.5)
	whole := uint32(scaled / 10000)
	frac := uint32(scaled % 10000)

	s := utoa(whole) + "."
	fs := utoa(frac)
	for i := len(fs); i < 4; i++ {
		s += "0"
	}
	s += fs
	if neg && scaled != 0 {
		s = "-" + s
	}
	return s
}

// Ftoa is ftoa for board code outside core.
func Ftoa(v float32) string {
	return ftoa(v)
}

// Itoa is itoa for board code outside core.
func Itoa(n int) string {
	return itoa(n)
}
