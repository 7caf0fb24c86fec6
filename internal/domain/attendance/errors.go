package attendance

import "errors"

var (
	ErrOpenRecord    = errors.New("attendance record has clock-in without clock-out")
	ErrNegativeHours = errors.New("attendance record has negative hours")
)
