package app

import "time"

// nextDelay returns the time until the next quarter-hour mark (:00, :15,
// :30, :45).
func nextDelay() time.Duration {
	now := time.Now()
	next := time.Date(
		now.Year(),
		now.Month(),
		now.Day(),
		now.Hour(),
		(now.Minute()/15+1)*15,
		0,
		0,
		now.Location(),
	)
	return time.Until(next)
}
