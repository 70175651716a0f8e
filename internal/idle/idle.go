package idle

import "time"

// Present reports whether the user has touched keyboard or mouse within
// threshold. Detection failures count as present so a broken idle probe
// never silences the speakers.
func Present(threshold time.Duration) bool {
	return present(Duration, threshold)
}

func present(probe func() (time.Duration, error), threshold time.Duration) bool {
	d, err := probe()
	if err != nil {
		return true
	}
	return d < threshold
}
