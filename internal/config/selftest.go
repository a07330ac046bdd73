package config

// SelfTestCue returns a synthetic two-line cue and a pattern that is known to
// match it. `subspot init` redacts it to check the configured characters.
func SelfTestCue() ([]string, string) {
	return []string{"I have a bad feeling", "about this."}, "bat"
}
