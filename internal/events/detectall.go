package events

import "github.com/rlcoach/replay-analysis/internal/model"

// DetectAll runs every independent detector over frames and folds their
// output into one EventSet, including the chronologically merged
// timeline. Detector order here does not affect results: each is a pure
// function of frames (plus touches, for the challenge detector, and
// identities/frame-rate, for the goal detector).
func DetectAll(frames []model.Frame, header model.Header, identities []model.PlayerIdentity, frameRateHz float64) model.EventSet {
	touches := DetectTouches(frames)
	set := model.EventSet{
		Goals:        DetectGoals(frames, header, identities, frameRateHz),
		Demos:        DetectDemos(frames),
		Kickoffs:     DetectKickoffs(frames, header),
		BoostPickups: DetectBoostPickups(frames),
		Touches:      touches,
		Challenges:   DetectChallenges(frames, touches),
	}
	set.Timeline = BuildTimeline(set)
	return set
}
