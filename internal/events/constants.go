// Package events implements the deterministic, independent state machines
// that turn a normalized frame stream (+ header) into discrete game events:
// goals, demos, kickoffs, boost pickups, touches, challenges, and their
// chronological merge into a timeline. Each detector is a small
// finite-state fold over the frame list; none share mutable state with
// another detector.
package events

// Detection thresholds. These are fixed, documented tuning constants, not
// values required to reproduce bit-identically (only the field/physics
// constants in the constants package carry that requirement).
const (
	TouchProximityThreshold   = 200.0
	TouchDebounceTime         = 0.3
	TouchLocationEps          = 50.0
	MinBallSpeedForTouch      = 100.0
	MinRelativeSpeedForTouch  = 100.0
	WallProximityThreshold    = 200.0
	CeilingHeightThreshold    = 1800.0
	AerialHeightThreshold     = 200.0
	HalfVolleyHeight          = 60.0

	GoalLookbackWindowS  = 0.5
	MinShotVelocityUUS   = 500.0

	DemoPositionTolerance = 300.0

	KickoffPositionTolerance = 50.0
	BallStationaryThreshold  = 50.0
	KickoffMinCooldown       = 3.0
	KickoffMaxDuration       = 6.0

	BoostPickupMinGain     = 5.0
	BoostPickupMergeWindow = 0.2
	PadNeutralTolerance    = 500.0

	ChallengeWindowS          = 1.0
	ChallengeMinDistanceUU    = 50.0
	ChallengeRadiusUU         = 600.0
	ChallengeMinBallSpeedKPH  = 30.0
	NeutralRetouchWindowS     = 0.5

	RiskAheadOfBallWeight  = 0.4
	RiskLowBoostWeight     = 0.3
	RiskLowBoostThreshold  = 20.0
	RiskLastManWeight      = 0.3
)
