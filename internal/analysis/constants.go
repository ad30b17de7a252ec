package analysis

// Analyzer tuning thresholds. Like the detection thresholds in the events
// package, these are documented judgment calls, not values requiring
// bit-identical reproduction — see DESIGN.md.
const (
	DoubleCommitDistance     = 800.0
	OvercommitBoostThreshold = 30.0

	PossessionTauS        = 2.0
	OwnHalfHighSpeedUUS   = 1000.0
	PassWindowS           = 3.0
	ForwardDeltaMinUU     = 300.0
	GiveAndGoWindowS      = 4.0

	JumpZVelocityThreshold  = 250.0
	FlipAngularThreshold    = 3.0
	WavedashLandingWindow   = 0.2
	AerialHeightThreshold   = 200.0
	FlipCancelWindowS       = 0.4
	HalfFlipYawChangeRad    = 2.5
	HalfFlipWindowS         = 0.6

	AirborneMinHeight = 200.0
	WavedashWindowS   = 0.3
	ControlDeltaVUU   = 200.0
	ControlFrameCount = 2
	ControlTimeoutS   = 1.0
	FailedLandingVz   = -800.0

	SampleIntervalS       = 0.5
	PredictionHorizonS    = 0.5
	BallGravityUU         = -650.0
	BallDragCoefficient   = 0.03
	BounceFloorCeilCoef   = 0.6
	BounceWallCoef        = 0.7
	ProactiveDotThreshold = 0.7

	HeatmapCols = 24
	HeatmapRows = 16
)
