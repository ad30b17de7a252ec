package model

import "github.com/rlcoach/replay-analysis/internal/geom"

// KickoffRole is a player's assigned role during a kickoff.
type KickoffRole string

const (
	RoleGo    KickoffRole = "GO"
	RoleCheat KickoffRole = "CHEAT"
	RoleWing  KickoffRole = "WING"
	RoleBack  KickoffRole = "BACK"
)

// KickoffApproach classifies how a player approached a kickoff.
type KickoffApproach string

const (
	ApproachFakeStationary   KickoffApproach = "FAKE_STATIONARY"
	ApproachFakeHalfflip     KickoffApproach = "FAKE_HALFFLIP"
	ApproachFakeAggressive   KickoffApproach = "FAKE_AGGRESSIVE"
	ApproachDelay            KickoffApproach = "DELAY"
	ApproachSpeedflip        KickoffApproach = "SPEEDFLIP"
	ApproachStandardDiagonal KickoffApproach = "STANDARD_DIAGONAL"
	ApproachStandardFrontflip KickoffApproach = "STANDARD_FRONTFLIP"
	ApproachStandardBoost    KickoffApproach = "STANDARD_BOOST"
	ApproachStandard         KickoffApproach = "STANDARD"
	ApproachUnknown          KickoffApproach = "UNKNOWN"
)

// KickoffPhase distinguishes the opening kickoff from overtime kickoffs.
type KickoffPhase string

const (
	PhaseInitial KickoffPhase = "INITIAL"
	PhaseOT      KickoffPhase = "OT"
)

// KickoffOutcome is the result of a kickoff contest.
type KickoffOutcome string

const (
	OutcomeFirstPossessionBlue   KickoffOutcome = "FIRST_POSSESSION_BLUE"
	OutcomeFirstPossessionOrange KickoffOutcome = "FIRST_POSSESSION_ORANGE"
	OutcomeNeutral               KickoffOutcome = "NEUTRAL"
	OutcomeGoalFor                KickoffOutcome = "GOAL_FOR"
	OutcomeGoalAgainst            KickoffOutcome = "GOAL_AGAINST"
)

// GoalEvent is one scored goal.
type GoalEvent struct {
	T                    float64
	Frame                int
	Scorer               *string
	Team                 Team
	Assist               *string
	ShotSpeedKPH         float64
	DistanceM            float64
	OnTarget             bool
	TickmarkLeadSeconds  float64
}

// DemoEvent is one player demolition.
type DemoEvent struct {
	T            float64
	Victim       string
	Attacker     *string
	TeamAttacker *Team
	TeamVictim   Team
	Location     geom.Vec3
}

// KickoffPlayerResult is one player's participation record in a kickoff.
type KickoffPlayerResult struct {
	PlayerID         string
	Role             KickoffRole
	BoostUsed        float64
	ApproachType     KickoffApproach
	TimeToFirstTouch *float64
}

// KickoffEvent is one kickoff contest.
type KickoffEvent struct {
	Phase            KickoffPhase
	TStart           float64
	Players          []KickoffPlayerResult
	Outcome          KickoffOutcome
	FirstTouchPlayer *string
	TimeToFirstTouch *float64
}

// PadType mirrors constants.PadType to avoid an import cycle from model to
// constants (constants imports geom, and model must stay a leaf the way
// constants does — both are consumed by normalize/events/analysis).
type PadType string

const (
	PadBig   PadType = "BIG"
	PadSmall PadType = "SMALL"
)

// BoostPickupEvent is one player's boost pad pickup.
type BoostPickupEvent struct {
	T            float64
	PlayerID     string
	PadType      PadType
	Stolen       bool
	PadID        int
	Location     geom.Vec3
	Frame        int
	BoostBefore  float64
	BoostAfter   float64
	BoostGain    float64
}

// TouchOutcome classifies what a touch did to the ball.
type TouchOutcome string

const (
	TouchShot    TouchOutcome = "SHOT"
	TouchPass    TouchOutcome = "PASS"
	TouchClear   TouchOutcome = "CLEAR"
	TouchDribble TouchOutcome = "DRIBBLE"
	TouchNeutral TouchOutcome = "NEUTRAL"
)

// TouchContext classifies where/how a touch happened.
type TouchContext string

const (
	ContextGround     TouchContext = "GROUND"
	ContextAerial     TouchContext = "AERIAL"
	ContextWall       TouchContext = "WALL"
	ContextCeiling    TouchContext = "CEILING"
	ContextHalfVolley TouchContext = "HALF_VOLLEY"
	ContextUnknown    TouchContext = "UNKNOWN"
)

// TouchEvent is one player-ball contact.
type TouchEvent struct {
	T             float64
	Frame         int
	PlayerID      string
	Location      geom.Vec3
	BallSpeedKPH  float64
	Outcome       TouchOutcome
	IsSave        bool
	TouchContext  TouchContext
	CarHeight     float64
	IsFirstTouch  bool
}

// ChallengeOutcome is the result of a 50/50 from the first toucher's
// perspective.
type ChallengeOutcome string

const (
	ChallengeWin     ChallengeOutcome = "WIN"
	ChallengeLoss    ChallengeOutcome = "LOSS"
	ChallengeNeutral ChallengeOutcome = "NEUTRAL"
)

// ChallengeEvent is one contested-ball 50/50.
type ChallengeEvent struct {
	T            float64
	FirstPlayer  string
	SecondPlayer string
	FirstTeam    Team
	SecondTeam   Team
	Outcome      ChallengeOutcome
	WinnerTeam   *Team
	Location     geom.Vec3
	DepthM       float64
	Duration     float64
	RiskFirst    float64
	RiskSecond   float64
}

// TimelineEvent is one flattened, chronologically ordered entry combining
// every detected event stream.
type TimelineEvent struct {
	T        float64
	Frame    *int
	Type     string
	PlayerID *string
	Team     *Team
	Data     map[string]any
}

// EventSet bundles every detector's output, the unit of work the
// aggregator and report assembler consume together.
type EventSet struct {
	Goals         []GoalEvent
	Demos         []DemoEvent
	Kickoffs      []KickoffEvent
	BoostPickups  []BoostPickupEvent
	Touches       []TouchEvent
	Challenges    []ChallengeEvent
	Timeline      []TimelineEvent
}
