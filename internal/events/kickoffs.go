package events

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

type kickoffPlayerState struct {
	playerID         string
	team             model.Team
	spawnPosition    geom.Vec3
	spawnBoost       float64
	minBoost         float64
	maxDistance      float64
	movementStart    *float64
	maxSpeed         float64
	closestApproach  float64
	jumped           bool
	wasOnGround      bool
	touched          bool
	timeToFirstTouch *float64
	startDistToBall  float64
	movedToward      bool
	movedAway        bool
	speedSamples     []speedSample
	role             model.KickoffRole
}

type speedSample struct {
	t     float64
	speed float64
}

// DetectKickoffs runs the kickoff state machine over the frame list,
// opening a window whenever the ball rests at center and closing it when
// the ball leaves or speed/duration limits are exceeded.
func DetectKickoffs(frames []model.Frame, header model.Header) []model.KickoffEvent {
	if len(frames) == 0 {
		return nil
	}

	var kickoffs []model.KickoffEvent
	var active map[string]*kickoffPlayerState
	var windowStart float64
	var lastKickoffEnd float64 = -1e9
	centerSpot := geom.Vec3{X: 0, Y: 0, Z: constants.KickoffBallZ}

	closeWindow := func(t float64) {
		if active == nil {
			return
		}
		kickoffs = append(kickoffs, finalizeKickoff(active, windowStart, t, header))
		lastKickoffEnd = t
		active = nil
	}

	for _, f := range frames {
		ballDistToCenter := f.Ball.Position.Distance(centerSpot)
		ballSpeed := f.Ball.Velocity.Magnitude()

		if active == nil {
			if ballDistToCenter <= KickoffPositionTolerance && ballSpeed < BallStationaryThreshold &&
				f.Timestamp-lastKickoffEnd >= KickoffMinCooldown {
				active = openWindow(f)
				windowStart = f.Timestamp
			}
			continue
		}

		elapsed := f.Timestamp - windowStart
		if ballDistToCenter > KickoffPositionTolerance || ballSpeed > 1.5*BallStationaryThreshold || elapsed >= KickoffMaxDuration {
			closeWindow(f.Timestamp)
			continue
		}

		updateKickoffState(active, f)
	}
	if active != nil {
		closeWindow(frames[len(frames)-1].Timestamp)
	}

	return kickoffs
}

func openWindow(f model.Frame) map[string]*kickoffPlayerState {
	byTeam := map[model.Team][]model.PlayerFrame{}
	for _, p := range f.Players {
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}

	centerSpot := geom.Vec3{X: 0, Y: 0, Z: 0}
	active := map[string]*kickoffPlayerState{}

	for _, team := range []model.Team{model.TeamBlue, model.TeamOrange} {
		players := byTeam[team]
		sortByDistanceToCenter(players, centerSpot)
		for i, p := range players {
			role := assignRole(p, i)
			active[p.PlayerID] = &kickoffPlayerState{
				playerID:        p.PlayerID,
				team:            p.Team,
				spawnPosition:   p.Position,
				spawnBoost:      float64(p.Boost),
				minBoost:        float64(p.Boost),
				closestApproach: p.Position.Distance(f.Ball.Position),
				startDistToBall: p.Position.Distance(f.Ball.Position),
				wasOnGround:     p.OnGround,
				role:            role,
			}
		}
	}
	return active
}

func sortByDistanceToCenter(players []model.PlayerFrame, center geom.Vec3) {
	for i := 1; i < len(players); i++ {
		for j := i; j > 0 && players[j].Position.Distance(center) < players[j-1].Position.Distance(center); j-- {
			players[j], players[j-1] = players[j-1], players[j]
		}
	}
}

func assignRole(p model.PlayerFrame, rank int) model.KickoffRole {
	if rank == 0 {
		return model.RoleGo
	}
	x, y := abs(p.Position.X), abs(p.Position.Y)
	if x >= 1700 && y <= 3600 {
		return model.RoleWing
	}
	if y <= 3200 {
		return model.RoleCheat
	}
	return model.RoleBack
}

func updateKickoffState(active map[string]*kickoffPlayerState, f model.Frame) {
	for _, p := range f.Players {
		st, ok := active[p.PlayerID]
		if !ok {
			continue
		}

		if float64(p.Boost) < st.minBoost {
			st.minBoost = float64(p.Boost)
		}

		distFromSpawn := p.Position.Distance(st.spawnPosition)
		if distFromSpawn > st.maxDistance {
			st.maxDistance = distFromSpawn
		}
		if st.movementStart == nil && distFromSpawn > 150 {
			t := f.Timestamp
			st.movementStart = &t
		}

		speed := p.Velocity.Magnitude()
		if speed > st.maxSpeed {
			st.maxSpeed = speed
		}
		st.speedSamples = append(st.speedSamples, speedSample{f.Timestamp, speed})

		distToBall := p.Position.Distance(f.Ball.Position)
		if distToBall < st.closestApproach {
			st.closestApproach = distToBall
		}
		if distToBall < st.startDistToBall-100 {
			st.movedToward = true
		}
		if distToBall > st.startDistToBall+100 {
			st.movedAway = true
		}

		if st.wasOnGround && !p.OnGround && p.Position.Z > 30 {
			st.jumped = true
		}
		st.wasOnGround = p.OnGround

		if !st.touched && distToBall < 0.9*TouchProximityThreshold {
			st.touched = true
			t := f.Timestamp
			st.timeToFirstTouch = &t
		}
	}
}

func finalizeKickoff(active map[string]*kickoffPlayerState, start, end float64, header model.Header) model.KickoffEvent {
	if end-start < 0.05 {
		return model.KickoffEvent{Phase: model.PhaseInitial, TStart: start, Outcome: model.OutcomeNeutral}
	}

	var players []model.KickoffPlayerResult
	var firstToucher *kickoffPlayerState
	for _, st := range active {
		boostUsed := st.spawnBoost - st.minBoost
		approach := classifyApproach(st, boostUsed)
		players = append(players, model.KickoffPlayerResult{
			PlayerID:         st.playerID,
			Role:             st.role,
			BoostUsed:        geom.Round2(boostUsed),
			ApproachType:     approach,
			TimeToFirstTouch: st.timeToFirstTouch,
		})
		if st.touched && (firstToucher == nil || *st.timeToFirstTouch < *firstToucher.timeToFirstTouch) {
			firstToucher = st
		}
	}

	outcome := model.OutcomeNeutral
	var firstTouchPlayer *string
	var ttft *float64
	if firstToucher != nil {
		id := firstToucher.playerID
		firstTouchPlayer = &id
		ttft = firstToucher.timeToFirstTouch
		if firstToucher.team == model.TeamBlue {
			outcome = model.OutcomeFirstPossessionBlue
		} else {
			outcome = model.OutcomeFirstPossessionOrange
		}
	}

	phase := model.PhaseInitial
	matchLen := header.MatchLength
	threshold := 300.0
	if matchLen > threshold {
		threshold = matchLen
	}
	if header.Overtime && start >= threshold || start >= 300 {
		phase = model.PhaseOT
	}

	return model.KickoffEvent{
		Phase:            phase,
		TStart:           start,
		Players:          players,
		Outcome:          outcome,
		FirstTouchPlayer: firstTouchPlayer,
		TimeToFirstTouch: ttft,
	}
}

func classifyApproach(st *kickoffPlayerState, boostUsed float64) model.KickoffApproach {
	if !st.touched {
		if st.maxDistance < 100 && boostUsed < 5 {
			return model.ApproachFakeStationary
		}
		if st.movedAway && !st.movedToward && st.maxDistance > 300 {
			return model.ApproachFakeHalfflip
		}
		if st.movedToward && st.maxDistance > 500 {
			return model.ApproachFakeAggressive
		}
		if st.movedToward && st.maxDistance > 300 {
			return model.ApproachFakeAggressive
		}
		return model.ApproachUnknown
	}

	if st.timeToFirstTouch != nil {
		localMax := maxSpeedBefore(st.speedSamples, *st.timeToFirstTouch, 0.5)
		contactSpeed := speedAt(st.speedSamples, *st.timeToFirstTouch)
		if localMax > 1500 && contactSpeed <= localMax*0.7 {
			return model.ApproachDelay
		}
	}

	if st.jumped && boostUsed >= 20 && st.maxSpeed >= 2000 && st.timeToFirstTouch != nil && *st.timeToFirstTouch <= 2.7 {
		return model.ApproachSpeedflip
	}
	if st.jumped && st.maxSpeed > 2100 {
		return model.ApproachStandardDiagonal
	}
	if st.jumped {
		return model.ApproachStandardFrontflip
	}
	if boostUsed > 10 {
		return model.ApproachStandardBoost
	}
	if st.maxDistance > 0 {
		return model.ApproachStandard
	}
	return model.ApproachUnknown
}

func maxSpeedBefore(samples []speedSample, t, window float64) float64 {
	max := 0.0
	for _, s := range samples {
		if s.t <= t && s.t >= t-window && s.speed > max {
			max = s.speed
		}
	}
	return max
}

func speedAt(samples []speedSample, t float64) float64 {
	best := 0.0
	bestDt := -1.0
	for _, s := range samples {
		dt := abs(s.t - t)
		if bestDt < 0 || dt < bestDt {
			bestDt = dt
			best = s.speed
		}
	}
	return best
}
