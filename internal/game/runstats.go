package game

import "time"

// RunStats accumulates the per-run counters that feed the end-of-run report
// and the (externally synced) leaderboard record.
type RunStats struct {
	Round int // current round number, starts at 1

	ShotsFired       int
	ShotsHit         int
	DamageDealt      int
	DamageTaken      int
	EnemiesDestroyed int
	NukesLaunched    int
	WeaponsUsed      map[string]bool
	MoneyEarned      int
	MoneySpent       int
	BiggestHit       int

	Active    bool
	Finalized bool
	Defeat    bool
}

// NewRunStats starts a fresh active run at round 1.
func NewRunStats() *RunStats {
	return &RunStats{
		Round:       1,
		WeaponsUsed: map[string]bool{},
		Active:      true,
	}
}

// NoteShotFired records one shot with the weapon that fired it.
func (rs *RunStats) NoteShotFired(weaponID string) {
	rs.ShotsFired++
	rs.WeaponsUsed[weaponID] = true
	if IsNuclear(weaponID) {
		rs.NukesLaunched++
	}
}

// NoteShotHit records a shot that damaged the enemy.
func (rs *RunStats) NoteShotHit() { rs.ShotsHit++ }

// NoteDamageDealt adds player-dealt damage and tracks the biggest hit.
func (rs *RunStats) NoteDamageDealt(n int) {
	if n <= 0 {
		return
	}
	rs.DamageDealt += n
	if n > rs.BiggestHit {
		rs.BiggestHit = n
	}
}

// NoteDamageTaken adds damage absorbed by the player tank.
func (rs *RunStats) NoteDamageTaken(n int) {
	if n > 0 {
		rs.DamageTaken += n
	}
}

// NoteEnemyDestroyed counts a kill.
func (rs *RunStats) NoteEnemyDestroyed() { rs.EnemiesDestroyed++ }

// NoteMoneyEarned tracks income.
func (rs *RunStats) NoteMoneyEarned(n int) {
	if n > 0 {
		rs.MoneyEarned += n
	}
}

// NoteMoneySpent tracks shop spending.
func (rs *RunStats) NoteMoneySpent(n int) {
	if n > 0 {
		rs.MoneySpent += n
	}
}

// HitRate is shots hit over shots fired, 0 when nothing was fired.
func (rs *RunStats) HitRate() float64 {
	if rs.ShotsFired == 0 {
		return 0
	}
	return float64(rs.ShotsHit) / float64(rs.ShotsFired)
}

// NextRound bumps the round counter.
func (rs *RunStats) NextRound() { rs.Round++ }

// EndRun finalizes the run exactly once. Later calls are no-ops, so the
// draw-counts-as-defeat path cannot double-finalize.
func (rs *RunStats) EndRun(defeat bool) bool {
	if rs.Finalized {
		return false
	}
	rs.Finalized = true
	rs.Active = false
	rs.Defeat = defeat
	return true
}

// LeaderboardRecord is the persisted external surface for a finished run.
// Remote sync is out of scope here; the type exists so the contract with
// the persistence layer survives.
type LeaderboardRecord struct {
	PlayerRef        string    `json:"playerRef"`
	DisplayName      string    `json:"displayName"`
	RoundsSurvived   int       `json:"roundsSurvived"`
	TotalDamage      int       `json:"totalDamage"`
	EnemiesDestroyed int       `json:"enemiesDestroyed"`
	ShotsFired       int       `json:"shotsFired"`
	ShotsHit         int       `json:"shotsHit"`
	HitRate          float64   `json:"hitRate"`
	BiggestHit       int       `json:"biggestHit"`
	Timestamp        time.Time `json:"timestamp"`
	Platform         string    `json:"platform"`
	Validated        bool      `json:"validated"`
}

// Record snapshots the run stats into a leaderboard record.
func (rs *RunStats) Record(playerRef, displayName, platform string) LeaderboardRecord {
	rounds := rs.Round
	if rs.Defeat && rounds > 0 {
		rounds-- // the fatal round was not survived
	}
	return LeaderboardRecord{
		PlayerRef:        playerRef,
		DisplayName:      displayName,
		RoundsSurvived:   rounds,
		TotalDamage:      rs.DamageDealt,
		EnemiesDestroyed: rs.EnemiesDestroyed,
		ShotsFired:       rs.ShotsFired,
		ShotsHit:         rs.ShotsHit,
		HitRate:          rs.HitRate(),
		BiggestHit:       rs.BiggestHit,
		Timestamp:        time.Now(),
		Platform:         platform,
	}
}
