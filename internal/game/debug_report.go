package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// RunReport renders the end-of-run summary shown on the game-over screen
// and copied to the clipboard on demand.
func (s *Simulation) RunReport() string {
	rs := s.Run
	var b strings.Builder
	fmt.Fprintf(&b, "--- Mudslinger run report ---\n")
	fmt.Fprintf(&b, "difficulty=%s rounds=%d outcome=%s\n", s.Difficulty, rs.Round, s.Turn.Outcome)
	fmt.Fprintf(&b, "shots: fired=%d hit=%d rate=%.0f%%\n", rs.ShotsFired, rs.ShotsHit, rs.HitRate()*100)
	fmt.Fprintf(&b, "damage: dealt=%d taken=%d biggest_hit=%d\n", rs.DamageDealt, rs.DamageTaken, rs.BiggestHit)
	fmt.Fprintf(&b, "kills=%d nukes=%d\n", rs.EnemiesDestroyed, rs.NukesLaunched)
	fmt.Fprintf(&b, "money: earned=%d spent=%d balance=%d\n", rs.MoneyEarned, rs.MoneySpent, s.Wallet.Money())

	if len(rs.WeaponsUsed) > 0 {
		ids := make([]string, 0, len(rs.WeaponsUsed))
		for _, id := range weaponOrder {
			if rs.WeaponsUsed[id] {
				ids = append(ids, id)
			}
		}
		fmt.Fprintf(&b, "weapons used: %s\n", strings.Join(ids, ", "))
	}
	return b.String()
}

// CopyRunReport puts the run report on the system clipboard.
func (s *Simulation) CopyRunReport() error {
	return clipboard.WriteAll(s.RunReport())
}
