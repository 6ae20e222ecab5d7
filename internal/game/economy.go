package game

// Wallet is the player's money, fed by round income and hit awards and
// drained by shop purchases. All mutations report into the run stats.
type Wallet struct {
	money int
	stats *RunStats
}

// NewWallet starts a wallet with the round-1 issue already granted.
func NewWallet(stats *RunStats) *Wallet {
	w := &Wallet{stats: stats}
	w.StartRound(1)
	return w
}

// Money returns the current balance.
func (w *Wallet) Money() int { return w.money }

// StartRound grants the round-start income, which grows with the round
// number.
func (w *Wallet) StartRound(round int) {
	income := roundStartCash + cashPerRound*(round-1)
	w.credit(income)
}

// AwardHit pays out for damage dealt.
func (w *Wallet) AwardHit(damage int) {
	if damage <= 0 {
		return
	}
	w.credit(damage * hitCashPerHP)
}

// AwardVictoryBonus pays the round-clear bonus.
func (w *Wallet) AwardVictoryBonus() {
	w.credit(victoryBonus)
}

// Spend debits the wallet; it refuses overdrafts.
func (w *Wallet) Spend(n int) bool {
	if n < 0 || n > w.money {
		return false
	}
	w.money -= n
	if w.stats != nil {
		w.stats.NoteMoneySpent(n)
	}
	return true
}

func (w *Wallet) credit(n int) {
	if n <= 0 {
		return
	}
	w.money += n
	if w.stats != nil {
		w.stats.NoteMoneyEarned(n)
	}
}

// BuyWeapon purchases one shop lot of the weapon for the tank: the
// catalogue price buys AmmoOnPurchase rounds. The basic shell is not for
// sale and unknown ids are refused.
func (w *Wallet) BuyWeapon(id string, t *Tank) bool {
	wp := WeaponByID(id)
	if wp == nil || wp.Kind == WeaponStandard && wp.Cost == 0 {
		return false
	}
	if !w.Spend(wp.Cost) {
		return false
	}
	t.AddAmmo(id, wp.AmmoOnPurchase)
	return true
}
