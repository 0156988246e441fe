// Package schedules implements the height-indexed collateral and block
// subsidy piecewise schedules the payment rules are built on.
package schedules

import "github.com/btcsuite/btcd/btcutil"

// coin converts the whole-coin figures in the tables below to base units.
const coin = btcutil.Amount(btcutil.SatoshiPerBitcoin)

type collateralRow struct {
	threshold int32
	amount    btcutil.Amount
}

// collateralTable is the descending if-chain from the reference
// implementation: collateral(h) is the amount of the first row whose
// threshold is strictly less than h.
var collateralTable = []collateralRow{
	{53_000_000, 100_000},
	{52_999_999, 106_921},
	{51_999_999, 112_549},
	{50_999_999, 118_472},
	{49_999_999, 124_708},
	{48_999_999, 131_271},
	{47_999_999, 138_180},
	{46_999_999, 145_453},
	{45_999_999, 153_108},
	{44_999_999, 161_166},
	{43_999_999, 169_649},
	{42_999_999, 178_578},
	{41_999_999, 187_977},
	{40_999_999, 197_870},
	{39_999_999, 208_284},
	{38_999_999, 219_247},
	{37_999_999, 230_786},
	{36_999_999, 242_933},
	{35_999_999, 255_719},
	{34_999_999, 269_177},
	{33_999_999, 283_345},
	{32_999_999, 298_258},
	{31_999_999, 313_955},
	{30_999_999, 330_479},
	{29_999_999, 347_873},
	{28_999_999, 366_182},
	{27_999_999, 385_455},
	{26_999_999, 405_742},
	{25_999_999, 427_097},
	{24_999_999, 449_576},
	{23_999_999, 473_237},
	{22_999_999, 498_145},
	{21_999_999, 524_363},
	{20_999_999, 551_961},
	{19_999_999, 581_011},
	{18_999_999, 611_591},
	{17_999_999, 555_992},
	{16_999_999, 505_447},
	{15_999_999, 459_497},
	{14_999_999, 417_725},
	{13_999_999, 379_750},
	{12_999_999, 345_227},
	{11_999_999, 313_843},
	{10_999_999, 285_312},
	{9_999_999, 259_374},
	{8_999_999, 235_795},
	{7_999_999, 214_359},
	{6_999_999, 194_872},
	{5_999_999, 177_156},
	{4_999_999, 161_051},
	{3_999_999, 146_410},
	{2_999_999, 133_100},
	{1_999_999, 121_000},
	{999_999, 110_000},
	{1, 100_000},
}

// Collateral returns the required masternode collateral amount at height,
// in base units.
func Collateral(height int32) btcutil.Amount {
	for _, row := range collateralTable {
		if row.threshold < height {
			return row.amount * coin
		}
	}
	return 0
}

// transitionPoint is one entry of the materialized change list: the height
// at which the collateral amount becomes newAmount.
type transitionPoint struct {
	height    int32
	newAmount btcutil.Amount
}

// transitions is the materialized, height-ascending list of collateral
// change points, built once at package init instead of by scanning every
// height one by one: collateralTable's rows already are the change
// points, so deriving the list analytically from them yields the same
// sequence a full scan would.
var transitions = buildTransitions()

func buildTransitions() []transitionPoint {
	// collateralTable is in descending-threshold order; walk it in reverse
	// (ascending) to produce a change list in height order.
	points := make([]transitionPoint, 0, len(collateralTable))
	var prevAmount btcutil.Amount = -1
	for i := len(collateralTable) - 1; i >= 0; i-- {
		row := collateralTable[i]
		if row.amount == prevAmount {
			continue
		}
		points = append(points, transitionPoint{height: row.threshold + 1, newAmount: row.amount})
		prevAmount = row.amount
	}
	return points
}

// NextChange reports how many blocks until collateral(h) next changes and
// what it changes to, or (-1, -1) if no further change exists within the
// materialized table.
func NextChange(height int32) (blocksUntil int32, newAmount btcutil.Amount) {
	for _, p := range transitions {
		if p.height > height {
			return p.height - height, p.newAmount * coin
		}
	}
	return -1, -1
}
