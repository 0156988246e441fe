package schedules

import "github.com/btcsuite/btcd/btcutil"

type subsidyRow struct {
	throughHeight int32 // inclusive upper bound of this band; <0 means "no bound"
	amount        btcutil.Amount
}

// subsidyTable is the ascending set of emission bands. Subsidy(h)
// returns the amount of the first row whose throughHeight is >= h.
var subsidyTable = []subsidyRow{
	{1_000, 100},
	{2_700, 110},
	{999_999, 100},
	{1_999_999, 110},
	{2_999_999, 121},
	{3_999_999, 133},
	{4_999_999, 146},
	{5_999_999, 161},
	{6_999_999, 177},
	{7_999_999, 195},
	{8_999_999, 214},
	{9_999_999, 236},
	{10_999_999, 259},
	{11_999_999, 285},
	{12_999_999, 314},
	{13_999_999, 345},
	{14_999_999, 380},
	{15_999_999, 418},
	{16_999_999, 459},
	{17_999_999, 505},
	{18_999_999, 556},
	{19_999_999, 612},
	{20_999_999, 581},
	{21_999_999, 552},
	{22_999_999, 524},
	{23_999_999, 498},
	{24_999_999, 473},
	{25_999_999, 450},
	{26_999_999, 427},
	{27_999_999, 406},
	{28_999_999, 385},
	{29_999_999, 366},
	{30_999_999, 348},
	{31_999_999, 330},
	{32_999_999, 314},
	{33_999_999, 298},
	{34_999_999, 283},
	{35_999_999, 269},
	{36_999_999, 256},
	{37_999_999, 243},
	{38_999_999, 231},
	{39_999_999, 219},
	{40_999_999, 209},
	{41_999_999, 198},
	{42_999_999, 188},
	{43_999_999, 179},
	{44_999_999, 170},
	{45_999_999, 161},
	{46_999_999, 153},
	{47_999_999, 145},
	{48_999_999, 138},
	{49_999_999, 131},
	{50_999_999, 125},
	{51_999_999, 118},
	{52_999_999, 113},
	{53_999_999, 107},
	{-1, 100},
}

// genesisPremine is the one-off subsidy emitted at height 1, in base units.
const genesisPremine = 400_200 * coin

// LegacyCapFormula selects how the final, cap-crossing block's subsidy is
// computed. The deployed network computes currentSupply + subsidy -
// maxMoneyOut, which looks like a transposition of the intended
// maxMoneyOut - currentSupply; the two disagree whenever the crossing
// block's table subsidy doesn't exactly straddle the cap. The literal
// formula stays the default because it is what the network consensus
// currently enforces; flipping this is a consensus change to be scheduled
// with a network upgrade, not a bug fix.
var LegacyCapFormula = true

// Subsidy returns the block subsidy at height given currentSupply and
// maxMoneyOut. When currentSupply already meets or exceeds maxMoneyOut it
// returns zero; when emitting the table value would cross maxMoneyOut the
// crossing amount is computed per LegacyCapFormula.
func Subsidy(height int32, currentSupply, maxMoneyOut btcutil.Amount) btcutil.Amount {
	if currentSupply >= maxMoneyOut {
		return 0
	}

	var subsidy btcutil.Amount
	switch {
	case height == 1:
		subsidy = genesisPremine
	default:
		subsidy = subsidyForHeight(height)
	}

	if currentSupply+subsidy > maxMoneyOut {
		if LegacyCapFormula {
			return currentSupply + subsidy - maxMoneyOut
		}
		return maxMoneyOut - currentSupply
	}
	return subsidy
}

func subsidyForHeight(height int32) btcutil.Amount {
	for _, row := range subsidyTable {
		if row.throughHeight < 0 || height <= row.throughHeight {
			return row.amount * coin
		}
	}
	return 100 * coin
}

// MasternodePayment returns the masternode's 85% share of the block
// subsidy, zero at or below height 1000.
func MasternodePayment(height int32, currentSupply, maxMoneyOut btcutil.Amount) btcutil.Amount {
	if height <= 1000 {
		return 0
	}
	return Subsidy(height, currentSupply, maxMoneyOut) * 85 / 100
}
