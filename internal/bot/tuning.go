package bot

import botinternal "tripeaks/internal/bot/internal"

// DefaultTuning favors long runs early and uncovering cards late.
var DefaultTuning = botinternal.BotTuning{
	Opening: botinternal.PhaseWeights{
		ChainWeight:   2.0,
		UncoverWeight: 1.0,
		CoverWeight:   0.5,
		LayerWeight:   0.0,
	},
	Mid: botinternal.PhaseWeights{
		ChainWeight:   1.5,
		UncoverWeight: 1.5,
		CoverWeight:   0.5,
		LayerWeight:   1.0,
	},
	End: botinternal.PhaseWeights{
		ChainWeight:   1.0,
		UncoverWeight: 2.5,
		CoverWeight:   0.2,
		LayerWeight:   2.0,
	},
	MaxChainDepth:   8,
	WildCardReserve: 0,
}
